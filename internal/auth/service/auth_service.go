// Package service implements the account lifecycle: registration with an
// activation mail, login, refresh-token rotation, logout, and activation by
// link. Sessions are a JWT pair with the refresh half stored server-side.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hourglass-app/hourglass-backend/internal/auth"
	tokenrepo "github.com/hourglass-app/hourglass-backend/internal/auth/repository"
	"github.com/hourglass-app/hourglass-backend/internal/logging"
	"github.com/hourglass-app/hourglass-backend/internal/mail"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/repository"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *tokenrepo.TokenRepository
	jwt    *auth.TokenManager
	mailer mail.Mailer
	log    logging.Logger
	apiURL string
}

func NewAuthService(
	users repository.UserRepository,
	tokens *tokenrepo.TokenRepository,
	jwt *auth.TokenManager,
	mailer mail.Mailer,
	log logging.Logger,
	apiURL string,
) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		mailer: mailer,
		log:    log,
		apiURL: apiURL,
	}
}

// Session is a minted token pair plus the user it belongs to.
type Session struct {
	Tokens *auth.TokenPair
	User   *domain.User
}

// Register creates a user, mails the activation link, and opens a session.
func (s *AuthService) Register(ctx context.Context, email, password string, isAdmin bool) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		IsAdmin:        isAdmin,
		ActivationLink: uuid.NewString(),
		Projects:       []domain.Project{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	activationURL := fmt.Sprintf("%s/api/activate/%s", s.apiURL, u.ActivationLink)
	if err := s.mailer.SendActivationMail(ctx, u.Email, activationURL); err != nil {
		s.log.Error(ctx, "activation mail failed", "email", u.Email, "err", err)
		return nil, err
	}

	return s.openSession(ctx, u)
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, auth.ErrBadCredentials
	}

	return s.openSession(ctx, u)
}

// Logout revokes the refresh token. A missing token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Delete(ctx, refreshToken)
}

// Refresh rotates a refresh token: the old one must both parse and still
// exist server-side, then it is replaced by a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, auth.ErrUnauthorized
	}

	claims, err := s.jwt.Parse(refreshToken)
	if err != nil {
		return nil, auth.ErrUnauthorized
	}

	if _, err := s.tokens.Find(ctx, refreshToken); err != nil {
		if errors.Is(err, tokenrepo.ErrTokenNotFound) {
			return nil, auth.ErrUnauthorized
		}
		return nil, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.openSession(ctx, u)
}

// Activate flips the activation flag for the user owning the link.
func (s *AuthService) Activate(ctx context.Context, link string) error {
	u, err := s.users.GetByActivationLink(ctx, link)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return auth.ErrInjuredLink
		}
		return err
	}

	u.IsActivated = true
	return s.users.Save(ctx, u)
}

func (s *AuthService) openSession(ctx context.Context, u *domain.User) (*Session, error) {
	pair, err := s.jwt.GeneratePair(u.ID, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	if err := s.tokens.Save(ctx, u.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	return &Session{Tokens: pair, User: u}, nil
}
