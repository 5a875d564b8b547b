// Package auth issues and validates the first-party JWT pair (short-lived
// access token, long-lived refresh token) and exposes the gin middleware
// that resolves the authenticated identity for the rest of the API.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the resolved identity inside both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager signs and parses HS256 tokens.
type TokenManager struct {
	secret          []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
}

func NewTokenManager(secret string, accessValidity, refreshValidity time.Duration) *TokenManager {
	return &TokenManager{
		secret:          []byte(secret),
		accessValidity:  accessValidity,
		refreshValidity: refreshValidity,
	}
}

// RefreshValidity is the refresh token lifetime; the cookie max-age and the
// redis TTL both derive from it.
func (m *TokenManager) RefreshValidity() time.Duration {
	return m.refreshValidity
}

// GeneratePair mints an access/refresh pair for the given identity.
func (m *TokenManager) GeneratePair(userID string, isAdmin bool) (*TokenPair, error) {
	access, err := m.generate(userID, isAdmin, m.accessValidity)
	if err != nil {
		return nil, err
	}
	refresh, err := m.generate(userID, isAdmin, m.refreshValidity)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *TokenManager) generate(userID string, isAdmin bool, validity time.Duration) (string, error) {
	// The jti makes every token unique even when two are minted within the
	// same second; refresh rotation depends on the old and new token strings
	// differing.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	})
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims. Any parse or
// signature failure maps to ErrInvalidToken.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
