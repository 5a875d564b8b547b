// Package service wires the roster, ledger, and query logic to the
// persistence boundary. Every mutating call is one request-scoped
// read-modify-write of a single user aggregate; the repository's version
// check turns concurrent writes into domain.ErrVersionConflict instead of a
// lost update, and the service deliberately does not retry.
package service

import (
	"context"
	"time"

	"github.com/hourglass-app/hourglass-backend/internal/logging"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/repository"
)

type UserService struct {
	repo repository.UserRepository
	log  logging.Logger
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository, log logging.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// ReconcileRequest carries the desired roster for one user. A nil IsAdmin
// leaves the admin flag alone.
type ReconcileRequest struct {
	UserID       string
	ProjectNames []string
	IsAdmin      *bool
}

// ReconcileRoster applies the non-destructive roster diff and refreshes the
// derived totals.
func (s *UserService) ReconcileRoster(ctx context.Context, req ReconcileRequest) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := domain.Reconcile(u, req.ProjectNames, s.now()); err != nil {
		return nil, err
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	domain.Recompute(u)

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// TrackRequest records hours against one project. Date is optional
// "YYYY-MM-DD"; empty means today.
type TrackRequest struct {
	UserID    string
	ProjectID string
	Hours     float64
	Date      string
	Comment   string
}

func (s *UserService) TrackHours(ctx context.Context, req TrackRequest) (*domain.User, error) {
	var date domain.Date
	if req.Date != "" {
		var err error
		if date, err = domain.ParseDate(req.Date); err != nil {
			return nil, err
		}
	}

	u, err := s.repo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.AppendEntry(u, req.ProjectID, req.Hours, date, req.Comment); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// EditStatRequest overwrites one ledger entry. All fields are required.
type EditStatRequest struct {
	UserID    string
	ProjectID string
	StatID    string
	Hours     float64
	Date      string
	Comment   string
}

func (s *UserService) EditStat(ctx context.Context, req EditStatRequest) (*domain.Project, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := domain.EditEntry(u, req.ProjectID, req.StatID, req.Hours, date, req.Comment); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	p, err := u.FindProject(req.ProjectID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UserListRequest is the admin listing query. Zero Page/Limit take the
// defaults (1, DefaultPageLimit).
type UserListRequest struct {
	Page   int
	Limit  int
	Filter domain.UserFilter
}

type UserPage struct {
	Items       []domain.User
	CurrentPage int
	TotalPages  int
}

func (s *UserService) ListUsers(ctx context.Context, req UserListRequest) (*UserPage, error) {
	page := domain.Page{Number: req.Page, Limit: req.Limit}
	if page.Number == 0 {
		page.Number = 1
	}
	if page.Limit == 0 {
		page.Limit = domain.DefaultPageLimit
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, req.Filter, page.Skip(), page.Limit)
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Items:       items,
		CurrentPage: page.Number,
		TotalPages:  domain.TotalPages(total, page.Limit),
	}, nil
}

// EntryListRequest is the date-windowed listing over one project's ledger.
type EntryListRequest struct {
	UserID    string
	ProjectID string
	Page      int
	Limit     int
	ThisWeek  bool
	ThisMonth bool
	PrevWeek  bool
	PrevMonth bool
	DateFrom  string
	DateTo    string
}

type EntryPage struct {
	Items       []domain.StatEntry
	CurrentPage int
	TotalPages  int
}

// ProjectEntries is the project's own fields plus one page of its ledger.
type ProjectEntries struct {
	Project domain.Project
	Stats   EntryPage
}

func (s *UserService) ListEntries(ctx context.Context, req EntryListRequest) (*ProjectEntries, error) {
	page := domain.Page{Number: req.Page, Limit: req.Limit}
	if page.Number == 0 {
		page.Number = 1
	}
	if page.Limit == 0 {
		page.Limit = domain.DefaultPageLimit
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	filter := domain.EntryFilter{
		ThisWeek:  req.ThisWeek,
		ThisMonth: req.ThisMonth,
		PrevWeek:  req.PrevWeek,
		PrevMonth: req.PrevMonth,
	}
	if req.DateFrom != "" {
		from, err := domain.ParseDate(req.DateFrom)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := domain.ParseDate(req.DateTo)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &to
	}

	u, err := s.repo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	p, err := u.FindProject(req.ProjectID)
	if err != nil {
		return nil, err
	}

	entries := domain.FilterEntries(p, filter, s.now())
	lo, hi := page.Bounds(len(entries))

	return &ProjectEntries{
		Project: *p,
		Stats: EntryPage{
			Items:       entries[lo:hi],
			CurrentPage: page.Number,
			TotalPages:  domain.TotalPages(len(entries), page.Limit),
		},
	}, nil
}

// ActiveProjects returns the user's enabled projects in roster order.
func (s *UserService) ActiveProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.ActiveProjects(u), nil
}

// DeleteUser removes the whole aggregate. Administrative operation; the
// roster itself is never deleted through any other path.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// RecomputeAll sweeps every user and rebuilds derived totals. Run from the
// nightly job; a version conflict just means the user was written
// concurrently, in which case that write already recomputed.
func (s *UserService) RecomputeAll(ctx context.Context) error {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			s.log.Warn(ctx, "sweep: load user failed", "user_id", id, "err", err)
			continue
		}

		before := u.TotalHours
		perProject := make([]float64, len(u.Projects))
		for i, p := range u.Projects {
			perProject[i] = p.Hours
		}

		domain.Recompute(u)

		changed := u.TotalHours != before
		for i, p := range u.Projects {
			if p.Hours != perProject[i] {
				changed = true
			}
		}
		if !changed {
			continue
		}

		s.log.Info(ctx, "sweep: healed drifted totals", "user_id", id, "from", before, "to", u.TotalHours)
		if err := s.repo.Save(ctx, u); err != nil {
			s.log.Warn(ctx, "sweep: save failed", "user_id", id, "err", err)
		}
	}
	return nil
}
