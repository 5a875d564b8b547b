// Package repository persists the User aggregate as a single document:
// scalar columns for the identity fields plus a JSONB projects column, so a
// load/save pair always moves the whole roster and ledger atomically.
package repository

import (
	"context"

	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
)

type UserRepository interface {
	// Create inserts a new user. A duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, u *domain.User) error

	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByActivationLink(ctx context.Context, link string) (*domain.User, error)

	// Save writes the full aggregate back. The user's Version must match the
	// stored one; a stale version yields ErrVersionConflict and writes
	// nothing. On success the version is bumped both in storage and on u.
	Save(ctx context.Context, u *domain.User) error

	Delete(ctx context.Context, id string) error

	// List returns one page of users matching the filter plus the total
	// match count. Ordering is newest-first by creation time.
	List(ctx context.Context, f domain.UserFilter, skip, limit int) ([]domain.User, int, error)

	// ListIDs returns every user id; used by the aggregate sweep job.
	ListIDs(ctx context.Context) ([]string, error)
}
