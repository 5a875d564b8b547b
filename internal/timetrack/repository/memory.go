package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
)

// MemoryRepository is a map-backed UserRepository with the same observable
// semantics as the Postgres one, including the version check on Save. Used
// by service tests and local development.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*domain.User)}
}

func (r *MemoryRepository) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}

	now := time.Now()
	u.Version = 1
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryRepository) GetByActivationLink(_ context.Context, link string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ActivationLink != "" && u.ActivationLink == link {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *MemoryRepository) Save(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if stored.Version != u.Version {
		return domain.ErrVersionConflict
	}

	u.Version++
	u.UpdatedAt = time.Now()
	saved := cloneUser(u)
	saved.CreatedAt = stored.CreatedAt
	r.users[u.ID] = saved
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, f domain.UserFilter, skip, limit int) ([]domain.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if f.Matches(u) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	out := make([]domain.User, 0, end-skip)
	for _, u := range matched[skip:end] {
		out = append(out, *cloneUser(u))
	}
	return out, total, nil
}

func (r *MemoryRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneUser(u *domain.User) *domain.User {
	out := *u
	out.Projects = make([]domain.Project, len(u.Projects))
	for i, p := range u.Projects {
		out.Projects[i] = p
		out.Projects[i].Stats = append([]domain.StatEntry(nil), p.Stats...)
	}
	return &out
}
