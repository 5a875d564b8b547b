package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatEntry is a single time-ledger record. Entries are append-only: once
// created they are edited in place by id, never removed.
type StatEntry struct {
	ID      string  `json:"id"`
	Date    Date    `json:"date"`
	Hours   float64 `json:"hours"`
	Comment string  `json:"comment,omitempty"`
}

// Project is one named roster slot owned by a user. Projects are never
// deleted; reconciliation only flips IsDisabled. Hours is derived from the
// ledger and rebuilt by Recompute.
type Project struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Hours      float64     `json:"hours"`
	IsDisabled bool        `json:"is_disabled"`
	Stats      []StatEntry `json:"stats"`
}

// User is the aggregate root. Projects are owned exclusively by the user and
// persist as part of the same document. TotalHours is derived.
//
// Version is the optimistic-concurrency token checked by the repository on
// save; it never leaves the persistence boundary.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	IsAdmin        bool      `json:"is_admin"`
	IsActivated    bool      `json:"is_activated"`
	ActivationLink string    `json:"-"`
	TotalHours     float64   `json:"total_hours"`
	Projects       []Project `json:"projects"`
	Version        int64     `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProject creates an enabled project with an empty ledger.
func NewProject(name string, now time.Time) Project {
	return Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindProject resolves a project by id within the user.
func (u *User) FindProject(projectID string) (*Project, error) {
	for i := range u.Projects {
		if u.Projects[i].ID == projectID {
			return &u.Projects[i], nil
		}
	}
	return nil, ErrProjectNotFound
}

// FindStat resolves a ledger entry by id within the project.
func (p *Project) FindStat(statID string) (*StatEntry, error) {
	for i := range p.Stats {
		if p.Stats[i].ID == statID {
			return &p.Stats[i], nil
		}
	}
	return nil, ErrStatNotFound
}
