package http

import (
	"time"

	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
)

// Transport views. Shaping happens here so the password hash and activation
// link can never leak: the views simply have no field for them.

type StatView struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Comment string  `json:"comment,omitempty"`
}

type ProjectView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Hours      float64   `json:"hours"`
	IsDisabled bool      `json:"isDisabled"`
}

type UserView struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	IsActivated bool          `json:"isActivated"`
	IsAdmin     bool          `json:"isAdmin"`
	TotalHours  float64       `json:"totalHours"`
	Projects    []ProjectView `json:"projects"`
}

type StatsPageView struct {
	Items       []StatView `json:"items"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

// ProjectStatsView is the project's own fields plus one page of its ledger.
type ProjectStatsView struct {
	ProjectView
	Stats StatsPageView `json:"stats"`
}

type UsersPageView struct {
	Users       []UserView `json:"users"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

func NewStatView(s domain.StatEntry) StatView {
	return StatView{
		ID:      s.ID,
		Date:    s.Date.String(),
		Hours:   s.Hours,
		Comment: s.Comment,
	}
}

func NewProjectView(p domain.Project) ProjectView {
	return ProjectView{
		ID:         p.ID,
		Name:       p.Name,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Hours:      p.Hours,
		IsDisabled: p.IsDisabled,
	}
}

func NewUserView(u *domain.User) UserView {
	projects := make([]ProjectView, 0, len(u.Projects))
	for _, p := range u.Projects {
		projects = append(projects, NewProjectView(p))
	}
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		IsActivated: u.IsActivated,
		IsAdmin:     u.IsAdmin,
		TotalHours:  u.TotalHours,
		Projects:    projects,
	}
}

// Request bodies. Field names follow the client's camelCase convention.

type listUsersReq struct {
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
	Email        string   `json:"email"`
	UserTypes    []string `json:"userTypes"`
	UserActivity []string `json:"userActivity"`
	Projects     []string `json:"projects"`
}

type editUserReq struct {
	Projects []string `json:"projects"`
	IsAdmin  *bool    `json:"isAdmin"`
}

type trackingReq struct {
	UserID    string  `json:"userId"`
	ProjectID string  `json:"projectId"`
	Hours     float64 `json:"hours"`
	Date      string  `json:"date"`
	Comment   string  `json:"comment"`
}

type editStatReq struct {
	UserID    string  `json:"userId"`
	ProjectID string  `json:"projectId"`
	StatID    string  `json:"statId"`
	Hours     float64 `json:"hours"`
	Date      string  `json:"date"`
	Comment   string  `json:"comment"`
}

type projectStatsReq struct {
	ProjectID string `json:"projectId"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	ThisWeek  bool   `json:"thisWeek"`
	ThisMonth bool   `json:"thisMonth"`
	PrevWeek  bool   `json:"prevWeek"`
	PrevMonth bool   `json:"prevMonth"`
	DateFrom  string `json:"dateFrom"`
	DateTo    string `json:"dateTo"`
}
