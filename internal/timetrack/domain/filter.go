package domain

import "strings"

type UserType string

const (
	UserTypeAdmin UserType = "ADMIN"
	UserTypeUser  UserType = "USER"
)

type UserActivity string

const (
	UserActivityActive   UserActivity = "ACTIVE"
	UserActivityDisabled UserActivity = "DISABLED"
)

// UserFilter selects users for the admin listing. Values within one
// dimension combine with OR, the dimensions themselves with AND; empty
// dimensions match everything.
type UserFilter struct {
	Email        string
	UserTypes    []UserType
	UserActivity []UserActivity
	Projects     []string
}

// Matches is the reference predicate for the filter. Storage backends may
// push the same semantics down into their query language; this in-memory
// form is what they must agree with.
func (f UserFilter) Matches(u *User) bool {
	if f.Email != "" &&
		!strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
		return false
	}

	if len(f.UserTypes) > 0 && !matchesUserType(f.UserTypes, u.IsAdmin) {
		return false
	}

	if len(f.UserActivity) > 0 && !matchesActivity(f.UserActivity, u.IsActivated) {
		return false
	}

	if len(f.Projects) > 0 && !hasAnyProject(u, f.Projects) {
		return false
	}

	return true
}

func matchesUserType(types []UserType, isAdmin bool) bool {
	for _, t := range types {
		if (t == UserTypeAdmin && isAdmin) || (t == UserTypeUser && !isAdmin) {
			return true
		}
	}
	return false
}

func matchesActivity(states []UserActivity, isActivated bool) bool {
	for _, s := range states {
		if (s == UserActivityActive && isActivated) || (s == UserActivityDisabled && !isActivated) {
			return true
		}
	}
	return false
}

// hasAnyProject matches on name regardless of enablement state.
func hasAnyProject(u *User, names []string) bool {
	for _, p := range u.Projects {
		for _, n := range names {
			if p.Name == n {
				return true
			}
		}
	}
	return false
}
