package domain

import "time"

// Reconcile synchronizes the user's roster with the desired set of project
// names. Existing projects whose name is absent from the set are disabled,
// present ones are enabled, and names with no matching project get a fresh
// enabled project inserted at the front of the roster. Nothing is ever
// deleted, so ledgers and totals survive any number of reconciliations.
//
// Duplicate names in desiredNames collapse; order is irrelevant except that
// newly created projects keep the order in which their names first appear.
// Project timestamps are only touched when the enablement state actually
// changes, which makes the operation idempotent.
//
// Totals are not recomputed here; callers that need refreshed aggregates run
// Recompute afterwards.
func Reconcile(u *User, desiredNames []string, now time.Time) error {
	if u == nil {
		return ErrUserNotFound
	}

	desired := make(map[string]bool, len(desiredNames))
	for _, name := range desiredNames {
		desired[name] = true
	}

	existing := make(map[string]bool, len(u.Projects))
	for i := range u.Projects {
		p := &u.Projects[i]
		existing[p.Name] = true

		enabled := desired[p.Name]
		if p.IsDisabled == !enabled {
			continue
		}
		p.IsDisabled = !enabled
		p.UpdatedAt = now
	}

	var created []Project
	seen := make(map[string]bool, len(desiredNames))
	for _, name := range desiredNames {
		if existing[name] || seen[name] {
			continue
		}
		seen[name] = true
		created = append(created, NewProject(name, now))
	}
	if len(created) > 0 {
		u.Projects = append(created, u.Projects...)
	}

	return nil
}
