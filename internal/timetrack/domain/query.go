package domain

import (
	"sort"
	"time"
)

// ActiveProjects returns the projects with IsDisabled == false, preserving
// roster order. Used for the non-administrative "my projects" view.
func ActiveProjects(u *User) []Project {
	out := make([]Project, 0, len(u.Projects))
	for _, p := range u.Projects {
		if !p.IsDisabled {
			out = append(out, p)
		}
	}
	return out
}

// FilterEntries returns the project's ledger sorted by date descending
// (ties keep ledger order) with the filter applied against "now".
func FilterEntries(p *Project, f EntryFilter, now time.Time) []StatEntry {
	sorted := make([]StatEntry, len(p.Stats))
	copy(sorted, p.Stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	out := make([]StatEntry, 0, len(sorted))
	for _, s := range sorted {
		if f.Matches(s.Date, now) {
			out = append(out, s)
		}
	}
	return out
}
