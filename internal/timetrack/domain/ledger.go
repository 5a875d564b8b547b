package domain

import (
	"github.com/google/uuid"
)

// AppendEntry records a new ledger entry on the given project. The entry is
// prepended so the ledger reads most-recent-first; a zero date defaults to
// today. The project's UpdatedAt tracks the entry date and all derived
// totals are rebuilt from scratch.
func AppendEntry(u *User, projectID string, hours float64, date Date, comment string) (*StatEntry, error) {
	if u == nil {
		return nil, ErrUserNotFound
	}
	if hours < 0 {
		return nil, ErrNegativeHours
	}

	p, err := u.FindProject(projectID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = Today()
	}

	entry := StatEntry{
		ID:      uuid.NewString(),
		Date:    date,
		Hours:   hours,
		Comment: comment,
	}
	p.Stats = append([]StatEntry{entry}, p.Stats...)
	p.UpdatedAt = date.Time()

	Recompute(u)
	return &p.Stats[0], nil
}

// EditEntry overwrites an existing ledger entry in place, preserving its
// position. The edit path rebuilds totals exactly like the append path so
// the two stay commutative in their aggregate effect.
func EditEntry(u *User, projectID, statID string, hours float64, date Date, comment string) (*StatEntry, error) {
	if u == nil {
		return nil, ErrUserNotFound
	}
	if hours < 0 {
		return nil, ErrNegativeHours
	}
	if date.IsZero() {
		return nil, ErrBadDate
	}

	p, err := u.FindProject(projectID)
	if err != nil {
		return nil, err
	}
	entry, err := p.FindStat(statID)
	if err != nil {
		return nil, err
	}

	entry.Hours = hours
	entry.Date = date
	entry.Comment = comment

	Recompute(u)
	return entry, nil
}
