package domain

import "time"

// EntryFilter narrows a project's ledger. Relative windows are anchored to
// "now" and combine with the absolute bounds by AND; every field is
// independently optional.
type EntryFilter struct {
	ThisWeek  bool
	ThisMonth bool
	PrevWeek  bool
	PrevMonth bool
	DateFrom  *Date
	DateTo    *Date
}

// Matches reports whether a date passes every active filter dimension.
func (f EntryFilter) Matches(d Date, now time.Time) bool {
	t := d.Time()

	if f.ThisWeek && !sameISOWeek(t, now) {
		return false
	}
	if f.PrevWeek && !sameISOWeek(t, now.AddDate(0, 0, -7)) {
		return false
	}
	if f.ThisMonth && !sameMonth(t, now) {
		return false
	}
	if f.PrevMonth && !sameMonth(t, previousMonth(now)) {
		return false
	}
	if f.DateFrom != nil && d.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && d.After(*f.DateTo) {
		return false
	}
	return true
}

// Calendar weeks are ISO weeks, so this-week and prev-week windows are
// disjoint by construction.
func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// previousMonth anchors on the first of the month before stepping back, so
// month-end dates cannot normalize into the wrong month.
func previousMonth(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, 0, -1)
}
