package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerUser(t *testing.T) *User {
	t.Helper()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	u := &User{ID: "u-1", Email: "dev@example.com"}
	require.NoError(t, Reconcile(u, []string{"backend", "frontend"}, now))
	return u
}

func TestAppendEntry(t *testing.T) {
	t.Run("prepends and rebuilds totals", func(t *testing.T) {
		u := ledgerUser(t)
		p := u.Projects[0]

		first, err := AppendEntry(u, p.ID, 3, mustDate(t, "2026-03-02"), "api work")
		require.NoError(t, err)
		second, err := AppendEntry(u, p.ID, 2.5, mustDate(t, "2026-03-03"), "")
		require.NoError(t, err)

		got, err := u.FindProject(p.ID)
		require.NoError(t, err)
		require.Len(t, got.Stats, 2)
		assert.Equal(t, second.ID, got.Stats[0].ID, "newest entry first")
		assert.Equal(t, first.ID, got.Stats[1].ID)
		assert.Equal(t, 5.5, got.Hours)
		assert.Equal(t, 5.5, u.TotalHours)
		assert.Equal(t, mustDate(t, "2026-03-03").Time(), got.UpdatedAt)
	})

	t.Run("zero date defaults to today", func(t *testing.T) {
		u := ledgerUser(t)

		entry, err := AppendEntry(u, u.Projects[0].ID, 1, Date{}, "")
		require.NoError(t, err)

		assert.True(t, entry.Date.Equal(Today()))
	})

	t.Run("zero hours is a valid entry", func(t *testing.T) {
		u := ledgerUser(t)

		_, err := AppendEntry(u, u.Projects[0].ID, 0, mustDate(t, "2026-03-02"), "sick day")
		require.NoError(t, err)

		assert.Equal(t, 0.0, u.TotalHours)
		assert.Len(t, u.Projects[0].Stats, 1)
	})

	t.Run("negative hours rejected", func(t *testing.T) {
		u := ledgerUser(t)

		_, err := AppendEntry(u, u.Projects[0].ID, -1, mustDate(t, "2026-03-02"), "")
		assert.ErrorIs(t, err, ErrNegativeHours)
	})

	t.Run("disabled project still accepts entries", func(t *testing.T) {
		u := ledgerUser(t)
		disabled := u.Projects[1].ID
		require.NoError(t, Reconcile(u, []string{u.Projects[0].Name}, time.Now()))

		_, err := AppendEntry(u, disabled, 2, mustDate(t, "2026-03-02"), "")
		require.NoError(t, err)
		assert.Equal(t, 2.0, u.TotalHours, "disabled projects count toward the total")
	})

	t.Run("unknown project", func(t *testing.T) {
		u := ledgerUser(t)

		_, err := AppendEntry(u, "nope", 1, mustDate(t, "2026-03-02"), "")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("nil user", func(t *testing.T) {
		_, err := AppendEntry(nil, "p", 1, Date{}, "")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestEditEntry(t *testing.T) {
	setup := func(t *testing.T) (*User, string, string) {
		u := ledgerUser(t)
		pid := u.Projects[0].ID
		entry, err := AppendEntry(u, pid, 4, mustDate(t, "2026-03-02"), "draft")
		require.NoError(t, err)
		_, err = AppendEntry(u, pid, 1, mustDate(t, "2026-03-04"), "")
		require.NoError(t, err)
		return u, pid, entry.ID
	}

	t.Run("overwrites in place and rebuilds totals", func(t *testing.T) {
		u, pid, sid := setup(t)
		require.Equal(t, 5.0, u.TotalHours)

		got, err := EditEntry(u, pid, sid, 8, mustDate(t, "2026-03-05"), "final")
		require.NoError(t, err)

		assert.Equal(t, 8.0, got.Hours)
		assert.Equal(t, "final", got.Comment)
		assert.True(t, got.Date.Equal(mustDate(t, "2026-03-05")))

		p, err := u.FindProject(pid)
		require.NoError(t, err)
		assert.Equal(t, sid, p.Stats[1].ID, "position preserved")
		assert.Equal(t, 9.0, p.Hours)
		assert.Equal(t, 9.0, u.TotalHours)
	})

	t.Run("lowering hours lowers the totals", func(t *testing.T) {
		u, pid, sid := setup(t)

		_, err := EditEntry(u, pid, sid, 0.5, mustDate(t, "2026-03-02"), "")
		require.NoError(t, err)

		assert.Equal(t, 1.5, u.TotalHours)
	})

	t.Run("date is required", func(t *testing.T) {
		u, pid, sid := setup(t)

		_, err := EditEntry(u, pid, sid, 2, Date{}, "")
		assert.ErrorIs(t, err, ErrBadDate)
	})

	t.Run("negative hours rejected", func(t *testing.T) {
		u, pid, sid := setup(t)

		_, err := EditEntry(u, pid, sid, -2, mustDate(t, "2026-03-02"), "")
		assert.ErrorIs(t, err, ErrNegativeHours)
	})

	t.Run("unknown stat", func(t *testing.T) {
		u, pid, _ := setup(t)

		_, err := EditEntry(u, pid, "nope", 2, mustDate(t, "2026-03-02"), "")
		assert.ErrorIs(t, err, ErrStatNotFound)
	})

	t.Run("unknown project", func(t *testing.T) {
		u, _, sid := setup(t)

		_, err := EditEntry(u, "nope", sid, 2, mustDate(t, "2026-03-02"), "")
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestRecompute(t *testing.T) {
	t.Run("heals drifted totals", func(t *testing.T) {
		u := ledgerUser(t)
		_, err := AppendEntry(u, u.Projects[0].ID, 3, mustDate(t, "2026-03-02"), "")
		require.NoError(t, err)

		u.TotalHours = 99
		u.Projects[0].Hours = 42

		Recompute(u)

		assert.Equal(t, 3.0, u.Projects[0].Hours)
		assert.Equal(t, 3.0, u.TotalHours)
	})

	t.Run("empty ledgers yield zero", func(t *testing.T) {
		u := ledgerUser(t)
		u.TotalHours = 7

		Recompute(u)

		assert.Equal(t, 0.0, u.TotalHours)
	})
}
