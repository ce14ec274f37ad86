// AngelaMos | 2026
// lifecycle.go

package member

import (
	"fmt"
	"time"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/core"
)

type Action string

// Both wrap core.ErrInvalidState.
var (
	ErrNotPaused    = fmt.Errorf("member is not paused: %w", core.ErrInvalidState)
	ErrStateChanged = fmt.Errorf("membership state changed concurrently: %w", core.ErrInvalidState)
)

const (
	ActionPause  Action = "PAUSE"
	ActionResume Action = "RESUME"
)

// Pause freezes the membership clock. The expiration date and the paused
// day total are left alone. Pausing an already paused member keeps the
// original pause timestamp so no frozen days are lost.
func Pause(m Member, now time.Time) (Member, error) {
	if m.IsDeleted() {
		return m, fmt.Errorf("pause member: %w", core.ErrNotFound)
	}

	if m.IsPaused() && m.PausedAt != nil {
		return m, nil
	}

	pausedAt := now
	m.MembershipState = StatePaused
	m.PausedAt = &pausedAt

	return m, nil
}

// Resume unfreezes a paused membership and pushes the expiration date out
// by the number of whole calendar days spent paused, measured between the
// local midnights of the pause instant and now in loc.
//
// The returned int is the number of days credited. On error m is returned
// unchanged.
func Resume(m Member, now time.Time, loc *time.Location) (Member, int, error) {
	if m.IsDeleted() {
		return m, 0, fmt.Errorf("resume member: %w", core.ErrNotFound)
	}

	if m.MembershipState != StatePaused {
		return m, 0, fmt.Errorf("resume member: %w", ErrNotPaused)
	}

	pausedDays := 0
	if m.PausedAt != nil {
		pausedDays = PausedDays(*m.PausedAt, now, loc)
	}

	if pausedDays > 0 {
		m.ExpireDate = m.ExpireDate.AddDays(pausedDays)
	}
	m.PausedDaysTotal += pausedDays
	m.MembershipState = StateActive
	m.PausedAt = nil

	return m, pausedDays, nil
}

// PausedDays is max(0, days between the calendar dates of pausedAt and now).
func PausedDays(pausedAt, now time.Time, loc *time.Location) int {
	from := calendar.Today(pausedAt, loc)
	to := calendar.Today(now, loc)

	days := calendar.DaysBetween(from, to)
	if days < 0 {
		return 0
	}
	return days
}
