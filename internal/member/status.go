// AngelaMos | 2026
// status.go

package member

import (
	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

// ExpiringWindowDays is how far ahead (inclusive of today) a membership
// counts as expiring.
const ExpiringWindowDays = 7

// ClassifyStatus derives the membership status from the expiration date.
//
//	diff < 0       OVERDUE
//	0 <= diff <= 7 EXPIRING
//	diff > 7       NORMAL
func ClassifyStatus(expire, today calendar.Date) Status {
	diff := calendar.DaysBetween(today, expire)

	switch {
	case diff < 0:
		return StatusOverdue
	case diff <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusNormal
	}
}

// StatusOf is ClassifyStatus for a stored member. Paused and deleted
// members have no status.
func StatusOf(m *Member, today calendar.Date) (Status, bool) {
	if m.IsDeleted() || m.IsPaused() {
		return "", false
	}
	return ClassifyStatus(m.ExpireDate, today), true
}

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusNormal, StatusExpiring, StatusOverdue:
		return Status(raw), true
	default:
		return "", false
	}
}

// ExpireRange is the inclusive expire_date window matching a status.
// A nil bound is open.
type ExpireRange struct {
	From *calendar.Date
	To   *calendar.Date
}

func RangeForStatus(s Status, today calendar.Date) ExpireRange {
	switch s {
	case StatusOverdue:
		to := today.AddDays(-1)
		return ExpireRange{To: &to}
	case StatusExpiring:
		to := today.AddDays(ExpiringWindowDays)
		return ExpireRange{From: &today, To: &to}
	default:
		from := today.AddDays(ExpiringWindowDays + 1)
		return ExpireRange{From: &from}
	}
}
