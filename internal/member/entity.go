// AngelaMos | 2026
// entity.go

package member

import (
	"time"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type MembershipState string

const (
	StateActive MembershipState = "ACTIVE"
	StatePaused MembershipState = "PAUSED"
)

type Status string

const (
	StatusNormal   Status = "NORMAL"
	StatusExpiring Status = "EXPIRING"
	StatusOverdue  Status = "OVERDUE"
)

// Belt is a martial-arts rank. Ranks are ordered; see Belt.Rank.
type Belt string

const (
	BeltWhite  Belt = "WHITE"
	BeltGrey   Belt = "GREY"
	BeltOrange Belt = "ORANGE"
	BeltGreen  Belt = "GREEN"
	BeltBlue   Belt = "BLUE"
	BeltPurple Belt = "PURPLE"
	BeltBrown  Belt = "BROWN"
	BeltBlack  Belt = "BLACK"
)

const (
	MinBeltDegree = 0
	MaxBeltDegree = 4
)

var beltOrder = []Belt{
	BeltWhite,
	BeltGrey,
	BeltOrange,
	BeltGreen,
	BeltBlue,
	BeltPurple,
	BeltBrown,
	BeltBlack,
}

// Rank is the zero-based position of b in the belt progression,
// or -1 for an unknown belt.
func (b Belt) Rank() int {
	for i, known := range beltOrder {
		if known == b {
			return i
		}
	}
	return -1
}

type Member struct {
	ID              string          `db:"id"`
	GymID           string          `db:"gym_id"`
	Name            string          `db:"name"`
	Phone           string          `db:"phone"`
	Gender          Gender          `db:"gender"`
	BirthDate       *calendar.Date  `db:"birth_date"`
	Belt            *Belt           `db:"belt"`
	BeltDegree      *int            `db:"belt_degree"`
	StartDate       *calendar.Date  `db:"start_date"`
	ExpireDate      calendar.Date   `db:"expire_date"`
	MembershipState MembershipState `db:"membership_state"`
	PausedAt        *time.Time      `db:"paused_at"`
	PausedDaysTotal int             `db:"paused_days_total"`
	Memo            *string         `db:"memo"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	DeletedAt       *time.Time      `db:"deleted_at"`
}

func (m *Member) IsDeleted() bool {
	return m.DeletedAt != nil
}

func (m *Member) IsPaused() bool {
	return m.MembershipState == StatePaused
}

// EffectiveStart is the start date, or the creation day when no start
// date was recorded.
func (m *Member) EffectiveStart(loc *time.Location) calendar.Date {
	if m.StartDate != nil {
		return *m.StartDate
	}
	return calendar.Today(m.CreatedAt, loc)
}

// PhoneRef is the minimal projection used to reconcile imports.
type PhoneRef struct {
	ID    string `db:"id"`
	Phone string `db:"phone"`
}

// ImportFields are the columns a spreadsheet import may overwrite on an
// existing member. Belt and birth date are not part of the sheet.
type ImportFields struct {
	Name       string
	Phone      string
	Gender     Gender
	StartDate  *calendar.Date
	ExpireDate calendar.Date
	Memo       *string
}
