// AngelaMos | 2026
// dto.go

package member

import (
	"time"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

type CreateMemberRequest struct {
	Name       string  `json:"name"        validate:"required,min=1,max=100"`
	Phone      string  `json:"phone"       validate:"required,max=32"`
	Gender     string  `json:"gender"      validate:"required"`
	Belt       string  `json:"belt"        validate:"omitempty,max=32"`
	BeltDegree *int    `json:"belt_degree" validate:"omitempty,gte=0,lte=4"`
	BirthDate  string  `json:"birth_date"  validate:"omitempty,yyyymmdd"`
	StartDate  string  `json:"start_date"  validate:"omitempty,yyyymmdd"`
	ExpireDate string  `json:"expire_date" validate:"required,yyyymmdd"`
	Memo       *string `json:"memo"        validate:"omitempty,max=2000"`
}

// UpdateMemberRequest is either a lifecycle action or a partial field
// edit. Absent fields are left untouched; for the nullable fields an
// empty string clears the value.
type UpdateMemberRequest struct {
	Action     *string `json:"action,omitempty"`
	Name       *string `json:"name,omitempty"        validate:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone,omitempty"       validate:"omitempty,max=32"`
	Gender     *string `json:"gender,omitempty"`
	Belt       *string `json:"belt,omitempty"`
	BeltDegree *int    `json:"belt_degree,omitempty" validate:"omitempty,gte=0,lte=4"`
	BirthDate  *string `json:"birth_date,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	ExpireDate *string `json:"expire_date,omitempty"`
	Memo       *string `json:"memo,omitempty"        validate:"omitempty,max=2000"`
}

func (r *UpdateMemberRequest) HasAction() bool {
	return r.Action != nil && *r.Action != ""
}

type MemberResponse struct {
	ID              string          `json:"id"`
	GymID           string          `json:"gym_id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Gender          Gender          `json:"gender"`
	BirthDate       *calendar.Date  `json:"birth_date"`
	Belt            *Belt           `json:"belt"`
	BeltDegree      *int            `json:"belt_degree"`
	StartDate       *calendar.Date  `json:"start_date"`
	ExpireDate      calendar.Date   `json:"expire_date"`
	MembershipState MembershipState `json:"membership_state"`
	PausedAt        *time.Time      `json:"paused_at"`
	PausedDaysTotal int             `json:"paused_days_total"`
	Memo            *string         `json:"memo"`
	Status          *Status         `json:"status,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ListMembersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Status   Status `json:"status"`
	Today    calendar.Date
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func (p *ListMembersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

func (p *ListMembersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToMemberResponse(m *Member, today calendar.Date) MemberResponse {
	resp := MemberResponse{
		ID:              m.ID,
		GymID:           m.GymID,
		Name:            m.Name,
		Phone:           m.Phone,
		Gender:          m.Gender,
		BirthDate:       m.BirthDate,
		Belt:            m.Belt,
		BeltDegree:      m.BeltDegree,
		StartDate:       m.StartDate,
		ExpireDate:      m.ExpireDate,
		MembershipState: m.MembershipState,
		PausedAt:        m.PausedAt,
		PausedDaysTotal: m.PausedDaysTotal,
		Memo:            m.Memo,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if status, ok := StatusOf(m, today); ok {
		resp.Status = &status
	}

	return resp
}

func ToMemberResponseList(members []Member, today calendar.Date) []MemberResponse {
	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, ToMemberResponse(&members[i], today))
	}
	return responses
}
