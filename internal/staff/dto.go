// AngelaMos | 2026
// dto.go

package staff

import (
	"time"
)

type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=staff admin"`
}

type StaffResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListStaffParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

func (p *ListStaffParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListStaffParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToStaffResponse(s *Staff) StaffResponse {
	return StaffResponse{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		Role:      s.Role,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToStaffResponseList(accounts []Staff) []StaffResponse {
	responses := make([]StaffResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToStaffResponse(&accounts[i]))
	}
	return responses
}
