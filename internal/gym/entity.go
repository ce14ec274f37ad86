// AngelaMos | 2026
// entity.go

package gym

import (
	"time"
)

type Gym struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Membership links a staff account to the gym it administers.
type Membership struct {
	GymID     string    `db:"gym_id"`
	StaffID   string    `db:"staff_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	RoleOwner = "OWNER"
	RoleCoach = "COACH"
)

type CreateGymRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type GymResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MeResponse tells the console who is signed in and which gym they run.
type MeResponse struct {
	StaffID string `json:"staff_id"`
	GymID   string `json:"gym_id"`
	GymName string `json:"gym_name"`
}
