// AngelaMos | 2026
// entity.go

package staff

import (
	"time"
)

// Staff is a console account: a gym owner or coach, or a platform admin.
type Staff struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (s *Staff) IsDeleted() bool {
	return s.DeletedAt != nil
}

func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)
