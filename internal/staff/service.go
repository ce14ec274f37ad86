// AngelaMos | 2026
// service.go

package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dojo-console/internal/auth"
	"github.com/carterperez-dev/dojo-console/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*auth.StaffInfo, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStaffInfo(account), nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*auth.StaffInfo, error) {
	account, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return toStaffInfo(account), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.StaffInfo, error) {
	account := &Staff{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Name:         name,
		Role:         RoleStaff,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	return toStaffInfo(account), nil
}

func (s *Service) IncrementTokenVersion(ctx context.Context, staffID string) error {
	return s.repo.IncrementTokenVersion(ctx, staffID)
}

func (s *Service) UpdatePassword(ctx context.Context, staffID, passwordHash string) error {
	return s.repo.UpdatePassword(ctx, staffID, passwordHash)
}

func (s *Service) Get(ctx context.Context, id string) (*Staff, error) {
	if id == "" {
		return nil, fmt.Errorf("get staff: %w", core.ErrUnauthorized)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	req UpdateProfileRequest,
) (*Staff, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}

	if err := s.repo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Service) UpdateRole(ctx context.Context, id, role string) (*Staff, error) {
	if role != RoleStaff && role != RoleAdmin {
		return nil, fmt.Errorf("update role: invalid role %q: %w", role, core.ErrInvalidInput)
	}

	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.Role = role
	if err := s.repo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementTokenVersion(ctx, id); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Service) Delete(ctx context.Context, requesterID, targetID string) error {
	if requesterID != targetID {
		target, err := s.repo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target.IsAdmin() {
			return fmt.Errorf("delete staff: cannot delete admin: %w", core.ErrForbidden)
		}
	}

	return s.repo.SoftDelete(ctx, targetID)
}

func (s *Service) List(ctx context.Context, params ListStaffParams) ([]Staff, int, error) {
	return s.repo.List(ctx, params)
}

func toStaffInfo(s *Staff) *auth.StaffInfo {
	return &auth.StaffInfo{
		ID:           s.ID,
		Email:        s.Email,
		Name:         s.Name,
		PasswordHash: s.PasswordHash,
		Role:         s.Role,
		TokenVersion: s.TokenVersion,
	}
}

var _ auth.StaffProvider = (*Service)(nil)
