// AngelaMos | 2026
// service.go

package gym

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a gym owned by staffID. Owning a gym already is a
// conflict.
func (s *Service) Create(ctx context.Context, staffID, name string) (*Gym, error) {
	if _, err := s.repo.FindForStaff(ctx, staffID); err == nil {
		return nil, core.ConflictError("gym already exists")
	} else if !errors.Is(err, core.ErrNoGym) {
		return nil, err
	}

	g := &Gym{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(name),
	}

	if err := s.repo.CreateWithOwner(ctx, g, staffID); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError("gym already exists")
		}
		return nil, err
	}

	slog.InfoContext(ctx, "gym created", "gym_id", g.ID, "staff_id", staffID)
	return g, nil
}

func (s *Service) GymIDForStaff(ctx context.Context, staffID string) (string, error) {
	g, err := s.repo.FindForStaff(ctx, staffID)
	if err != nil {
		return "", err
	}
	return g.ID, nil
}

func (s *Service) Me(ctx context.Context, staffID string) (*MeResponse, error) {
	if staffID == "" {
		return nil, fmt.Errorf("me: %w", core.ErrUnauthorized)
	}

	g, err := s.repo.FindForStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	return &MeResponse{
		StaffID: staffID,
		GymID:   g.ID,
		GymName: g.Name,
	}, nil
}

var _ middleware.GymResolver = (*Service)(nil)
