// AngelaMos | 2026
// service.go

package member

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/metrics"
)

// ChangeNotifier is told whenever a gym's member set changes so derived
// data (dashboard counts) can be dropped.
type ChangeNotifier interface {
	MembersChanged(ctx context.Context, gymID string)
}

type Service struct {
	repo     Repository
	clock    core.Clock
	notifier ChangeNotifier
}

func NewService(repo Repository, clock core.Clock, notifier ChangeNotifier) *Service {
	return &Service{
		repo:     repo,
		clock:    clock,
		notifier: notifier,
	}
}

func (s *Service) Today() calendar.Date {
	return calendar.Today(s.clock.Now(), s.clock.Location())
}

func (s *Service) Create(
	ctx context.Context,
	gymID string,
	req CreateMemberRequest,
) (*Member, error) {
	phone := NormalizePhone(req.Phone)
	if phone == "" {
		return nil, invalid("phone must contain digits")
	}

	gender, ok := ParseGender(req.Gender)
	if !ok {
		return nil, invalid("gender must be MALE or FEMALE")
	}

	expireDate, err := strictDate(req.ExpireDate, "expire_date")
	if err != nil {
		return nil, err
	}

	birthDate, err := optionalDate(req.BirthDate, "birth_date")
	if err != nil {
		return nil, err
	}

	startDate, err := optionalDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	if startDate == nil {
		today := s.Today()
		startDate = &today
	}

	m := &Member{
		ID:              uuid.New().String(),
		GymID:           gymID,
		Name:            strings.TrimSpace(req.Name),
		Phone:           phone,
		Gender:          gender,
		BirthDate:       birthDate,
		StartDate:       startDate,
		ExpireDate:      expireDate,
		MembershipState: StateActive,
		PausedDaysTotal: 0,
		Memo:            normalizeMemo(req.Memo),
	}

	if req.Belt != "" {
		belt, ok := ParseBelt(req.Belt)
		if !ok {
			return nil, invalid("belt is invalid")
		}
		m.Belt = &belt
	}

	if req.BeltDegree != nil {
		if !ValidBeltDegree(*req.BeltDegree) {
			return nil, invalid("belt_degree must be 0~4")
		}
		degree := *req.BeltDegree
		m.BeltDegree = &degree
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.changed(ctx, gymID)
	return m, nil
}

func (s *Service) Get(ctx context.Context, gymID, id string) (*Member, error) {
	return s.repo.GetByID(ctx, gymID, id)
}

func (s *Service) List(
	ctx context.Context,
	gymID string,
	params ListMembersParams,
) ([]Member, int, error) {
	params.Today = s.Today()
	return s.repo.List(ctx, gymID, params)
}

// Update applies a partial field edit. Lifecycle columns are never
// touched here.
func (s *Service) Update(
	ctx context.Context,
	gymID, id string,
	req UpdateMemberRequest,
) (*Member, error) {
	m, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		return nil, err
	}

	if err := applyPatch(m, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.changed(ctx, gymID)
	return m, nil
}

func applyPatch(m *Member, req UpdateMemberRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invalid("name must not be empty")
		}
		m.Name = name
	}

	if req.Phone != nil {
		phone := NormalizePhone(*req.Phone)
		if phone == "" {
			return invalid("phone must contain digits")
		}
		m.Phone = phone
	}

	if req.Gender != nil {
		gender, ok := ParseGender(*req.Gender)
		if !ok {
			return invalid("gender must be MALE or FEMALE")
		}
		m.Gender = gender
	}

	if req.Belt != nil {
		if strings.TrimSpace(*req.Belt) == "" {
			m.Belt = nil
		} else {
			belt, ok := ParseBelt(*req.Belt)
			if !ok {
				return invalid("belt is invalid")
			}
			m.Belt = &belt
		}
	}

	if req.BeltDegree != nil {
		if !ValidBeltDegree(*req.BeltDegree) {
			return invalid("belt_degree must be 0~4")
		}
		degree := *req.BeltDegree
		m.BeltDegree = &degree
	}

	if req.BirthDate != nil {
		d, err := optionalDate(*req.BirthDate, "birth_date")
		if err != nil {
			return err
		}
		m.BirthDate = d
	}

	if req.StartDate != nil {
		d, err := optionalDate(*req.StartDate, "start_date")
		if err != nil {
			return err
		}
		m.StartDate = d
	}

	if req.ExpireDate != nil {
		d, err := strictDate(*req.ExpireDate, "expire_date")
		if err != nil {
			return err
		}
		m.ExpireDate = d
	}

	if req.Memo != nil {
		m.Memo = normalizeMemo(req.Memo)
	}

	return nil
}

// Pause moves a member to PAUSED, stamping the pause instant.
func (s *Service) Pause(ctx context.Context, gymID, id string) (*Member, error) {
	current, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		return nil, err
	}

	if current.IsPaused() && current.PausedAt != nil {
		return current, nil
	}

	next, err := Pause(*current, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMembership(ctx, &next, current.MembershipState); err != nil {
		return nil, err
	}

	metrics.RecordMembershipTransition(string(ActionPause))
	slog.InfoContext(ctx, "membership paused",
		"gym_id", gymID,
		"member_id", id,
	)

	s.changed(ctx, gymID)
	return &next, nil
}

// Resume moves a PAUSED member back to ACTIVE and credits the paused days
// to the expiration date.
func (s *Service) Resume(ctx context.Context, gymID, id string) (*Member, error) {
	current, err := s.repo.GetByID(ctx, gymID, id)
	if err != nil {
		return nil, err
	}

	next, pausedDays, err := Resume(*current, s.clock.Now(), s.clock.Location())
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMembership(ctx, &next, StatePaused); err != nil {
		return nil, err
	}

	metrics.RecordMembershipTransition(string(ActionResume))
	slog.InfoContext(ctx, "membership resumed",
		"gym_id", gymID,
		"member_id", id,
		"paused_days", pausedDays,
		"expire_date", next.ExpireDate.String(),
	)

	s.changed(ctx, gymID)
	return &next, nil
}

// Apply dispatches a lifecycle action by name (case-insensitive).
func (s *Service) Apply(
	ctx context.Context,
	gymID, id, action string,
) (*Member, error) {
	switch Action(strings.ToUpper(strings.TrimSpace(action))) {
	case ActionPause:
		return s.Pause(ctx, gymID, id)
	case ActionResume:
		return s.Resume(ctx, gymID, id)
	default:
		return nil, invalid(fmt.Sprintf("unknown action %q", action))
	}
}

func (s *Service) Delete(ctx context.Context, gymID, id string) error {
	if err := s.repo.SoftDelete(ctx, gymID, id); err != nil {
		return err
	}

	s.changed(ctx, gymID)
	return nil
}

func (s *Service) changed(ctx context.Context, gymID string) {
	if s.notifier != nil {
		s.notifier.MembersChanged(ctx, gymID)
	}
}

// strictDate accepts only zero-padded YYYY-MM-DD naming a real day.
func strictDate(raw, field string) (calendar.Date, error) {
	raw = strings.TrimSpace(raw)
	if !calendar.IsStrict(raw) {
		return calendar.Date{}, invalid(field + " must be YYYY-MM-DD")
	}

	d, err := calendar.Parse(raw)
	if err != nil {
		return calendar.Date{}, invalid(field + " must be YYYY-MM-DD")
	}
	return d, nil
}

func optionalDate(raw, field string) (*calendar.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	d, err := strictDate(raw, field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func normalizeMemo(memo *string) *string {
	if memo == nil {
		return nil
	}
	return NormalizeText(*memo)
}

func invalid(message string) error {
	return core.ValidationError(message)
}
