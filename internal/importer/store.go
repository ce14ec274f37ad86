// AngelaMos | 2026
// store.go

package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/carterperez-dev/dojo-console/internal/member"
)

type memberStore struct {
	repo member.Repository
}

// NewMemberStore adapts the member repository to the import Store.
func NewMemberStore(repo member.Repository) Store {
	return &memberStore{repo: repo}
}

func (s *memberStore) FindByPhones(
	ctx context.Context,
	gymID string,
	phones []string,
) ([]member.PhoneRef, error) {
	return s.repo.FindByPhones(ctx, gymID, phones)
}

// Insert creates an ACTIVE member with no paused days. A missing start
// date stays empty; readers fall back to the creation day.
func (s *memberStore) Insert(
	ctx context.Context,
	gymID string,
	fields member.ImportFields,
) (member.PhoneRef, error) {
	m := &member.Member{
		ID:              uuid.New().String(),
		GymID:           gymID,
		Name:            fields.Name,
		Phone:           fields.Phone,
		Gender:          fields.Gender,
		StartDate:       fields.StartDate,
		ExpireDate:      fields.ExpireDate,
		MembershipState: member.StateActive,
		Memo:            fields.Memo,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return member.PhoneRef{}, err
	}

	return member.PhoneRef{ID: m.ID, Phone: m.Phone}, nil
}

func (s *memberStore) UpdateByID(
	ctx context.Context,
	gymID, id string,
	fields member.ImportFields,
) error {
	return s.repo.UpdateImportFields(ctx, gymID, id, fields)
}
