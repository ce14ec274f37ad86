// AngelaMos | 2026
// staff_test.go

package staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/core"
)

func setupMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestServiceCreateLowercasesEmail(t *testing.T) {
	repo, mock := setupMockRepo(t)
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO staff \(id, email, password_hash, name, role\)`).
		WithArgs(sqlmock.AnyArg(), "coach@dojo.kr", "hash", "Coach", RoleStaff).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at", "token_version"}).
			AddRow(now, now, 0))

	info, err := NewService(repo).Create(context.Background(), "Coach@Dojo.KR", "hash", "Coach")
	require.NoError(t, err)

	assert.Equal(t, "coach@dojo.kr", info.Email)
	assert.Equal(t, RoleStaff, info.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicateEmail(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`INSERT INTO staff`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &Staff{ID: "s-1", Email: "a@b.c"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM staff WHERE id = \$1 AND deleted_at IS NULL`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceUpdateRoleRejectsUnknownRole(t *testing.T) {
	repo, _ := setupMockRepo(t)

	_, err := NewService(repo).UpdateRole(context.Background(), "s-1", "owner")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

type stubRepo struct {
	Repository
	accounts map[string]*Staff
	deleted  []string
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*Staff, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, core.ErrNotFound
}

func (s *stubRepo) SoftDelete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestServiceDeleteProtectsAdmins(t *testing.T) {
	repo := &stubRepo{accounts: map[string]*Staff{
		"admin-1": {ID: "admin-1", Role: RoleAdmin},
		"coach-1": {ID: "coach-1", Role: RoleStaff},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Delete(ctx, "admin-2", "admin-1")
	assert.True(t, errors.Is(err, core.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, "admin-2", "coach-1"))
	require.NoError(t, svc.Delete(ctx, "admin-1", "admin-1"))
	assert.Equal(t, []string{"coach-1", "admin-1"}, repo.deleted)
}

func TestServiceGetWithoutIDIsUnauthorized(t *testing.T) {
	_, err := NewService(&stubRepo{}).Get(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
