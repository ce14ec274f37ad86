// AngelaMos | 2026
// repository.go

package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dojo-console/internal/core"
)

// Repository persists members. Every call is scoped to one gym and
// ignores soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, gymID, id string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	UpdateMembership(
		ctx context.Context,
		m *Member,
		expected MembershipState,
	) error
	UpdateImportFields(
		ctx context.Context,
		gymID, id string,
		fields ImportFields,
	) error
	SoftDelete(ctx context.Context, gymID, id string) error
	List(
		ctx context.Context,
		gymID string,
		params ListMembersParams,
	) ([]Member, int, error)
	FindByPhones(
		ctx context.Context,
		gymID string,
		phones []string,
	) ([]PhoneRef, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const memberColumns = `
	id, gym_id, name, phone, gender, birth_date, belt, belt_degree,
	start_date, expire_date, membership_state, paused_at, paused_days_total,
	memo, created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (
			id, gym_id, name, phone, gender, birth_date, belt, belt_degree,
			start_date, expire_date, membership_state, paused_at,
			paused_days_total, memo
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID,
		m.GymID,
		m.Name,
		m.Phone,
		m.Gender,
		m.BirthDate,
		m.Belt,
		m.BeltDegree,
		m.StartDate,
		m.ExpireDate,
		m.MembershipState,
		m.PausedAt,
		m.PausedDaysTotal,
		m.Memo,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create member: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	gymID, id string,
) (*Member, error) {
	query := `SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}

	return &m, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET name = $3, phone = $4, gender = $5, birth_date = $6, belt = $7,
		    belt_degree = $8, start_date = $9, expire_date = $10, memo = $11,
		    updated_at = NOW()
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &m.UpdatedAt, query,
		m.ID,
		m.GymID,
		m.Name,
		m.Phone,
		m.Gender,
		m.BirthDate,
		m.Belt,
		m.BeltDegree,
		m.StartDate,
		m.ExpireDate,
		m.Memo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update member: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update member: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update member: %w", err)
	}

	return nil
}

// UpdateMembership writes the pause/resume columns only if the stored
// state still equals expected. A concurrent transition makes the update
// match zero rows, reported as ErrStateChanged.
func (r *repository) UpdateMembership(
	ctx context.Context,
	m *Member,
	expected MembershipState,
) error {
	query := `
		UPDATE members
		SET membership_state = $3, paused_at = $4, paused_days_total = $5,
		    expire_date = $6, updated_at = NOW()
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL
		  AND membership_state = $7
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &m.UpdatedAt, query,
		m.ID,
		m.GymID,
		m.MembershipState,
		m.PausedAt,
		m.PausedDaysTotal,
		m.ExpireDate,
		expected,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update membership: %w", ErrStateChanged)
	}
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}

	return nil
}

func (r *repository) UpdateImportFields(
	ctx context.Context,
	gymID, id string,
	fields ImportFields,
) error {
	query := `
		UPDATE members
		SET name = $3, gender = $4, start_date = $5, expire_date = $6,
		    memo = $7, updated_at = NOW()
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		id,
		gymID,
		fields.Name,
		fields.Gender,
		fields.StartDate,
		fields.ExpireDate,
		fields.Memo,
	)
	if err != nil {
		return fmt.Errorf("update imported member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update imported member: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update imported member: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, gymID, id string) error {
	query := `
		UPDATE members
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND gym_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, gymID)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete member: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	gymID string,
	params ListMembersParams,
) ([]Member, int, error) {
	params.Normalize()

	conditions := []string{"gym_id = $1", "deleted_at IS NULL"}
	args := []any{gymID}
	argIdx := 2

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR phone ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Status != "" {
		conditions = append(conditions, "membership_state = 'ACTIVE'")

		rng := RangeForStatus(params.Status, params.Today)
		if rng.From != nil {
			conditions = append(conditions, fmt.Sprintf("expire_date >= $%d", argIdx))
			args = append(args, *rng.From)
			argIdx++
		}
		if rng.To != nil {
			conditions = append(conditions, fmt.Sprintf("expire_date <= $%d", argIdx))
			args = append(args, *rng.To)
			argIdx++
		}
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM members WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM members
		WHERE %s
		ORDER BY expire_date ASC, created_at ASC
		LIMIT $%d OFFSET $%d`,
		memberColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var members []Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}

	return members, total, nil
}

func (r *repository) FindByPhones(
	ctx context.Context,
	gymID string,
	phones []string,
) ([]PhoneRef, error) {
	if len(phones) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, phone
		FROM members
		WHERE gym_id = ? AND deleted_at IS NULL AND phone IN (?)`,
		gymID, phones)
	if err != nil {
		return nil, fmt.Errorf("find members by phone: %w", err)
	}

	var refs []PhoneRef
	if err := r.db.SelectContext(ctx, &refs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find members by phone: %w", err)
	}

	return refs, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
