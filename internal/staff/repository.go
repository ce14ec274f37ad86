// AngelaMos | 2026
// repository.go

package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/dojo-console/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id string) (*Staff, error)
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	UpdateProfile(ctx context.Context, s *Staff) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListStaffParams) ([]Staff, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const staffColumns = `id, email, password_hash, name, role, token_version,
	created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, s *Staff) error {
	query := `
		INSERT INTO staff (id, email, password_hash, name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at, token_version`

	err := r.db.QueryRowxContext(ctx, query,
		s.ID,
		s.Email,
		s.PasswordHash,
		s.Name,
		s.Role,
	).Scan(&s.CreatedAt, &s.UpdatedAt, &s.TokenVersion)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create staff: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create staff: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Staff, error) {
	query := `SELECT ` + staffColumns + `
		FROM staff
		WHERE id = $1 AND deleted_at IS NULL`

	var s Staff
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get staff: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}

	return &s, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	query := `SELECT ` + staffColumns + `
		FROM staff
		WHERE email = $1 AND deleted_at IS NULL`

	var s Staff
	err := r.db.GetContext(ctx, &s, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get staff by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get staff by email: %w", err)
	}

	return &s, nil
}

// UpdateProfile writes name and role.
func (r *repository) UpdateProfile(ctx context.Context, s *Staff) error {
	query := `
		UPDATE staff
		SET name = $2, role = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &s.UpdatedAt, query, s.ID, s.Name, s.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update staff: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE staff
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

// IncrementTokenVersion invalidates every access token issued so far.
func (r *repository) IncrementTokenVersion(ctx context.Context, id string) error {
	query := `
		UPDATE staff
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "increment token version", query, id)
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE staff
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "delete staff", query, id)
}

func (r *repository) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListStaffParams,
) ([]Staff, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL"}
	var args []any
	argIdx := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM staff WHERE " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count staff: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM staff
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		staffColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var accounts []Staff
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list staff: %w", err)
	}

	return accounts, total, nil
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
