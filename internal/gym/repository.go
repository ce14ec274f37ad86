// AngelaMos | 2026
// repository.go

package gym

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/dojo-console/internal/core"
)

type Repository interface {
	CreateWithOwner(ctx context.Context, g *Gym, staffID string) error
	FindForStaff(ctx context.Context, staffID string) (*Gym, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithOwner inserts the gym and the OWNER link in one transaction.
// A staff member can own a single gym; a second attempt fails with
// ErrDuplicateKey from the unique index on gym_users.staff_id.
func (r *repository) CreateWithOwner(ctx context.Context, g *Gym, staffID string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO gyms (id, name)
			VALUES ($1, $2)
			RETURNING created_at, updated_at`,
			g.ID, g.Name,
		).Scan(&g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create gym: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO gym_users (gym_id, staff_id, role)
			VALUES ($1, $2, $3)`,
			g.ID, staffID, RoleOwner,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("link gym owner: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("link gym owner: %w", err)
		}

		return nil
	})
}

func (r *repository) FindForStaff(ctx context.Context, staffID string) (*Gym, error) {
	query := `
		SELECT g.id, g.name, g.created_at, g.updated_at
		FROM gyms g
		JOIN gym_users gu ON gu.gym_id = g.id
		WHERE gu.staff_id = $1
		ORDER BY gu.created_at ASC
		LIMIT 1`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, staffID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find gym: %w", core.ErrNoGym)
	}
	if err != nil {
		return nil, fmt.Errorf("find gym: %w", err)
	}

	return &g, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
