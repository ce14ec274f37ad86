// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/member"
)

type Counts struct {
	OverdueCount    int `json:"overdue_count"     db:"overdue_count"`
	Expiring7dCount int `json:"expiring_7d_count" db:"expiring_7d_count"`
	NewThisMonth    int `json:"new_this_month"    db:"new_this_month"`
}

type Repository interface {
	Counts(ctx context.Context, gymID string, today calendar.Date, loc *time.Location) (Counts, error)
	RevenueRows(ctx context.Context, gymID string) ([]RevenueRow, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Counts tallies live members by status and those created this month.
// Paused members are left out of the status counts.
func (r *repository) Counts(
	ctx context.Context,
	gymID string,
	today calendar.Date,
	loc *time.Location,
) (Counts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (
				WHERE membership_state = 'ACTIVE' AND expire_date <= $2
			) AS overdue_count,
			COUNT(*) FILTER (
				WHERE membership_state = 'ACTIVE'
				  AND expire_date >= $3 AND expire_date <= $4
			) AS expiring_7d_count,
			COUNT(*) FILTER (
				WHERE created_at >= $5 AND created_at < $6
			) AS new_this_month
		FROM members
		WHERE gym_id = $1 AND deleted_at IS NULL`

	overdue := member.RangeForStatus(member.StatusOverdue, today)
	expiring := member.RangeForStatus(member.StatusExpiring, today)

	month := today.YearMonth()
	monthStart := time.Date(month.Year, month.Month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var c Counts
	err := r.db.GetContext(ctx, &c, query,
		gymID,
		*overdue.To,
		*expiring.From,
		*expiring.To,
		monthStart,
		monthEnd,
	)
	if err != nil {
		return Counts{}, fmt.Errorf("dashboard counts: %w", err)
	}

	return c, nil
}

func (r *repository) RevenueRows(ctx context.Context, gymID string) ([]RevenueRow, error) {
	query := `
		SELECT start_date, expire_date, created_at
		FROM members
		WHERE gym_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	var rows []RevenueRow
	if err := r.db.SelectContext(ctx, &rows, query, gymID); err != nil {
		return nil, fmt.Errorf("dashboard revenue rows: %w", err)
	}

	return rows, nil
}
