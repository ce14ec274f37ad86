// AngelaMos | 2026
// dashboard_test.go

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

func setupMockDB(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestRepositoryCounts(t *testing.T) {
	repo, mock := setupMockDB(t)
	today := calendar.New(2024, time.March, 15)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER .* FROM members WHERE gym_id = \$1 AND deleted_at IS NULL`).
		WithArgs(
			"g-1",
			"2024-03-14",
			"2024-03-15",
			"2024-03-22",
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		).
		WillReturnRows(sqlmock.NewRows([]string{
			"overdue_count", "expiring_7d_count", "new_this_month",
		}).AddRow(int64(2), int64(3), int64(4)))

	counts, err := repo.Counts(context.Background(), "g-1", today, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, Counts{OverdueCount: 2, Expiring7dCount: 3, NewThisMonth: 4}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryRevenueRows(t *testing.T) {
	repo, mock := setupMockDB(t)
	created := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT start_date, expire_date, created_at FROM members WHERE gym_id = \$1 AND deleted_at IS NULL ORDER BY created_at ASC`).
		WithArgs("g-1").
		WillReturnRows(sqlmock.NewRows([]string{"start_date", "expire_date", "created_at"}).
			AddRow("2024-01-01", "2024-04-01", created).
			AddRow(nil, "2024-02-05", created))

	rows, err := repo.RevenueRows(context.Background(), "g-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].StartDate)
	assert.Equal(t, calendar.New(2024, time.January, 1), *rows[0].StartDate)
	assert.Nil(t, rows[1].StartDate)
	assert.Equal(t, created, rows[1].CreatedAt)
}

func TestCountsCacheWithoutRedisLoads(t *testing.T) {
	var cache *CountsCache
	calls := 0

	counts, err := cache.GetOrLoad(context.Background(), "g-1", calendar.New(2024, 1, 1),
		func(context.Context) (Counts, error) {
			calls++
			return Counts{OverdueCount: 1}, nil
		})
	require.NoError(t, err)

	assert.Equal(t, 1, counts.OverdueCount)
	assert.Equal(t, 1, calls)
	cache.MembersChanged(context.Background(), "g-1")
}

func TestCountsCacheFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := NewCountsCache(rdb, time.Minute)

	counts, err := cache.GetOrLoad(context.Background(), "g-1", calendar.New(2024, 1, 1),
		func(context.Context) (Counts, error) {
			return Counts{NewThisMonth: 7}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 7, counts.NewThisMonth)

	loadErr := errors.New("db down")
	_, err = cache.GetOrLoad(context.Background(), "g-1", calendar.New(2024, 1, 1),
		func(context.Context) (Counts, error) {
			return Counts{}, loadErr
		})
	assert.ErrorIs(t, err, loadErr)
}

type fakeRepo struct {
	counts Counts
	rows   []RevenueRow
	err    error
}

func (f *fakeRepo) Counts(context.Context, string, calendar.Date, *time.Location) (Counts, error) {
	return f.counts, f.err
}

func (f *fakeRepo) RevenueRows(context.Context, string) ([]RevenueRow, error) {
	return f.rows, f.err
}

func TestHandlerGet(t *testing.T) {
	repo := &fakeRepo{
		counts: Counts{OverdueCount: 1, Expiring7dCount: 2, NewThisMonth: 3},
		rows: []RevenueRow{
			{StartDate: datePtr(2024, time.January, 1), ExpireDate: datePtr(2024, time.April, 1)},
		},
	}
	clock := core.FixedClock{At: time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)}
	h := NewHandler(NewService(repo, nil, clock, DefaultPriceBounds))

	req := httptest.NewRequest(http.MethodGet, "/dashboard?month=2024-01&unitPrice=200000", nil)
	req = req.WithContext(middleware.WithGymID(req.Context(), "g-1"))
	rec := httptest.NewRecorder()

	h.Get(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data Response `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	got := env.Data
	assert.Equal(t, 1, got.OverdueCount)
	assert.Equal(t, 2, got.Expiring7dCount)
	assert.Equal(t, 3, got.NewThisMonth)
	assert.Equal(t, int64(200000), got.UnitPrice)
	assert.Equal(t, "2024-01", got.SelectedMonth)
	assert.Equal(t, "2024년 1월", got.SelectedMonthLabel)
	assert.Len(t, got.DailySales, 31)
	assert.Equal(t, int64(600000), got.SelectedMonthSales)
	assert.Equal(t, int64(0), got.CurrentMonthSales)
	assert.Equal(t, int64(600000), got.PreviousMonthSales)
}

func TestHandlerGetStoreFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection reset")}
	clock := core.FixedClock{At: time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)}
	h := NewHandler(NewService(repo, nil, clock, DefaultPriceBounds))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
