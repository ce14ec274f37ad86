// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prunerFunc func(ctx context.Context) (int64, error)

func (f prunerFunc) PruneSessions(ctx context.Context) (int64, error) { return f(ctx) }

func TestPruneSessions(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Sessions: prunerFunc(func(context.Context) (int64, error) { return 4, nil }),
	})

	rec := httptest.NewRecorder()
	h.PruneSessions(rec, httptest.NewRequest(http.MethodPost, "/admin/sessions/prune", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data PruneResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, int64(4), env.Data.Removed)
}

func TestPruneSessionsFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Sessions: prunerFunc(func(context.Context) (int64, error) {
			return 0, errors.New("connection refused")
		}),
	})

	rec := httptest.NewRecorder()
	h.PruneSessions(rec, httptest.NewRequest(http.MethodPost, "/admin/sessions/prune", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPruneSessionsNotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(HandlerConfig{}).PruneSessions(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSystemStatsReportsReachability(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBStats:   func() sql.DBStats { return sql.DBStats{OpenConnections: 3, InUse: 1} },
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("timeout") },
	})

	rec := httptest.NewRecorder()
	h.GetSystemStats(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	assert.True(t, env.Data.Database.Healthy)
	require.NotNil(t, env.Data.Database.Stats)
	assert.Equal(t, 3, env.Data.Database.Stats.OpenConnections)
	assert.False(t, env.Data.Redis.Healthy)
	assert.Nil(t, env.Data.Redis.Stats)
	assert.NotEmpty(t, env.Data.Runtime.GoVersion)
}
