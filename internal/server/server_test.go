// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/config"
)

type flag struct{ down bool }

func (f *flag) SetShutdown(shutdown bool) { f.down = shutdown }

func TestRouterRecoversPanics(t *testing.T) {
	srv := New(Config{ServerConfig: config.ServerConfig{Host: "127.0.0.1", Port: 0}})
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAddr(t *testing.T) {
	srv := New(Config{ServerConfig: config.ServerConfig{Host: "0.0.0.0", Port: 8080}})
	assert.Equal(t, "0.0.0.0:8080", srv.Addr())
}

func TestShutdownFlipsHealthBeforeStopping(t *testing.T) {
	health := &flag{}
	srv := New(Config{
		ServerConfig:  config.ServerConfig{Host: "127.0.0.1", Port: 0},
		HealthHandler: health,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx, 10*time.Millisecond))
	assert.True(t, health.down)
	assert.NoError(t, srv.Start(), "start after shutdown returns ErrServerClosed")
}
