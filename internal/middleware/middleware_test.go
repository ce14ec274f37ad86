// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (v stubVerifier) VerifyAccessToken(context.Context, string) (*AccessTokenClaims, error) {
	return v.claims, v.err
}

type stubResolver map[string]string

func (s stubResolver) GymIDForStaff(_ context.Context, staffID string) (string, error) {
	if gymID, ok := s[staffID]; ok {
		return gymID, nil
	}
	return "", fmt.Errorf("resolve gym: %w", core.ErrNoGym)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body core.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	h := Authenticator(stubVerifier{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
}

func TestAuthenticatorMapsExpiredToken(t *testing.T) {
	verifier := stubVerifier{err: fmt.Errorf("verify: %w", core.ErrTokenExpired)}
	h := Authenticator(verifier)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, rec))
}

func TestAuthenticatorThenRequireGym(t *testing.T) {
	verifier := stubVerifier{claims: &AccessTokenClaims{UserID: "s-1", Role: "staff"}}

	var gotGym, gotStaff string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGym = GetGymID(r.Context())
		gotStaff = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	h := Authenticator(verifier)(RequireGym(stubResolver{"s-1": "g-1"})(final))

	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set("Authorization", "bearer token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "g-1", gotGym)
	assert.Equal(t, "s-1", gotStaff)
}

func TestRequireGymWithoutGym(t *testing.T) {
	h := RequireGym(stubResolver{})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: "s-9"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_GYM", errorCode(t, rec))
}

func TestRequireGymResolverFailure(t *testing.T) {
	resolver := resolverFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	})
	h := RequireGym(resolver)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: "s-1"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type resolverFunc func(context.Context, string) (string, error)

func (f resolverFunc) GymIDForStaff(ctx context.Context, staffID string) (string, error) {
	return f(ctx, staffID)
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: "s-1", Role: "staff"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: "s-1", Role: "admin"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Bearer  abc ")
	assert.Equal(t, "abc", ExtractToken(req))
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestKeyByGym(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/import/members", nil)
	req = req.WithContext(WithGymID(req.Context(), "g-1"))

	assert.Equal(t, "ratelimit:gym:g-1:import", KeyByGym("import")(req))
}

func TestLocalLimiterExhaustsBurst(t *testing.T) {
	l := newLocalLimiter()
	limit := PerMinute(60, 2)

	first := l.allow("k", limit)
	second := l.allow("k", limit)
	third := l.allow("k", limit)

	assert.Equal(t, 1, first.Allowed)
	assert.Equal(t, 1, second.Allowed)
	assert.Equal(t, 0, third.Allowed)
	assert.Equal(t, time.Second, third.RetryAfter)
	assert.Equal(t, 1, l.allow("other", limit).Allowed)
}

func TestLocalLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	l := newLocalLimiter()
	l.now = func() time.Time { return now }

	l.allow("idle", PerMinute(60, 1))
	now = now.Add(localBucketTTL)
	l.allow("fresh", PerMinute(60, 1))

	assert.NotContains(t, l.buckets, "idle")
	assert.Contains(t, l.buckets, "fresh")
}

func TestRateLimiterFallsBackWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewRateLimiter(rdb, RateLimitConfig{
		Limit:    PerHour(30, 1),
		KeyFunc:  KeyByGym("import"),
		FailOpen: true,
	})
	h := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/import/members", nil)
		req = req.WithContext(WithGymID(req.Context(), "g-1"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "30", first.Header().Get("X-RateLimit-Limit"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, second))
	assert.Equal(t, "120", second.Header().Get("Retry-After"))
}

func TestKeyByIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5123"
	assert.Equal(t, "ratelimit:ip:10.0.0.9", KeyByIP(req))

	req.Header.Set("X-Real-IP", "10.0.0.7")
	assert.Equal(t, "ratelimit:ip:10.0.0.7", KeyByIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "ratelimit:ip:2.2.2.2", KeyByIP(req))
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(true)(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
