// AngelaMos | 2026
// tenant.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/dojo-console/internal/core"
)

const GymIDKey contextKey = "gym_id"

// GymResolver finds the gym a staff member administers.
type GymResolver interface {
	GymIDForStaff(ctx context.Context, staffID string) (string, error)
}

// RequireGym scopes the request to the authenticated staff member's gym.
// It must run after Authenticator.
func RequireGym(resolver GymResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID := GetUserID(r.Context())
			if staffID == "" {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			gymID, err := resolver.GymIDForStaff(r.Context(), staffID)
			if err != nil {
				if errors.Is(err, core.ErrNoGym) || errors.Is(err, core.ErrNotFound) {
					core.JSONError(w, core.NoGymError())
					return
				}
				slog.ErrorContext(r.Context(), "resolve gym failed",
					"staff_id", staffID,
					"error", err,
				)
				core.InternalServerError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithGymID(r.Context(), gymID)))
		})
	}
}

func WithGymID(ctx context.Context, gymID string) context.Context {
	return context.WithValue(ctx, GymIDKey, gymID)
}

func GetGymID(ctx context.Context) string {
	if id, ok := ctx.Value(GymIDKey).(string); ok {
		return id
	}
	return ""
}
