// AngelaMos | 2026
// handler.go

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, requireGym func(http.Handler) http.Handler,
) {
	r.With(authenticator, requireGym).Get("/dashboard", h.Get)
}

// Get serves GET /dashboard?month=YYYY-MM&unitPrice=N.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	resp, err := h.service.Get(
		r.Context(),
		middleware.GetGymID(r.Context()),
		q.Get("month"),
		q.Get("unitPrice"),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
