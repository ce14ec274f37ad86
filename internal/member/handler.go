// AngelaMos | 2026
// handler.go

package member

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, requireGym func(http.Handler) http.Handler,
) {
	r.Route("/members", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireGym)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{memberID}", h.Get)
		r.Patch("/{memberID}", h.Update)
		r.Delete("/{memberID}", h.Delete)
	})
}

// List returns the gym's live members ordered by expiration date.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	gymID := middleware.GetGymID(r.Context())

	params := ListMembersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", defaultPageSize),
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, ok := ParseStatus(strings.ToUpper(raw)); ok {
			params.Status = status
		}
	}
	params.Normalize()

	members, total, err := h.service.List(r.Context(), gymID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToMemberResponseList(members, h.service.Today()),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	gymID := middleware.GetGymID(r.Context())

	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.Create(r.Context(), gymID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToMemberResponse(m, h.service.Today()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	gymID := middleware.GetGymID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	m, err := h.service.Get(r.Context(), gymID, memberID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToMemberResponse(m, h.service.Today()))
}

// Update handles both field edits and the PAUSE / RESUME actions.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	gymID := middleware.GetGymID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	var (
		m   *Member
		err error
	)
	if req.HasAction() {
		m, err = h.service.Apply(r.Context(), gymID, memberID, *req.Action)
	} else {
		m, err = h.service.Update(r.Context(), gymID, memberID, req)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToMemberResponse(m, h.service.Today()))
}

// Delete soft deletes a member.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	gymID := middleware.GetGymID(r.Context())
	memberID := chi.URLParam(r, "memberID")

	if err := h.service.Delete(r.Context(), gymID, memberID); err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func writeError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "member")
	case errors.Is(err, ErrStateChanged):
		core.JSONError(w, core.InvalidStateError("membership state changed concurrently"))
	case errors.Is(err, ErrNotPaused):
		core.JSONError(w, core.InvalidStateError("member is not paused"))
	case errors.Is(err, core.ErrInvalidState):
		core.JSONError(w, core.InvalidStateError("invalid membership state"))
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("member"))
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
