// AngelaMos | 2026
// handler.go

package importer

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dojo-console/internal/core"
	"github.com/carterperez-dev/dojo-console/internal/middleware"
)

const uploadField = "file"

var errTooLarge = errors.New("upload exceeds size limit")

type Handler struct {
	reconciler     *Reconciler
	maxUploadBytes int64
}

func NewHandler(reconciler *Reconciler, maxUploadBytes int64) *Handler {
	return &Handler{
		reconciler:     reconciler,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, requireGym, limiter func(http.Handler) http.Handler,
) {
	r.Route("/import", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireGym)
		r.Use(limiter)

		r.Post("/members", h.ImportMembers)
	})
}

// ImportMembers accepts a multipart upload with a CSV or XLSX file under
// the "file" field.
func (h *Handler) ImportMembers(w http.ResponseWriter, r *http.Request) {
	gymID := middleware.GetGymID(r.Context())

	if r.ContentLength > h.maxUploadBytes {
		writeTooLarge(w, errTooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeTooLarge(w, err)
			return
		}
		core.BadRequest(w, "CSV file is required")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		core.BadRequest(w, "CSV file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		core.BadRequest(w, "file could not be read")
		return
	}

	format := DetectFormat(header.Filename, header.Header.Get("Content-Type"))

	summary, err := h.reconciler.ImportFile(r.Context(), gymID, format, data)
	if err != nil {
		if IsRejection(err) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summary)
}

func writeTooLarge(w http.ResponseWriter, err error) {
	core.JSONError(w, core.NewAppError(
		err,
		"file is too large",
		http.StatusRequestEntityTooLarge,
		"PAYLOAD_TOO_LARGE",
	))
}
