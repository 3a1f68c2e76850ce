package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veleth/stagehand/internal/apperr"
	"github.com/veleth/stagehand/internal/contentservice"
)

// Handler holds the read-only API route handlers.
type Handler struct {
	svc *contentservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *contentservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListRecords handles GET /records/{kind}. Query parameters become field
// filters; a filter on a field the kind does not declare simply matches
// nothing.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 && values[0] != "" {
			filters[key] = values[0]
		}
	}

	result, err := h.svc.List(r.Context(), kind, filters)
	if err != nil {
		h.writeError(w, kind, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SearchRecords handles GET /records/{kind}/search?q=.
func (h *Handler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}

	result, err := h.svc.Search(r.Context(), kind, q)
	if err != nil {
		h.writeError(w, kind, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetRecord handles GET /records/{kind}/{slug}.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	slug := chi.URLParam(r, "slug")

	record, err := h.svc.Get(r.Context(), kind, slug)
	if err != nil {
		h.writeError(w, kind, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) writeError(w http.ResponseWriter, kind string, err error) {
	switch {
	case errors.Is(err, contentservice.ErrUnknownKind):
		writeJSON(w, http.StatusNotFound, errorBody("unknown record kind: "+kind))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case apperr.IsFormat(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	default:
		slog.Error("api request failed", slog.String("kind", kind), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
