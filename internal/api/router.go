package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veleth/stagehand/internal/contentservice"
)

// NewRouter creates a chi router with the read-only record routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *contentservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/records/{kind}", h.ListRecords)
	r.Get("/records/{kind}/search", h.SearchRecords)
	r.Get("/records/{kind}/{slug}", h.GetRecord)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
