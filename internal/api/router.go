package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventdesk/eventdesk/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Events       *store.EventStore
	Participants *store.ParticipantStore
	Tags         *store.TagStore
}

// NewAPIRouter creates a chi sub-router for /api/v1. It exposes the same
// command surface the stores offer the web UI. The participant and tag
// delete routes hit the stores directly; the in-use precondition inside the
// stores keeps referenced entities undeletable here too.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(jsonContentType)

	r.Get("/status", statusHandler)

	registerEventRoutes(r, deps.Events)
	registerParticipantRoutes(r, deps.Participants)
	registerTagRoutes(r, deps.Tags)

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
