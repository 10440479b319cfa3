package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eventdesk/eventdesk/internal/api"
	"github.com/eventdesk/eventdesk/internal/controller"
	"github.com/eventdesk/eventdesk/internal/store"
	"github.com/eventdesk/eventdesk/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Sessions     *scs.SessionManager
	Controller   *controller.Controller
	Events       *store.EventStore
	Participants *store.ParticipantStore
	Tags         *store.TagStore
}

// NewRouter assembles the full chi router: web UI pages, action routes,
// confirm-delete gates, the JSON API under /api/v1, and /metrics.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.Sessions.LoadAndSave)

	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(staticSub))))

	pages := NewPagesHandler(deps.Controller, deps.Events, deps.Participants, deps.Tags, deps.Sessions)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
	})

	// Page navigation. Each GET is an explicit navigation: it clears the
	// edit context and the banner, then renders the full page.
	r.Get("/events", pages.Events)
	r.Get("/participants", pages.Participants)
	r.Get("/tags", pages.Tags)
	r.Get("/events/new", pages.NewEvent)
	r.Get("/events/edit", pages.EditEvent)

	// Event actions.
	r.Post("/events", pages.SubmitEvent)
	r.Post("/events/cancel", pages.CancelEvent)
	r.Post("/events/filters", pages.SetFilters)
	r.Post("/events/select", pages.SelectEvent)
	r.Get("/events/{id}/confirm-delete", pages.ConfirmDeleteEvent)
	r.Post("/events/{id}/delete", pages.DeleteEvent)
	r.Post("/events/{id}/participants", pages.UpdateEventParticipants)

	// Participant actions.
	r.Post("/participants", pages.AddParticipant)
	r.Get("/participants/{id}/confirm-delete", pages.ConfirmDeleteParticipant)
	r.Post("/participants/{id}/delete", pages.DeleteParticipant)

	// Tag actions.
	r.Post("/tags", pages.AddTag)
	r.Post("/tags/{id}", pages.UpdateTag)
	r.Get("/tags/{id}/confirm-delete", pages.ConfirmDeleteTag)
	r.Post("/tags/{id}/delete", pages.DeleteTag)

	// Theme toggle, session-scoped.
	theme := NewThemeHandler(deps.Sessions)
	r.Post("/theme", theme.Toggle)

	r.Handle("/metrics", promhttp.Handler())

	apiRouter := api.NewAPIRouter(api.Deps{
		Events:       deps.Events,
		Participants: deps.Participants,
		Tags:         deps.Tags,
	})
	r.Mount("/api/v1", apiRouter)

	return r
}
