package handler

import (
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/eventdesk/eventdesk/internal/controller"
	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

// PagesHandler serves the four UI pages and their form actions. Every
// request, page or action, ends by rendering the controller's current view
// in full; there are no partial updates.
type PagesHandler struct {
	ctrl         *controller.Controller
	events       *store.EventStore
	participants *store.ParticipantStore
	tags         *store.TagStore
	sessions     *scs.SessionManager
}

func NewPagesHandler(c *controller.Controller, es *store.EventStore, ps *store.ParticipantStore, ts *store.TagStore, sessions *scs.SessionManager) *PagesHandler {
	return &PagesHandler{ctrl: c, events: es, participants: ps, tags: ts, sessions: sessions}
}

func (h *PagesHandler) theme(r *http.Request) string {
	return h.sessions.GetString(r.Context(), "theme")
}

// renderApp renders whatever page the controller currently shows.
func (h *PagesHandler) renderApp(w http.ResponseWriter, r *http.Request) {
	v := h.ctrl.View()
	key, ok := pageTemplates[v.Page]
	if !ok {
		key = "events.html"
	}
	render(w, key, PageData{View: v, Theme: h.theme(r)})
}

// Events handles GET /events.
func (h *PagesHandler) Events(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Navigate(controller.PageEvents)
	h.renderApp(w, r)
}

// Participants handles GET /participants.
func (h *PagesHandler) Participants(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Navigate(controller.PageParticipants)
	h.renderApp(w, r)
}

// Tags handles GET /tags.
func (h *PagesHandler) Tags(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Navigate(controller.PageTags)
	h.renderApp(w, r)
}

// NewEvent handles GET /events/new: a fresh form with no edit target.
func (h *PagesHandler) NewEvent(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Navigate(controller.PageNewEvent)
	h.renderApp(w, r)
}

// EditEvent handles GET /events/edit: captures the currently selected event
// as the edit target, then shows the form.
func (h *PagesHandler) EditEvent(w http.ResponseWriter, r *http.Request) {
	h.ctrl.EditSelected()
	h.renderApp(w, r)
}

// SubmitEvent handles POST /events: add or update depending on the hidden
// id field, then back to the list.
func (h *PagesHandler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.ctrl.SubmitEventForm(eventDraftFromForm(r))
	h.renderApp(w, r)
}

// CancelEvent handles POST /events/cancel.
func (h *PagesHandler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	h.ctrl.CancelEdit()
	h.renderApp(w, r)
}

// SetFilters handles POST /events/filters. The form always submits all
// three selects, so all three criteria are patched.
func (h *PagesHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	status := r.PostFormValue("status")
	participant := r.PostFormValue("participant")
	tag := r.PostFormValue("tag")
	h.ctrl.SetFilters(model.FilterPatch{
		Status:        &status,
		ParticipantID: &participant,
		TagID:         &tag,
	})
	h.renderApp(w, r)
}

// SelectEvent handles POST /events/select.
func (h *PagesHandler) SelectEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.ctrl.SelectEvent(r.PostFormValue("eventId"))
	h.renderApp(w, r)
}

// ConfirmDeleteEvent handles GET /events/{id}/confirm-delete: the yes/no
// gate shown before an event is deleted.
func (h *PagesHandler) ConfirmDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	title := "this event"
	if ev := h.events.ByID(id); ev != nil {
		title = fmt.Sprintf("%q", ev.Title)
	}
	render(w, "confirm_delete.html", ConfirmData{
		PageData: PageData{View: h.ctrl.View(), Theme: h.theme(r)},
		Title:    "Delete event",
		Message:  fmt.Sprintf("Really delete %s?", title),
		Action:   "/events/" + id + "/delete",
		Cancel:   "/events",
	})
}

// DeleteEvent handles POST /events/{id}/delete, reached only through the
// confirmation page.
func (h *PagesHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DeleteEvent(chi.URLParam(r, "id"))
	h.renderApp(w, r)
}

// UpdateEventParticipants handles POST /events/{id}/participants: replaces
// only the participant set of the event.
func (h *PagesHandler) UpdateEventParticipants(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.ctrl.UpdateParticipants(chi.URLParam(r, "id"), toAnySlice(r.PostForm["participantIds"]))
	h.renderApp(w, r)
}

// AddParticipant handles POST /participants.
func (h *PagesHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.ctrl.AddParticipant(model.ParticipantDraft{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	})
	h.renderApp(w, r)
}

// ConfirmDeleteParticipant handles GET /participants/{id}/confirm-delete.
func (h *PagesHandler) ConfirmDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := "this participant"
	if p := h.participants.ByID(id); p != nil {
		name = p.Name
	}
	render(w, "confirm_delete.html", ConfirmData{
		PageData: PageData{View: h.ctrl.View(), Theme: h.theme(r)},
		Title:    "Delete participant",
		Message:  fmt.Sprintf("Really delete %s?", name),
		Action:   "/participants/" + id + "/delete",
		Cancel:   "/participants",
	})
}

// DeleteParticipant handles POST /participants/{id}/delete. The controller
// refuses when an event still references the participant.
func (h *PagesHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DeleteParticipant(chi.URLParam(r, "id"))
	h.renderApp(w, r)
}

// AddTag handles POST /tags.
func (h *PagesHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.ctrl.AddTag(model.TagDraft{Label: r.PostFormValue("label")})
	h.renderApp(w, r)
}

// UpdateTag handles POST /tags/{id}: inline relabel.
func (h *PagesHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.ctrl.UpdateTag(model.TagDraft{
		ID:    chi.URLParam(r, "id"),
		Label: r.PostFormValue("label"),
	})
	h.renderApp(w, r)
}

// ConfirmDeleteTag handles GET /tags/{id}/confirm-delete.
func (h *PagesHandler) ConfirmDeleteTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	label := "this tag"
	if t := h.tags.ByID(id); t != nil {
		label = fmt.Sprintf("%q", t.Label)
	}
	render(w, "confirm_delete.html", ConfirmData{
		PageData: PageData{View: h.ctrl.View(), Theme: h.theme(r)},
		Title:    "Delete tag",
		Message:  fmt.Sprintf("Really delete %s?", label),
		Action:   "/tags/" + id + "/delete",
		Cancel:   "/tags",
	})
}

// DeleteTag handles POST /tags/{id}/delete.
func (h *PagesHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	h.ctrl.DeleteTag(chi.URLParam(r, "id"))
	h.renderApp(w, r)
}

func eventDraftFromForm(r *http.Request) model.EventDraft {
	return model.EventDraft{
		ID:             r.PostFormValue("id"),
		Title:          r.PostFormValue("title"),
		DateTime:       r.PostFormValue("dateTime"),
		Location:       r.PostFormValue("location"),
		Description:    r.PostFormValue("description"),
		Status:         r.PostFormValue("status"),
		TagIDs:         toAnySlice(r.PostForm["tagIds"]),
		ParticipantIDs: toAnySlice(r.PostForm["participantIds"]),
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
