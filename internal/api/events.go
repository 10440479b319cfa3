package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

// eventsHandler provides REST handlers for event management.
type eventsHandler struct {
	events *store.EventStore
}

func registerEventRoutes(r chi.Router, es *store.EventStore) {
	h := &eventsHandler{events: es}
	r.Get("/events", h.List)
	r.Post("/events", h.Create)
	r.Put("/events/{id}", h.Update)
	r.Delete("/events/{id}", h.Delete)
	r.Put("/events/{id}/participants", h.UpdateParticipants)
	r.Post("/events/{id}/select", h.Select)
	r.Patch("/events/filters", h.PatchFilters)
}

// EventListResponse is the filtered view of the collection plus the current
// selection.
type EventListResponse struct {
	Events     []model.Event `json:"events"`
	SelectedID int64         `json:"selectedId,omitempty"`
	Filters    model.Filters `json:"filters"`
}

// List returns the events visible under the current filter criteria.
// GET /api/v1/events
func (h *eventsHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := EventListResponse{
		Events:  h.events.FilteredEvents(),
		Filters: h.events.Filters(),
	}
	if sel := h.events.Selected(); sel != nil {
		resp.SelectedID = sel.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new event from a draft body.
// POST /api/v1/events
func (h *eventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d model.EventDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	d.ID = nil // ids are store-assigned
	ev, err := h.events.Add(d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// Update replaces an event wholesale.
// PUT /api/v1/events/{id}
func (h *eventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id", "BAD_REQUEST")
		return
	}
	var d model.EventDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	d.ID = id
	if err := h.events.Update(d); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an event. The REST surface has no confirmation step; the
// request itself is the confirmation.
// DELETE /api/v1/events/{id}
func (h *eventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id", "BAD_REQUEST")
		return
	}
	if err := h.events.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type participantIDsBody struct {
	ParticipantIDs []any `json:"participantIds"`
}

// UpdateParticipants replaces only the participant set of an event.
// PUT /api/v1/events/{id}/participants
func (h *eventsHandler) UpdateParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id", "BAD_REQUEST")
		return
	}
	var body participantIDsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if err := h.events.UpdateParticipants(id, body.ParticipantIDs); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Select moves the current selection.
// POST /api/v1/events/{id}/select
func (h *eventsHandler) Select(w http.ResponseWriter, r *http.Request) {
	h.events.Select(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// PatchFilters merges the present fields into the current criteria; fields
// absent from the body are left unchanged.
// PATCH /api/v1/events/filters
func (h *eventsHandler) PatchFilters(w http.ResponseWriter, r *http.Request) {
	var p model.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	h.events.SetFilters(p)
	writeJSON(w, http.StatusOK, h.events.Filters())
}
