package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

type participantsHandler struct {
	participants *store.ParticipantStore
}

func registerParticipantRoutes(r chi.Router, ps *store.ParticipantStore) {
	h := &participantsHandler{participants: ps}
	r.Get("/participants", h.List)
	r.Post("/participants", h.Create)
	r.Delete("/participants/{id}", h.Delete)
}

type ParticipantListResponse struct {
	Participants []model.Participant `json:"participants"`
}

// List returns all participants.
// GET /api/v1/participants
func (h *participantsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ParticipantListResponse{Participants: h.participants.All()})
}

// Create adds a participant.
// POST /api/v1/participants
func (h *participantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d model.ParticipantDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	d.ID = nil
	p, err := h.participants.Add(d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Delete removes a participant. Returns 409 when an event still references
// the participant; the store enforces that precondition.
// DELETE /api/v1/participants/{id}
func (h *participantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid participant id", "BAD_REQUEST")
		return
	}
	if err := h.participants.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
