package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

type tagsHandler struct {
	tags *store.TagStore
}

func registerTagRoutes(r chi.Router, ts *store.TagStore) {
	h := &tagsHandler{tags: ts}
	r.Get("/tags", h.List)
	r.Post("/tags", h.Create)
	r.Put("/tags/{id}", h.Update)
	r.Delete("/tags/{id}", h.Delete)
}

type TagListResponse struct {
	Tags []model.Tag `json:"tags"`
}

// List returns all tags.
// GET /api/v1/tags
func (h *tagsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TagListResponse{Tags: h.tags.All()})
}

// Create adds a tag.
// POST /api/v1/tags
func (h *tagsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d model.TagDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	d.ID = nil
	t, err := h.tags.Add(d)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// Update relabels a tag.
// PUT /api/v1/tags/{id}
func (h *tagsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid tag id", "BAD_REQUEST")
		return
	}
	var d model.TagDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	d.ID = id
	if err := h.tags.Update(d); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a tag unless an event still references it.
// DELETE /api/v1/tags/{id}
func (h *tagsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := model.ParseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid tag id", "BAD_REQUEST")
		return
	}
	if err := h.tags.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
