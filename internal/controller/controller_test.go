package controller_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/eventdesk/eventdesk/internal/controller"
	"github.com/eventdesk/eventdesk/internal/fixtures"
	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

type fixtureSource map[string]string

func (s fixtureSource) Fetch(_ context.Context, name string) ([]byte, error) {
	return []byte(s[name]), nil
}

var _ fixtures.Source = fixtureSource(nil)

func newController(t *testing.T) (*controller.Controller, *store.EventStore, *store.ParticipantStore, *store.TagStore) {
	t.Helper()
	src := fixtureSource{
		"events": `[
			{"id": 1, "title": "Planning", "status": "open", "tagIds": [1], "participantIds": [1]},
			{"id": 2, "title": "Lunch", "status": "done", "tagIds": [], "participantIds": [2]}
		]`,
		"participants": `[
			{"id": 1, "name": "Ada Lovelace", "email": "ada@example.com"},
			{"id": 2, "name": "Alan Turing", "email": "alan@example.com"},
			{"id": 3, "name": "Grace Hopper", "email": "grace@example.com"}
		]`,
		"tags": `[
			{"id": 1, "label": "Work"},
			{"id": 2, "label": "Private"}
		]`,
	}
	logger := zap.NewNop().Sugar()
	es := store.NewEventStore(src, logger)
	ps := store.NewParticipantStore(src, es.ReferencesParticipant, logger)
	ts := store.NewTagStore(src, es.ReferencesTag, logger)
	c := controller.New(es, ps, ts, logger)
	es.Load(context.Background())
	ps.Load(context.Background())
	ts.Load(context.Background())
	return c, es, ps, ts
}

func TestController_InitialView(t *testing.T) {
	c, _, _, _ := newController(t)

	v := c.View()
	if v.Page != controller.PageEvents {
		t.Errorf("page = %q, want events", v.Page)
	}
	if len(v.Events) != 2 || len(v.Participants) != 3 || len(v.Tags) != 2 {
		t.Errorf("view collections = %d/%d/%d", len(v.Events), len(v.Participants), len(v.Tags))
	}
	if v.Selected == nil || v.Selected.ID != 1 {
		t.Errorf("selected = %v, want first event", v.Selected)
	}
}

func TestController_ViewRefreshesOnStoreChange(t *testing.T) {
	c, _, ps, _ := newController(t)

	ps.Add(model.ParticipantDraft{Name: "Edsger Dijkstra", Email: "edsger@example.com"})

	v := c.View()
	if len(v.Participants) != 4 {
		t.Errorf("participants = %d, want 4 after add", len(v.Participants))
	}
	if v.Banner != "Participant added." {
		t.Errorf("banner = %q", v.Banner)
	}
}

func TestController_NavigateClearsBannerAndEdit(t *testing.T) {
	c, _, _, _ := newController(t)

	c.EditSelected()
	c.AddTag(model.TagDraft{Label: ""})
	if v := c.View(); v.Banner == "" {
		t.Fatal("expected a banner before navigating")
	}

	c.Navigate(controller.PageParticipants)

	v := c.View()
	if v.Page != controller.PageParticipants {
		t.Errorf("page = %q", v.Page)
	}
	if v.Banner != "" {
		t.Errorf("banner = %q, want cleared", v.Banner)
	}
	if v.EditEvent != nil {
		t.Errorf("edit target = %v, want cleared", v.EditEvent)
	}
}

func TestController_EditSelected(t *testing.T) {
	c, es, _, _ := newController(t)
	es.Select(2)

	c.EditSelected()

	v := c.View()
	if v.Page != controller.PageNewEvent {
		t.Errorf("page = %q, want form page", v.Page)
	}
	if v.EditEvent == nil || v.EditEvent.ID != 2 {
		t.Errorf("edit target = %v, want event 2", v.EditEvent)
	}
}

func TestController_SubmitEventForm_AddsWithoutID(t *testing.T) {
	c, es, _, _ := newController(t)
	c.Navigate(controller.PageNewEvent)

	c.SubmitEventForm(model.EventDraft{Title: "Retro"})

	v := c.View()
	if v.Page != controller.PageEvents {
		t.Errorf("page = %q, want events after submit", v.Page)
	}
	if len(es.All()) != 3 {
		t.Errorf("events = %d, want 3", len(es.All()))
	}
	if v.Banner != "Event created." {
		t.Errorf("banner = %q", v.Banner)
	}
}

func TestController_SubmitEventForm_UpdatesWithID(t *testing.T) {
	c, es, _, _ := newController(t)

	c.SubmitEventForm(model.EventDraft{ID: "1", Title: "Replanned", Status: "planned"})

	if len(es.All()) != 2 {
		t.Errorf("events = %d, want 2 (update, not add)", len(es.All()))
	}
	if got := es.ByID(1); got.Title != "Replanned" {
		t.Errorf("title = %q", got.Title)
	}
	if v := c.View(); v.Banner != "Event saved." {
		t.Errorf("banner = %q", v.Banner)
	}
}

func TestController_SubmitEventForm_KeepsRejectBanner(t *testing.T) {
	c, es, _, _ := newController(t)
	c.Navigate(controller.PageNewEvent)

	c.SubmitEventForm(model.EventDraft{Title: "  "})

	v := c.View()
	if v.Banner != "Title is required." {
		t.Errorf("banner = %q", v.Banner)
	}
	if len(es.All()) != 2 {
		t.Errorf("events = %d, want unchanged", len(es.All()))
	}
}

func TestController_CancelEdit(t *testing.T) {
	c, _, _, _ := newController(t)
	c.EditSelected()

	c.CancelEdit()

	v := c.View()
	if v.Page != controller.PageEvents || v.EditEvent != nil {
		t.Errorf("view after cancel = page %q edit %v", v.Page, v.EditEvent)
	}
}

func TestController_DeleteParticipant_BlockedWhileReferenced(t *testing.T) {
	c, _, ps, _ := newController(t)

	c.DeleteParticipant(1)

	if got := len(ps.All()); got != 3 {
		t.Errorf("participants = %d, want untouched", got)
	}
	v := c.View()
	if v.Banner != "This participant cannot be deleted while an event uses them." {
		t.Errorf("banner = %q", v.Banner)
	}
}

func TestController_DeleteParticipant_Unreferenced(t *testing.T) {
	c, _, ps, _ := newController(t)

	c.DeleteParticipant(3)

	if got := len(ps.All()); got != 2 {
		t.Errorf("participants = %d, want 2", got)
	}
	if v := c.View(); v.Banner != "Participant deleted." {
		t.Errorf("banner = %q", v.Banner)
	}
}

func TestController_DeleteTag_BlockedWhileReferenced(t *testing.T) {
	c, _, _, ts := newController(t)

	c.DeleteTag(1)

	if got := len(ts.All()); got != 2 {
		t.Errorf("tags = %d, want untouched", got)
	}
	v := c.View()
	if v.Banner != "This tag cannot be deleted while an event uses it." {
		t.Errorf("banner = %q", v.Banner)
	}
}

func TestController_DeleteTag_Unreferenced(t *testing.T) {
	c, _, _, ts := newController(t)

	c.DeleteTag(2)

	if got := len(ts.All()); got != 1 {
		t.Errorf("tags = %d, want 1", got)
	}
}

func TestController_FilterNarrowsViewAndMovesSelection(t *testing.T) {
	c, _, _, _ := newController(t)
	c.SelectEvent(2)

	status := "open"
	c.SetFilters(model.FilterPatch{Status: &status})

	v := c.View()
	if len(v.Events) != 1 || v.Events[0].ID != 1 {
		t.Fatalf("filtered view = %v, want only event 1", v.Events)
	}
	if v.Selected == nil || v.Selected.ID != 1 {
		t.Errorf("selected = %v, want moved to visible event", v.Selected)
	}
	if v.Filters.Status != "open" {
		t.Errorf("filters = %+v", v.Filters)
	}
}

func TestView_DisplayHelpers(t *testing.T) {
	c, _, _, _ := newController(t)

	v := c.View()
	if got := v.TagLabel(1); got != "Work" {
		t.Errorf("TagLabel(1) = %q", got)
	}
	if got := v.TagLabel(99); got != "#99" {
		t.Errorf("TagLabel(99) = %q", got)
	}
	if got := v.ParticipantName(2); got != "Alan Turing" {
		t.Errorf("ParticipantName(2) = %q", got)
	}
	if got := v.ParticipantName(99); got != "#99" {
		t.Errorf("ParticipantName(99) = %q", got)
	}
}
