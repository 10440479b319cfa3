package store_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/notify"
	"github.com/eventdesk/eventdesk/internal/store"
)

const eventsFixture = `[
	{"id": 1, "title": "Planning", "dateTime": "2026-01-12 09:00", "status": "open", "tagIds": [1], "participantIds": [1, 2]},
	{"id": 2, "title": "Lunch", "dateTime": "2026-01-16 12:30", "status": "done", "tagIds": [2], "participantIds": [2]}
]`

func newEventStore(t *testing.T, payload string) (*store.EventStore, *fakeSource) {
	t.Helper()
	src := &fakeSource{payloads: map[string]string{"events": payload}}
	es := store.NewEventStore(src, nopLogger())
	es.Load(context.Background())
	return es, src
}

func TestEventStore_Load(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	all := es.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	sel := es.Selected()
	if sel == nil || sel.ID != 1 {
		t.Errorf("selection after load = %v, want first event", sel)
	}
}

func TestEventStore_Load_EmitsLoadedThenChanged(t *testing.T) {
	src := &fakeSource{payloads: map[string]string{"events": eventsFixture}}
	es := store.NewEventStore(src, nopLogger())

	var order []notify.Kind
	es.Notifier().Subscribe(notify.Loaded, func(notify.Signal) { order = append(order, notify.Loaded) })
	es.Notifier().Subscribe(notify.Changed, func(notify.Signal) { order = append(order, notify.Changed) })

	es.Load(context.Background())

	want := []notify.Kind{notify.Loaded, notify.Changed}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("signal order = %v, want %v", order, want)
	}
}

func TestEventStore_Load_FailureKeepsPriorCollection(t *testing.T) {
	es, src := newEventStore(t, eventsFixture)
	banners := recordBanners(es.Notifier())

	src.err = errors.New("connection refused")
	es.Load(context.Background())

	if got := len(es.All()); got != 2 {
		t.Errorf("len after failed load = %d, want 2", got)
	}
	if len(*banners) != 1 {
		t.Fatalf("banners = %v, want one failure message", *banners)
	}
}

func TestEventStore_Load_NonArrayIsEmpty(t *testing.T) {
	es, _ := newEventStore(t, `{"events": "nope"}`)

	if got := len(es.All()); got != 0 {
		t.Errorf("len = %d, want 0", got)
	}
	if sel := es.Selected(); sel != nil {
		t.Errorf("selection = %v, want none", sel)
	}
}

func TestEventStore_Add_AssignsMaxPlusOne(t *testing.T) {
	es, _ := newEventStore(t, `[
		{"id": 3, "title": "A"},
		{"id": 7, "title": "B"}
	]`)

	ev, err := es.Add(model.EventDraft{Title: "C"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ev.ID != 8 {
		t.Errorf("new id = %d, want 8", ev.ID)
	}
	all := es.All()
	if all[0].ID != 3 || all[1].ID != 7 {
		t.Errorf("existing ids altered: %v", all)
	}
	if sel := es.Selected(); sel == nil || sel.ID != 8 {
		t.Errorf("selection = %v, want new event", sel)
	}
}

func TestEventStore_Add_EmptyCollectionStartsAtOne(t *testing.T) {
	es, _ := newEventStore(t, `[]`)

	ev, err := es.Add(model.EventDraft{Title: "First"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ev.ID != 1 {
		t.Errorf("id = %d, want 1", ev.ID)
	}
}

func TestEventStore_Add_EmptyTitleRejected(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	banners := recordBanners(es.Notifier())
	changed := countSignals(es.Notifier(), notify.Changed)

	_, err := es.Add(model.EventDraft{Title: "   "})
	if !errors.Is(err, store.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
	if got := len(es.All()); got != 2 {
		t.Errorf("len = %d, want 2 (no mutation)", got)
	}
	if len(*banners) != 1 || (*banners)[0] != "Title is required." {
		t.Errorf("banners = %v", *banners)
	}
	if *changed != 0 {
		t.Errorf("changed fired %d times, want 0", *changed)
	}
}

func TestEventStore_Add_NormalizesInput(t *testing.T) {
	es, _ := newEventStore(t, `[]`)

	ev, err := es.Add(model.EventDraft{
		Title:          "  Standup  ",
		TagIDs:         []any{"1", "x", 2.0},
		ParticipantIDs: []any{"abc", "3"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ev.Title != "Standup" {
		t.Errorf("title = %q, want trimmed", ev.Title)
	}
	if !reflect.DeepEqual(ev.TagIDs, []int64{1, 2}) {
		t.Errorf("tagIds = %v, want [1 2]", ev.TagIDs)
	}
	if !reflect.DeepEqual(ev.ParticipantIDs, []int64{3}) {
		t.Errorf("participantIds = %v, want [3]", ev.ParticipantIDs)
	}
}

func TestEventStore_FilterByStatusMovesSelection(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	es.Select(2)

	status := "open"
	es.SetFilters(model.FilterPatch{Status: &status})

	got := es.FilteredEvents()
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("filtered = %v, want only event 1", got)
	}
	if sel := es.Selected(); sel == nil || sel.ID != 1 {
		t.Errorf("selection = %v, want silently moved to 1", sel)
	}
}

func TestEventStore_FilteredEvents_Idempotent(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	es.Select(2)
	status := "open"
	es.SetFilters(model.FilterPatch{Status: &status})

	first := es.FilteredEvents()
	second := es.FilteredEvents()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads differ: %v vs %v", first, second)
	}
}

func TestEventStore_FilterByParticipantAndTag(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	pid := "1"
	es.SetFilters(model.FilterPatch{ParticipantID: &pid})
	if got := es.FilteredEvents(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("participant filter: %v, want only event 1", got)
	}

	pid = ""
	tid := "2"
	es.SetFilters(model.FilterPatch{ParticipantID: &pid, TagID: &tid})
	if got := es.FilteredEvents(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("tag filter: %v, want only event 2", got)
	}
}

func TestEventStore_SetFilters_PartialPatch(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	status := "open"
	pid := "1"
	es.SetFilters(model.FilterPatch{Status: &status, ParticipantID: &pid})

	tid := "2"
	es.SetFilters(model.FilterPatch{TagID: &tid})

	f := es.Filters()
	if f.Status != "open" || f.ParticipantID != "1" || f.TagID != "2" {
		t.Errorf("filters = %+v, want earlier fields preserved", f)
	}
}

func TestEventStore_Select_InvalidInputIsNoOp(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	changed := countSignals(es.Notifier(), notify.Changed)

	es.Select("abc")

	if sel := es.Selected(); sel == nil || sel.ID != 1 {
		t.Errorf("selection = %v, want unchanged", sel)
	}
	if *changed != 0 {
		t.Errorf("changed fired %d times, want 0", *changed)
	}
}

func TestEventStore_Select_UncheckedAgainstCollection(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	es.Select("99")

	if sel := es.Selected(); sel != nil {
		t.Errorf("Selected() = %v, want nil for unknown id", sel)
	}
}

func TestEventStore_Update_ReplacesWholesale(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	err := es.Update(model.EventDraft{ID: "1", Title: "Replanned"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := es.ByID(1)
	if got.Title != "Replanned" {
		t.Errorf("title = %q", got.Title)
	}
	// Wholesale replace, not a merge: fields absent from the draft are gone.
	if got.DateTime != "" || len(got.TagIDs) != 0 {
		t.Errorf("update merged instead of replacing: %+v", got)
	}
}

func TestEventStore_Update_NotFound(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	banners := recordBanners(es.Notifier())

	err := es.Update(model.EventDraft{ID: "99", Title: "Ghost"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if got := len(es.All()); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
	if len(*banners) != 1 {
		t.Errorf("banners = %v, want one not-found message", *banners)
	}
}

func TestEventStore_Delete_ResetsSelectionToFirst(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	es.Select(2)

	if err := es.Delete("2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := len(es.All()); got != 1 {
		t.Errorf("len = %d, want 1", got)
	}
	if sel := es.Selected(); sel == nil || sel.ID != 1 {
		t.Errorf("selection = %v, want first remaining", sel)
	}
}

func TestEventStore_Delete_NotFound(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)
	banners := recordBanners(es.Notifier())

	err := es.Delete(99)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if got := len(es.All()); got != 2 {
		t.Errorf("len = %d, want unchanged", got)
	}
	if len(*banners) != 1 {
		t.Errorf("banners = %v", *banners)
	}
}

func TestEventStore_UpdateParticipants(t *testing.T) {
	es, _ := newEventStore(t, `[
		{"id": 5, "title": "Workshop", "dateTime": "2026-02-01", "status": "open", "tagIds": [1], "participantIds": [1]}
	]`)

	err := es.UpdateParticipants(5, []any{"2", "abc", 3})
	if err != nil {
		t.Fatalf("UpdateParticipants: %v", err)
	}
	got := es.ByID(5)
	if !reflect.DeepEqual(got.ParticipantIDs, []int64{2, 3}) {
		t.Errorf("participantIds = %v, want [2 3]", got.ParticipantIDs)
	}
	// All other fields untouched.
	if got.Title != "Workshop" || got.DateTime != "2026-02-01" || !reflect.DeepEqual(got.TagIDs, []int64{1}) {
		t.Errorf("other fields changed: %+v", got)
	}
}

func TestEventStore_UpdateParticipants_NotFound(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	err := es.UpdateParticipants(99, []any{1})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEventStore_References(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	if !es.ReferencesParticipant(1) {
		t.Error("participant 1 should be referenced")
	}
	if es.ReferencesParticipant(9) {
		t.Error("participant 9 should not be referenced")
	}
	if !es.ReferencesTag(2) {
		t.Error("tag 2 should be referenced")
	}
	if es.ReferencesTag(9) {
		t.Error("tag 9 should not be referenced")
	}
}

func TestEventStore_All_ReturnsCopies(t *testing.T) {
	es, _ := newEventStore(t, eventsFixture)

	all := es.All()
	all[0].Title = "mutated"
	all[0].TagIDs[0] = 99

	got := es.ByID(1)
	if got.Title != "Planning" || got.TagIDs[0] != 1 {
		t.Errorf("store state mutated through snapshot: %+v", got)
	}
}
