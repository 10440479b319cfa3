package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/eventdesk/eventdesk/internal/fixtures"
	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/eventdesk/eventdesk/internal/model"
)

// EventStore owns the event collection, the filter criteria, and the single
// current selection.
type EventStore struct {
	emitter
	source fixtures.Source
	logger *zap.SugaredLogger

	mu       sync.Mutex
	events   []model.Event
	selected int64 // 0 means no selection
	filters  model.Filters
}

func NewEventStore(source fixtures.Source, logger *zap.SugaredLogger) *EventStore {
	return &EventStore{
		emitter: newEmitter(),
		source:  source,
		logger:  logger,
	}
}

// Load replaces the collection from the fixture source. On failure the
// prior collection is left untouched and a banner is emitted; there is no
// retry. On success the selection moves to the first event and loaded then
// changed fire.
func (s *EventStore) Load(ctx context.Context) {
	data, err := s.source.Fetch(ctx, "events")
	var drafts []model.EventDraft
	if err == nil {
		drafts, err = fixtures.Decode[model.EventDraft](data)
	}
	if err != nil {
		s.logger.Warnw("loading events failed", "err", err)
		metrics.LoadsTotal.WithLabelValues("events", "error").Inc()
		s.banner("Failed to load events.")
		return
	}

	s.mu.Lock()
	s.events = make([]model.Event, 0, len(drafts))
	for _, d := range drafts {
		s.events = append(s.events, d.Normalize())
	}
	if len(s.events) > 0 {
		s.selected = s.events[0].ID
	} else {
		s.selected = 0
	}
	metrics.EventsTotal.Set(float64(len(s.events)))
	s.mu.Unlock()

	metrics.LoadsTotal.WithLabelValues("events", "ok").Inc()
	s.loaded()
	s.changed()
}

// SetFilters merges only the present fields of p into the current criteria.
func (s *EventStore) SetFilters(p model.FilterPatch) {
	s.mu.Lock()
	s.filters.Apply(p)
	s.mu.Unlock()
	s.changed()
}

// Filters returns the current criteria.
func (s *EventStore) Filters() model.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Select sets the current selection. A value that does not parse to a
// number is a no-op. The id is not checked against the collection.
func (s *EventStore) Select(id any) {
	eid, ok := model.ParseID(id)
	if !ok {
		return
	}
	s.mu.Lock()
	s.selected = eid
	s.mu.Unlock()
	s.changed()
}

// Selected returns a copy of the currently selected event, or nil.
func (s *EventStore) Selected() *model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *EventStore) selectedLocked() *model.Event {
	for i := range s.events {
		if s.events[i].ID == s.selected {
			ev := s.events[i].Clone()
			return &ev
		}
	}
	return nil
}

// FilteredEvents returns the order-preserving view of the collection under
// the current criteria, then reconciles the selection: if the selected
// event is no longer visible, the selection silently advances to the first
// visible one. Calling it again without an intervening mutation returns the
// same sequence.
func (s *EventStore) FilteredEvents() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.filteredLocked()
	s.reconcileSelectionLocked(list)
	return list
}

// filteredLocked is the pure half: it never touches the selection and the
// stored collection is never mutated. Returned events are copies.
func (s *EventStore) filteredLocked() []model.Event {
	f := s.filters
	pid, filterByParticipant := model.ParseID(f.ParticipantID)
	tid, filterByTag := model.ParseID(f.TagID)

	list := make([]model.Event, 0, len(s.events))
	for i := range s.events {
		ev := s.events[i]
		if f.Status != "" && ev.Status != f.Status {
			continue
		}
		if filterByParticipant && !ev.HasParticipant(pid) {
			continue
		}
		if filterByTag && !ev.HasTag(tid) {
			continue
		}
		list = append(list, ev.Clone())
	}
	return list
}

func (s *EventStore) reconcileSelectionLocked(visible []model.Event) {
	if len(visible) == 0 {
		return
	}
	for i := range visible {
		if visible[i].ID == s.selected {
			return
		}
	}
	s.selected = visible[0].ID
}

// Add validates and appends a new event. The id is assigned as one greater
// than the current maximum (1 for an empty collection) and the new event
// becomes the selection.
func (s *EventStore) Add(d model.EventDraft) (*model.Event, error) {
	ev := d.Normalize()
	if ev.Title == "" {
		metrics.MutationsTotal.WithLabelValues("events", "add", "rejected").Inc()
		return nil, s.reject("Title is required.")
	}

	s.mu.Lock()
	ev.ID = s.nextIDLocked()
	s.events = append(s.events, ev)
	s.selected = ev.ID
	metrics.EventsTotal.Set(float64(len(s.events)))
	created := ev.Clone()
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("events", "add", "ok").Inc()
	s.banner("Event created.")
	s.changed()
	return &created, nil
}

// Update replaces the named event wholesale. An id that does not parse is a
// silent no-op; an unknown id emits a not-found banner without mutating.
func (s *EventStore) Update(d model.EventDraft) error {
	id, ok := model.ParseID(d.ID)
	if !ok {
		return nil
	}
	ev := d.Normalize()
	ev.ID = id

	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = ev
			s.mu.Unlock()
			metrics.MutationsTotal.WithLabelValues("events", "update", "ok").Inc()
			s.banner("Event saved.")
			s.changed()
			return nil
		}
	}
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("events", "update", "not_found").Inc()
	s.banner("Event not found.")
	return ErrNotFound
}

// Delete removes the named event and resets the selection to the first
// remaining one. The confirmation gate lives upstream in the UI.
func (s *EventStore) Delete(id any) error {
	eid, ok := model.ParseID(id)
	if !ok {
		return nil
	}

	s.mu.Lock()
	kept := s.events[:0:0]
	for i := range s.events {
		if s.events[i].ID != eid {
			kept = append(kept, s.events[i])
		}
	}
	if len(kept) == len(s.events) {
		s.mu.Unlock()
		metrics.MutationsTotal.WithLabelValues("events", "delete", "not_found").Inc()
		s.banner("Event not found.")
		return ErrNotFound
	}
	s.events = kept
	if len(s.events) > 0 {
		s.selected = s.events[0].ID
	} else {
		s.selected = 0
	}
	metrics.EventsTotal.Set(float64(len(s.events)))
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("events", "delete", "ok").Inc()
	s.banner("Event deleted.")
	s.changed()
	return nil
}

// UpdateParticipants replaces only the participant set of the named event.
// Entries that do not parse to a number are dropped; all other fields are
// left unchanged.
func (s *EventStore) UpdateParticipants(eventID any, participantIDs []any) error {
	eid, ok := model.ParseID(eventID)
	if !ok {
		return nil
	}
	ids := model.NormalizeIDs(participantIDs)

	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == eid {
			s.events[i].ParticipantIDs = ids
			s.mu.Unlock()
			metrics.MutationsTotal.WithLabelValues("events", "update_participants", "ok").Inc()
			s.banner("Participants updated.")
			s.changed()
			return nil
		}
	}
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("events", "update_participants", "not_found").Inc()
	s.banner("Event not found.")
	return ErrNotFound
}

// ReferencesParticipant reports whether any event references the
// participant id. Used as the delete precondition for participants.
func (s *EventStore) ReferencesParticipant(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].HasParticipant(id) {
			return true
		}
	}
	return false
}

// ReferencesTag reports whether any event references the tag id.
func (s *EventStore) ReferencesTag(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].HasTag(id) {
			return true
		}
	}
	return false
}

// ByID returns a copy of the named event, or nil.
func (s *EventStore) ByID(id any) *model.Event {
	eid, ok := model.ParseID(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == eid {
			ev := s.events[i].Clone()
			return &ev
		}
	}
	return nil
}

// All returns a snapshot copy of the full collection.
func (s *EventStore) All() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]model.Event, 0, len(s.events))
	for i := range s.events {
		list = append(list, s.events[i].Clone())
	}
	return list
}

func (s *EventStore) nextIDLocked() int64 {
	var max int64
	for i := range s.events {
		if s.events[i].ID > max {
			max = s.events[i].ID
		}
	}
	return max + 1
}
