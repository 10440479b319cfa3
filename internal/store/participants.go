package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/eventdesk/eventdesk/internal/fixtures"
	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/eventdesk/eventdesk/internal/model"
)

// UsageCheck reports whether an id is still referenced by an event. The
// event store provides it; injecting the func keeps the stores decoupled.
type UsageCheck func(id int64) bool

// ParticipantStore owns the participant collection.
type ParticipantStore struct {
	emitter
	source fixtures.Source
	logger *zap.SugaredLogger
	inUse  UsageCheck

	mu           sync.Mutex
	participants []model.Participant
}

func NewParticipantStore(source fixtures.Source, inUse UsageCheck, logger *zap.SugaredLogger) *ParticipantStore {
	return &ParticipantStore{
		emitter: newEmitter(),
		source:  source,
		logger:  logger,
		inUse:   inUse,
	}
}

// Load replaces the collection from the fixture source; same contract as
// the event store's Load.
func (s *ParticipantStore) Load(ctx context.Context) {
	data, err := s.source.Fetch(ctx, "participants")
	var drafts []model.ParticipantDraft
	if err == nil {
		drafts, err = fixtures.Decode[model.ParticipantDraft](data)
	}
	if err != nil {
		s.logger.Warnw("loading participants failed", "err", err)
		metrics.LoadsTotal.WithLabelValues("participants", "error").Inc()
		s.banner("Failed to load participants.")
		return
	}

	s.mu.Lock()
	s.participants = make([]model.Participant, 0, len(drafts))
	for _, d := range drafts {
		s.participants = append(s.participants, d.Normalize())
	}
	metrics.ParticipantsTotal.Set(float64(len(s.participants)))
	s.mu.Unlock()

	metrics.LoadsTotal.WithLabelValues("participants", "ok").Inc()
	s.loaded()
	s.changed()
}

// All returns a snapshot copy of the collection.
func (s *ParticipantStore) All() []model.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Participant(nil), s.participants...)
}

// ByID returns a copy of the named participant, or nil.
func (s *ParticipantStore) ByID(id any) *model.Participant {
	pid, ok := model.ParseID(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.participants {
		if s.participants[i].ID == pid {
			p := s.participants[i]
			return &p
		}
	}
	return nil
}

// Add validates and appends a new participant. Name and email are required
// and the email must be unique case-insensitively.
func (s *ParticipantStore) Add(d model.ParticipantDraft) (*model.Participant, error) {
	p := d.Normalize()
	if p.Name == "" || p.Email == "" {
		metrics.MutationsTotal.WithLabelValues("participants", "add", "rejected").Inc()
		return nil, s.reject("Name and email are required.")
	}

	s.mu.Lock()
	for i := range s.participants {
		if strings.EqualFold(s.participants[i].Email, p.Email) {
			s.mu.Unlock()
			metrics.MutationsTotal.WithLabelValues("participants", "add", "rejected").Inc()
			return nil, s.reject("That email address is already in use.")
		}
	}
	p.ID = s.nextIDLocked()
	s.participants = append(s.participants, p)
	metrics.ParticipantsTotal.Set(float64(len(s.participants)))
	created := p
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("participants", "add", "ok").Inc()
	s.banner("Participant added.")
	s.changed()
	return &created, nil
}

// Delete removes the named participant. A participant still referenced by
// an event is refused with ErrInUse; the web controller performs the same
// check before ever calling here, this precondition covers direct API
// callers.
func (s *ParticipantStore) Delete(id any) error {
	pid, ok := model.ParseID(id)
	if !ok {
		return nil
	}
	if s.inUse != nil && s.inUse(pid) {
		metrics.MutationsTotal.WithLabelValues("participants", "delete", "in_use").Inc()
		s.banner("This participant is still used by an event.")
		return ErrInUse
	}

	s.mu.Lock()
	kept := s.participants[:0:0]
	for i := range s.participants {
		if s.participants[i].ID != pid {
			kept = append(kept, s.participants[i])
		}
	}
	if len(kept) == len(s.participants) {
		s.mu.Unlock()
		metrics.MutationsTotal.WithLabelValues("participants", "delete", "not_found").Inc()
		s.banner("Participant not found.")
		return ErrNotFound
	}
	s.participants = kept
	metrics.ParticipantsTotal.Set(float64(len(s.participants)))
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("participants", "delete", "ok").Inc()
	s.banner("Participant deleted.")
	s.changed()
	return nil
}

func (s *ParticipantStore) nextIDLocked() int64 {
	var max int64
	for i := range s.participants {
		if s.participants[i].ID > max {
			max = s.participants[i].ID
		}
	}
	return max + 1
}
