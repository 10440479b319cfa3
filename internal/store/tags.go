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

// TagStore owns the tag collection.
type TagStore struct {
	emitter
	source fixtures.Source
	logger *zap.SugaredLogger
	inUse  UsageCheck

	mu   sync.Mutex
	tags []model.Tag
}

func NewTagStore(source fixtures.Source, inUse UsageCheck, logger *zap.SugaredLogger) *TagStore {
	return &TagStore{
		emitter: newEmitter(),
		source:  source,
		logger:  logger,
		inUse:   inUse,
	}
}

// Load replaces the collection from the fixture source; same contract as
// the event store's Load.
func (s *TagStore) Load(ctx context.Context) {
	data, err := s.source.Fetch(ctx, "tags")
	var drafts []model.TagDraft
	if err == nil {
		drafts, err = fixtures.Decode[model.TagDraft](data)
	}
	if err != nil {
		s.logger.Warnw("loading tags failed", "err", err)
		metrics.LoadsTotal.WithLabelValues("tags", "error").Inc()
		s.banner("Failed to load tags.")
		return
	}

	s.mu.Lock()
	s.tags = make([]model.Tag, 0, len(drafts))
	for _, d := range drafts {
		s.tags = append(s.tags, d.Normalize())
	}
	metrics.TagsTotal.Set(float64(len(s.tags)))
	s.mu.Unlock()

	metrics.LoadsTotal.WithLabelValues("tags", "ok").Inc()
	s.loaded()
	s.changed()
}

// All returns a snapshot copy of the collection.
func (s *TagStore) All() []model.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Tag(nil), s.tags...)
}

// ByID returns a copy of the named tag, or nil.
func (s *TagStore) ByID(id any) *model.Tag {
	tid, ok := model.ParseID(id)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tags {
		if s.tags[i].ID == tid {
			t := s.tags[i]
			return &t
		}
	}
	return nil
}

// Add validates and appends a new tag. The label is required and must be
// unique case-insensitively.
func (s *TagStore) Add(d model.TagDraft) (*model.Tag, error) {
	t := d.Normalize()
	if t.Label == "" {
		metrics.MutationsTotal.WithLabelValues("tags", "add", "rejected").Inc()
		return nil, s.reject("Tag label must not be empty.")
	}

	s.mu.Lock()
	for i := range s.tags {
		if strings.EqualFold(s.tags[i].Label, t.Label) {
			s.mu.Unlock()
			metrics.MutationsTotal.WithLabelValues("tags", "add", "rejected").Inc()
			return nil, s.reject("That tag already exists.")
		}
	}
	t.ID = s.nextIDLocked()
	s.tags = append(s.tags, t)
	metrics.TagsTotal.Set(float64(len(s.tags)))
	created := t
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("tags", "add", "ok").Inc()
	s.banner("Tag added.")
	s.changed()
	return &created, nil
}

// Update relabels the named tag, replacing the record wholesale. The new
// label must not collide case-insensitively with any other tag; keeping the
// tag's own label is allowed. An id that does not parse is a silent no-op.
func (s *TagStore) Update(d model.TagDraft) error {
	id, ok := model.ParseID(d.ID)
	if !ok {
		return nil
	}
	t := d.Normalize()
	t.ID = id
	if t.Label == "" {
		metrics.MutationsTotal.WithLabelValues("tags", "update", "rejected").Inc()
		return s.reject("Tag label must not be empty.")
	}

	s.mu.Lock()
	for i := range s.tags {
		if s.tags[i].ID != id && strings.EqualFold(s.tags[i].Label, t.Label) {
			s.mu.Unlock()
			metrics.MutationsTotal.WithLabelValues("tags", "update", "rejected").Inc()
			return s.reject("That tag already exists.")
		}
	}
	for i := range s.tags {
		if s.tags[i].ID == id {
			s.tags[i] = t
			s.mu.Unlock()
			metrics.MutationsTotal.WithLabelValues("tags", "update", "ok").Inc()
			s.banner("Tag saved.")
			s.changed()
			return nil
		}
	}
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("tags", "update", "not_found").Inc()
	s.banner("Tag not found.")
	return ErrNotFound
}

// Delete removes the named tag unless an event still references it; same
// precondition pattern as the participant store.
func (s *TagStore) Delete(id any) error {
	tid, ok := model.ParseID(id)
	if !ok {
		return nil
	}
	if s.inUse != nil && s.inUse(tid) {
		metrics.MutationsTotal.WithLabelValues("tags", "delete", "in_use").Inc()
		s.banner("This tag is still used by an event.")
		return ErrInUse
	}

	s.mu.Lock()
	kept := s.tags[:0:0]
	for i := range s.tags {
		if s.tags[i].ID != tid {
			kept = append(kept, s.tags[i])
		}
	}
	if len(kept) == len(s.tags) {
		s.mu.Unlock()
		metrics.MutationsTotal.WithLabelValues("tags", "delete", "not_found").Inc()
		s.banner("Tag not found.")
		return ErrNotFound
	}
	s.tags = kept
	metrics.TagsTotal.Set(float64(len(s.tags)))
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues("tags", "delete", "ok").Inc()
	s.banner("Tag deleted.")
	s.changed()
	return nil
}

func (s *TagStore) nextIDLocked() int64 {
	var max int64
	for i := range s.tags {
		if s.tags[i].ID > max {
			max = s.tags[i].ID
		}
	}
	return max + 1
}
