// Package store owns the three in-memory collections (events, participants,
// tags). Each store exclusively owns its slice; cross-references are by id
// value only, looked up on demand. Mutations are serialized by a per-store
// mutex and announced through the store's Notifier. Every failure mode is
// communicated by a banner plus unchanged state; the returned sentinel
// errors exist so the REST layer can map outcomes to status codes, web
// handlers ignore them.
package store

import (
	"errors"
	"fmt"

	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/eventdesk/eventdesk/internal/notify"
)

var (
	// ErrNotFound is returned when an update or delete names an id absent
	// from the collection.
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when a participant or tag cannot be deleted
	// because an event still references it.
	ErrInUse = errors.New("still referenced by an event")

	// ErrInvalid is returned for validation rejects (empty required field,
	// duplicate email or label).
	ErrInvalid = errors.New("invalid input")
)

// emitter is the notification plumbing shared by all three stores.
type emitter struct {
	n *notify.Notifier
}

func newEmitter() emitter {
	return emitter{n: notify.New()}
}

// Notifier exposes the store's notification channel for subscription.
func (e emitter) Notifier() *notify.Notifier {
	return e.n
}

func (e emitter) loaded() {
	e.n.Publish(notify.Signal{Kind: notify.Loaded})
}

func (e emitter) changed() {
	e.n.Publish(notify.Signal{Kind: notify.Changed})
}

func (e emitter) banner(text string) {
	metrics.BannersTotal.Inc()
	e.n.Publish(notify.Signal{Kind: notify.Banner, Text: text})
}

// reject emits the banner for a validation failure and returns the matching
// typed error.
func (e emitter) reject(text string) error {
	e.banner(text)
	return fmt.Errorf("%w: %s", ErrInvalid, text)
}
