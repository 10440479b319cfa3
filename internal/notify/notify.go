// Package notify implements the per-store notification channel that
// decouples the stores from the presentation layer. Each store owns one
// Notifier; listeners register per category and are invoked synchronously,
// in registration order, from the goroutine that triggered the change.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Kind is the closed set of notification categories.
type Kind int

const (
	// Loaded fires once initial data has arrived.
	Loaded Kind = iota
	// Changed fires whenever the collection or selection mutated and the
	// UI must re-derive its state.
	Changed
	// Banner carries a transient user-facing message. It may fire without
	// any data mutation, e.g. on a validation reject.
	Banner
)

// Signal is delivered to listeners. Text is set for Banner signals only.
type Signal struct {
	Kind Kind
	Text string
}

// Subscription identifies a registered listener for later removal.
type Subscription struct {
	kind Kind
	id   uuid.UUID
}

type listener struct {
	id uuid.UUID
	fn func(Signal)
}

// Notifier fans a signal out to all listeners of its category. The zero
// value is not usable; construct with New.
type Notifier struct {
	mu   sync.RWMutex
	subs map[Kind][]listener
}

func New() *Notifier {
	return &Notifier{subs: make(map[Kind][]listener)}
}

// Subscribe registers fn for signals of kind k and returns a handle for
// Unsubscribe.
func (n *Notifier) Subscribe(k Kind, fn func(Signal)) Subscription {
	id := uuid.New()
	n.mu.Lock()
	n.subs[k] = append(n.subs[k], listener{id: id, fn: fn})
	n.mu.Unlock()
	return Subscription{kind: k, id: id}
}

// Unsubscribe removes a listener. Unknown handles are ignored.
func (n *Notifier) Unsubscribe(s Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ls := n.subs[s.kind]
	for i, l := range ls {
		if l.id == s.id {
			n.subs[s.kind] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Publish delivers sig to every listener of its kind, synchronously and in
// registration order. The listener list is snapshotted first, so a listener
// may subscribe or unsubscribe during delivery.
func (n *Notifier) Publish(sig Signal) {
	n.mu.RLock()
	ls := append([]listener(nil), n.subs[sig.Kind]...)
	n.mu.RUnlock()
	for _, l := range ls {
		l.fn(sig)
	}
}
