// Package model holds the entity types owned by the in-memory stores and
// the permissive draft types accepted from forms and the REST API.
package model

import (
	"strings"

	"github.com/spf13/cast"
)

// Event is a calendar item. The id is assigned by the event store and is
// immutable once set. Status is free-form at this layer; the UI offers a
// fixed set (open, planned, done).
type Event struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	DateTime       string  `json:"dateTime"`
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	TagIDs         []int64 `json:"tagIds"`
	ParticipantIDs []int64 `json:"participantIds"`
}

// Clone returns a deep copy so callers cannot reach store-owned slices.
func (e Event) Clone() Event {
	c := e
	c.TagIDs = append([]int64(nil), e.TagIDs...)
	c.ParticipantIDs = append([]int64(nil), e.ParticipantIDs...)
	return c
}

// HasParticipant reports whether id appears in the participant set.
func (e Event) HasParticipant(id int64) bool {
	for _, p := range e.ParticipantIDs {
		if p == id {
			return true
		}
	}
	return false
}

// HasTag reports whether id appears in the tag set.
func (e Event) HasTag(id int64) bool {
	for _, t := range e.TagIDs {
		if t == id {
			return true
		}
	}
	return false
}

// Participant is a person identified by name and a unique email address.
type Participant struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Tag is a labeled category attachable to events.
type Tag struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Statuses is the fixed set offered by the presentation layer. The stores
// accept any string.
var Statuses = []string{"open", "planned", "done"}

// ParseID normalizes an identifier that may arrive as a string, a JSON
// number, or an int. It reports false for anything that does not parse to
// a number and for absent values (nil, empty string, zero).
func ParseID(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	id, err := cast.ToInt64E(v)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// NormalizeIDs coerces a loosely typed id list to int64s, dropping entries
// that do not parse. Duplicates are kept; uniqueness is not this layer's
// concern.
func NormalizeIDs(in []any) []int64 {
	out := make([]int64, 0, len(in))
	for _, v := range in {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		id, err := cast.ToInt64E(v)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
