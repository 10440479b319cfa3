package model

import "strings"

// Draft types carry unvalidated input. Identifier fields are deliberately
// loose (any) so that string ids from HTML forms and numeric ids from JSON
// both decode; the Normalize methods apply the coercion policy.

type EventDraft struct {
	ID             any    `json:"id"`
	Title          string `json:"title"`
	DateTime       string `json:"dateTime"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	TagIDs         []any  `json:"tagIds"`
	ParticipantIDs []any  `json:"participantIds"`
}

// Normalize trims all string fields and coerces the id sets, dropping
// entries that do not parse. The id is carried over when present and left
// zero otherwise.
func (d EventDraft) Normalize() Event {
	ev := Event{
		Title:          strings.TrimSpace(d.Title),
		DateTime:       strings.TrimSpace(d.DateTime),
		Location:       strings.TrimSpace(d.Location),
		Description:    strings.TrimSpace(d.Description),
		Status:         strings.TrimSpace(d.Status),
		TagIDs:         NormalizeIDs(d.TagIDs),
		ParticipantIDs: NormalizeIDs(d.ParticipantIDs),
	}
	if id, ok := ParseID(d.ID); ok {
		ev.ID = id
	}
	return ev
}

type ParticipantDraft struct {
	ID    any    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d ParticipantDraft) Normalize() Participant {
	p := Participant{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
	}
	if id, ok := ParseID(d.ID); ok {
		p.ID = id
	}
	return p
}

type TagDraft struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
}

func (d TagDraft) Normalize() Tag {
	t := Tag{Label: strings.TrimSpace(d.Label)}
	if id, ok := ParseID(d.ID); ok {
		t.ID = id
	}
	return t
}
