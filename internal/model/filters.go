package model

// Filters holds the current event-list criteria. Empty string means no
// constraint. The filtering itself lives in the event store; this type only
// carries state.
type Filters struct {
	Status        string `json:"status"`
	ParticipantID string `json:"participantId"`
	TagID         string `json:"tagId"`
}

// FilterPatch updates only the fields that are present. Nil pointers leave
// the current value unchanged, so individual criteria can be adjusted
// without resetting the others.
type FilterPatch struct {
	Status        *string `json:"status"`
	ParticipantID *string `json:"participantId"`
	TagID         *string `json:"tagId"`
}

// Apply merges the present fields of p into f.
func (f *Filters) Apply(p FilterPatch) {
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.ParticipantID != nil {
		f.ParticipantID = *p.ParticipantID
	}
	if p.TagID != nil {
		f.TagID = *p.TagID
	}
}

// Reset clears all criteria.
func (f *Filters) Reset() {
	*f = Filters{}
}
