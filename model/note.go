package model

import (
	"encoding/json"
	"time"
)

// MinContentLength is the shortest content a note may be stored with.
const MinContentLength = 5

// Note is the canonical form of a stored note. It is the only shape that
// crosses the HTTP boundary.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Important bool      `json:"important"`
}

// NoteDraft is the body of a create request. ID and Date are kept raw so
// that their presence can be detected and rejected; an explicit null counts
// as absent.
type NoteDraft struct {
	Content   string          `json:"content" validate:"required,min=5"`
	Important *bool           `json:"important"`
	ID        json.RawMessage `json:"id,omitempty" validate:"unset"`
	Date      json.RawMessage `json:"date,omitempty" validate:"unset"`
}

// NoteUpdate is the body of an update request.
type NoteUpdate struct {
	Important *bool   `json:"important" validate:"required"`
	Content   *string `json:"content,omitempty" validate:"omitempty,min=5"`
}

// NoteInput is a validated draft, ready to be persisted.
type NoteInput struct {
	Content   string
	Important bool
}

// NotePatch holds the mutable part of a note.
type NotePatch struct {
	Important bool
}

// Now returns the creation timestamp used by every store: UTC, truncated to
// the millisecond precision BSON dates carry.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
