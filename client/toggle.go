package client

import (
	"fmt"

	"notekeeper/model"
)

type ToggleState int

const (
	ToggleIdle ToggleState = iota
	TogglePending
	ToggleConfirmed
	ToggleRolledBack
	// ToggleDropped: the server refused for a reason other than 404; the
	// local cache was left alone.
	ToggleDropped
)

func (s ToggleState) String() string {
	switch s {
	case ToggleIdle:
		return "idle"
	case TogglePending:
		return "pending"
	case ToggleConfirmed:
		return "confirmed"
	case ToggleRolledBack:
		return "rolled_back"
	case ToggleDropped:
		return "dropped"
	}
	return fmt.Sprintf("ToggleState(%d)", int(s))
}

// ToggleOp tracks one importance toggle from request to outcome.
type ToggleOp struct {
	ID        string
	Original  model.Note
	Candidate model.Note
	State     ToggleState
	// Result is the server's copy once confirmed.
	Result *model.Note
	// Err is the server error that rolled back or dropped the toggle.
	Err error
}

func newToggleOp(note model.Note) *ToggleOp {
	candidate := note
	candidate.Important = !note.Important
	return &ToggleOp{
		ID:        note.ID,
		Original:  note,
		Candidate: candidate,
		State:     ToggleIdle,
	}
}

func (op *ToggleOp) transition(from, to ToggleState) {
	if op.State != from {
		panic(fmt.Sprintf("toggle %s: invalid transition %s -> %s", op.ID, op.State, to))
	}
	op.State = to
}

func (op *ToggleOp) begin() {
	op.transition(ToggleIdle, TogglePending)
}

func (op *ToggleOp) confirm(note model.Note) {
	op.transition(TogglePending, ToggleConfirmed)
	op.Result = &note
}

func (op *ToggleOp) rollBack(err error) {
	op.transition(TogglePending, ToggleRolledBack)
	op.Err = err
}

func (op *ToggleOp) drop(err error) {
	op.transition(TogglePending, ToggleDropped)
	op.Err = err
}

// Done reports whether the op reached a final state.
func (op *ToggleOp) Done() bool {
	return op.State == ToggleConfirmed || op.State == ToggleRolledBack || op.State == ToggleDropped
}

// DeletedMessage is shown when a toggled note turns out to be gone.
func DeletedMessage(content string) string {
	return fmt.Sprintf(`The note "%s" was already deleted from the server.`, content)
}
