package repository

import (
	"context"
	"strconv"

	"notekeeper/model"
)

// NotesRepository persists notes. Implementations return model.ErrNoteNotFound
// for well-formed ids that match nothing and model.ErrMalformedID for ids the
// store cannot address.
type NotesRepository interface {
	Create(ctx context.Context, input model.NoteInput) (*model.Note, error)
	FindAll(ctx context.Context) ([]*model.Note, error)
	FindByID(ctx context.Context, id string) (*model.Note, error)
	UpdateByID(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error)
	// DeleteByID reports whether a record was removed. Unknown ids are not an error.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// Pinger is implemented by stores that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// parseSequentialID validates the integer ids handed out by the memory,
// sqlite and redis stores. Only the canonical form is accepted, so "01" and
// "+1" do not alias note 1.
func parseSequentialID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != id {
		return 0, model.ErrMalformedID
	}
	return n, nil
}
