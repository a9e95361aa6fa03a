package usecase

import (
	"context"
	"errors"
	"testing"

	"notekeeper/model"
	"notekeeper/repository"
)

type failingRepo struct {
	repository.NotesRepository
	err error
}

func (r failingRepo) FindAll(ctx context.Context) ([]*model.Note, error) { return nil, r.err }
func (r failingRepo) Ping(ctx context.Context) error { return r.err }

func TestNotesService(t *testing.T) {
	ctx := context.Background()
	svc := NewNotesService(repository.NewMemoryNotesRepo())

	created, err := svc.CreateNote(ctx, model.NoteDraft{Content: "Write tests", Important: boolPtr(true)})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if created.ID == "" || created.Date.IsZero() {
		t.Fatalf("expected server assigned id and date, got %+v", created)
	}

	t.Run("list returns created note", func(t *testing.T) {
		notes, err := svc.ListNotes(ctx)
		if err != nil {
			t.Fatalf("ListNotes failed: %v", err)
		}
		if len(notes) != 1 || notes[0].ID != created.ID {
			t.Fatalf("unexpected notes %+v", notes)
		}
	})

	t.Run("update flips importance and keeps content", func(t *testing.T) {
		updated, err := svc.UpdateNote(ctx, created.ID, model.NoteUpdate{
			Important: boolPtr(false),
			Content:   strPtr("Something else"),
		})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}
		if updated.Important || updated.Content != "Write tests" || !updated.Date.Equal(created.Date) {
			t.Errorf("unexpected update result %+v", updated)
		}
	})

	t.Run("invalid create is rejected before storage", func(t *testing.T) {
		if _, err := svc.CreateNote(ctx, model.NoteDraft{Content: "abc"}); !model.IsValidationError(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		notes, _ := svc.ListNotes(ctx)
		if len(notes) != 1 {
			t.Errorf("expected 1 note, got %d", len(notes))
		}
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		if _, err := svc.GetNote(ctx, "999"); !errors.Is(err, model.ErrNoteNotFound) {
			t.Errorf("expected ErrNoteNotFound, got %v", err)
		}
		if _, err := svc.GetNote(ctx, "not-an-id"); !errors.Is(err, model.ErrMalformedID) {
			t.Errorf("expected ErrMalformedID, got %v", err)
		}
		if _, err := svc.UpdateNote(ctx, "999", model.NoteUpdate{Important: boolPtr(true)}); !errors.Is(err, model.ErrNoteNotFound) {
			t.Errorf("expected ErrNoteNotFound, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := svc.DeleteNote(ctx, created.ID); err != nil {
				t.Fatalf("DeleteNote #%d failed: %v", i+1, err)
			}
		}
		if err := svc.DeleteNote(ctx, "garbage"); err != nil {
			t.Fatalf("DeleteNote with malformed id failed: %v", err)
		}
		if _, err := svc.GetNote(ctx, created.ID); !errors.Is(err, model.ErrNoteNotFound) {
			t.Errorf("expected deleted note to be gone, got %v", err)
		}
	})
}

func TestNotesServiceStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewNotesService(failingRepo{err: storeErr})

	if _, err := svc.ListNotes(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
	if err := svc.Ping(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("expected ping to report store error, got %v", err)
	}
}
