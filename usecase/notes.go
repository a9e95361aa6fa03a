package usecase

import (
	"context"
	"fmt"
	"log"

	"notekeeper/model"
	"notekeeper/repository"
	"notekeeper/utils"
)

type NotesService struct {
	NotesRepo repository.NotesRepository
}

func NewNotesService(repo repository.NotesRepository) *NotesService {
	return &NotesService{NotesRepo: repo}
}

// ListNotes returns every stored note
func (svc *NotesService) ListNotes(ctx context.Context) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetNote returns one note. model.ErrNoteNotFound and model.ErrMalformedID
// pass through unwrapped for the caller to branch on.
func (svc *NotesService) GetNote(ctx context.Context, id string) (*model.Note, error) {
	return svc.NotesRepo.FindByID(ctx, id)
}

func (svc *NotesService) CreateNote(ctx context.Context, draft model.NoteDraft) (*model.Note, error) {
	input, err := ValidateDraft(draft)
	if err != nil {
		return nil, err
	}

	note, err := svc.NotesRepo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	utils.TrackNoteOperation("create")
	log.Printf("Created note %s", note.ID)
	return note, nil
}

func (svc *NotesService) UpdateNote(ctx context.Context, id string, update model.NoteUpdate) (*model.Note, error) {
	patch, err := ValidateUpdate(update)
	if err != nil {
		return nil, err
	}

	note, err := svc.NotesRepo.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("update")
	return note, nil
}

// DeleteNote removes a note. Deleting an unknown note succeeds.
func (svc *NotesService) DeleteNote(ctx context.Context, id string) error {
	deleted, err := svc.NotesRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if deleted {
		utils.TrackNoteOperation("delete")
	} else {
		log.Printf("Delete of unknown note %s ignored", id)
	}
	return nil
}

// Ping checks the backing store when it supports health checks
func (svc *NotesService) Ping(ctx context.Context) error {
	pinger, ok := svc.NotesRepo.(repository.Pinger)
	if !ok {
		return nil
	}
	if err := pinger.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}
