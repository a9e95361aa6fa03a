package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"notekeeper/model"
)

// ErrUnknownNote is returned when an operation names a note the store does
// not hold.
var ErrUnknownNote = errors.New("note is not in the local list")

// NotesAPI is the part of Client the Store needs.
type NotesAPI interface {
	GetAll(ctx context.Context) ([]model.Note, error)
	Create(ctx context.Context, draft Draft) (model.Note, error)
	Update(ctx context.Context, id string, changed model.Note) (model.Note, error)
}

type Filter int

const (
	FilterAll Filter = iota
	FilterImportant
)

func (f Filter) String() string {
	if f == FilterImportant {
		return "important"
	}
	return "all"
}

// Store is the client's view of the notes. Mutations are applied under one
// lock once the server has answered, so each runs to completion before the
// next; network calls happen outside the lock.
type Store struct {
	api    NotesAPI
	logger *log.Logger
	notice *Notifier

	mu     sync.Mutex
	notes  []model.Note
	input  string
	filter Filter
}

type StoreOption func(*Store)

func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithNotificationDelay changes how long error messages stay visible
func WithNotificationDelay(d time.Duration) StoreOption {
	return func(s *Store) {
		s.notice = NewNotifier(d)
	}
}

func NewStore(api NotesAPI, opts ...StoreOption) *Store {
	s := &Store{
		api:    api,
		logger: log.Default(),
		notice: NewNotifier(DefaultNotificationDelay),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the initial list once. Failures are logged and leave the
// store empty.
func (s *Store) Load(ctx context.Context) {
	notes, err := s.api.GetAll(ctx)
	if err != nil {
		s.logger.Printf("Failed to load notes: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.logger.Printf("Loaded %d notes", len(notes))
}

func (s *Store) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

func (s *Store) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SubmitDraft creates a note from the current input. The note is appended
// only after the server returns it, and the input is cleared then.
func (s *Store) SubmitDraft(ctx context.Context, important bool) (model.Note, error) {
	s.mu.Lock()
	draft := Draft{Content: s.input, Important: important}
	s.mu.Unlock()

	note, err := s.api.Create(ctx, draft)
	if err != nil {
		s.logger.Printf("Failed to create note: %v", err)
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, note)
	s.input = ""
	return note, nil
}

// ToggleImportance asks the server to flip a note's importance. The cached
// note is replaced with the server's copy on success, evicted with a
// message when the server no longer has it, and left alone otherwise.
func (s *Store) ToggleImportance(ctx context.Context, id string) (*ToggleOp, error) {
	s.mu.Lock()
	note, ok := s.find(id)
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("toggle %s: %w", id, ErrUnknownNote)
	}
	op := newToggleOp(note)
	op.begin()
	s.mu.Unlock()

	returned, err := s.api.Update(ctx, id, op.Candidate)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		op.confirm(returned)
		s.replace(id, returned)
	case errors.Is(err, ErrNotFound):
		op.rollBack(err)
		s.remove(id)
		s.notice.Show(DeletedMessage(op.Original.Content))
	default:
		op.drop(err)
		s.logger.Printf("Failed to toggle importance of note %s: %v", id, err)
	}
	return op, nil
}

func (s *Store) find(id string) (model.Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}

func (s *Store) replace(id string, note model.Note) {
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i] = note
		}
	}
}

func (s *Store) remove(id string) {
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.notes = kept
}

func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// ToggleFilter switches between all notes and important ones and returns
// the new filter.
func (s *Store) ToggleFilter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter == FilterAll {
		s.filter = FilterImportant
	} else {
		s.filter = FilterAll
	}
	return s.filter
}

func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Notes returns a copy of every cached note
func (s *Store) Notes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Note(nil), s.notes...)
}

// Visible returns the notes the current filter lets through
func (s *Store) Visible() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := make([]model.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if s.filter == FilterImportant && !n.Important {
			continue
		}
		visible = append(visible, n)
	}
	return visible
}

// ErrorMessage is the transient message, empty when none is showing
func (s *Store) ErrorMessage() string {
	return s.notice.Message()
}

// Close stops the pending message timer
func (s *Store) Close() {
	s.notice.Close()
}
