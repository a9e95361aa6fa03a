package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"notekeeper/model"
	"notekeeper/utils"
)

const memoryStore = "memory"

// MemoryNotesRepo keeps notes in process, in insertion order, with ids taken
// from a counter. It backs the early non-persisted server and the tests.
type MemoryNotesRepo struct {
	mu     sync.RWMutex
	notes  map[int64]*model.Note
	order  []int64
	lastID int64
	now    func() time.Time
}

// NewMemoryNotesRepo returns a store pre-filled with seed. Seed ids are
// replaced by counter ids; zero dates are set to now.
func NewMemoryNotesRepo(seed ...model.Note) *MemoryNotesRepo {
	r := &MemoryNotesRepo{
		notes: make(map[int64]*model.Note),
		now:   model.Now,
	}
	for _, n := range seed {
		date := n.Date
		if date.IsZero() {
			date = r.now()
		}
		r.insert(n.Content, date, n.Important)
	}
	return r
}

func (r *MemoryNotesRepo) insert(content string, date time.Time, important bool) *model.Note {
	r.lastID++
	note := &model.Note{
		ID:        strconv.FormatInt(r.lastID, 10),
		Content:   content,
		Date:      date,
		Important: important,
	}
	r.notes[r.lastID] = note
	r.order = append(r.order, r.lastID)
	return note
}

func (r *MemoryNotesRepo) Create(ctx context.Context, input model.NoteInput) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", memoryStore)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	note := r.insert(input.Content, r.now(), input.Important)
	copied := *note
	return &copied, nil
}

func (r *MemoryNotesRepo) FindAll(ctx context.Context) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", memoryStore)
	defer timer.ObserveDuration()

	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*model.Note, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.notes[id]
		notes = append(notes, &copied)
	}
	return notes, nil
}

func (r *MemoryNotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[key]
	if !ok {
		return nil, model.ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *MemoryNotesRepo) UpdateByID(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("update", memoryStore)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[key]
	if !ok {
		return nil, model.ErrNoteNotFound
	}
	note.Important = patch.Important
	copied := *note
	return &copied, nil
}

func (r *MemoryNotesRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return false, nil
	}

	timer := utils.TrackDBOperation("delete", memoryStore)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[key]; !ok {
		return false, nil
	}
	delete(r.notes, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryNotesRepo) Ping(ctx context.Context) error {
	return nil
}

// SeedNotes are the notes the early in-memory server started with.
func SeedNotes() []model.Note {
	return []model.Note{
		{Content: "HTML is easy", Date: time.Date(2019, 5, 30, 17, 30, 31, 98e6, time.UTC), Important: true},
		{Content: "Browser can execute only Javascript", Date: time.Date(2019, 5, 30, 18, 39, 34, 91e6, time.UTC), Important: false},
		{Content: "GET and POST are the most important methods of HTTP protocol", Date: time.Date(2019, 5, 30, 19, 20, 14, 298e6, time.UTC), Important: true},
	}
}
