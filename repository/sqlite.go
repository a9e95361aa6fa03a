package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"notekeeper/model"
	"notekeeper/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteStore = "sqlite"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	content   TEXT      NOT NULL,
	date      TIMESTAMP NOT NULL,
	important BOOLEAN   NOT NULL DEFAULT 0,
	version   INTEGER   NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS notes_date ON notes (date DESC);`

type noteRow struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"`
	Date      time.Time `db:"date"`
	Important bool      `db:"important"`
	Version   int       `db:"version"`
}

func (row *noteRow) toNote() *model.Note {
	return &model.Note{
		ID:        strconv.FormatInt(row.ID, 10),
		Content:   row.Content,
		Date:      row.Date.UTC(),
		Important: row.Important,
	}
}

type SQLiteNotesRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// OpenSQLiteNotesRepo opens (creating if needed) the database at path and
// makes sure the notes table exists.
func OpenSQLiteNotesRepo(ctx context.Context, path string) (*SQLiteNotesRepo, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create notes table: %w", err)
	}
	return &SQLiteNotesRepo{db: db, now: model.Now}, nil
}

func (r *SQLiteNotesRepo) Create(ctx context.Context, input model.NoteInput) (*model.Note, error) {
	timer := utils.TrackDBOperation("insert", sqliteStore)
	defer timer.ObserveDuration()

	row := noteRow{
		Content:   input.Content,
		Date:      r.now(),
		Important: input.Important,
	}
	result, err := r.db.NamedExecContext(ctx,
		`INSERT INTO notes (content, date, important) VALUES (:content, :date, :important)`, row)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}
	if row.ID, err = result.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return row.toNote(), nil
}

func (r *SQLiteNotesRepo) FindAll(ctx context.Context) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", sqliteStore)
	defer timer.ObserveDuration()

	var rows []noteRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, content, date, important, version FROM notes ORDER BY id`); err != nil {
		utils.TrackError("database", "note_fetch_failed")
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}

	notes := make([]*model.Note, 0, len(rows))
	for i := range rows {
		notes = append(notes, rows[i].toNote())
	}
	return notes, nil
}

func (r *SQLiteNotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("find_one", sqliteStore)
	defer timer.ObserveDuration()

	return r.get(ctx, r.db, key)
}

func (r *SQLiteNotesRepo) get(ctx context.Context, q sqlx.QueryerContext, key int64) (*model.Note, error) {
	var row noteRow
	err := sqlx.GetContext(ctx, q, &row,
		`SELECT id, content, date, important, version FROM notes WHERE id = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to select note %d: %w", key, err)
	}
	return row.toNote(), nil
}

func (r *SQLiteNotesRepo) UpdateByID(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return nil, err
	}

	timer := utils.TrackDBOperation("update", sqliteStore)
	defer timer.ObserveDuration()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE notes SET important = ?, version = version + 1 WHERE id = ?`, patch.Important, key)
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note %d: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, model.ErrNoteNotFound
	}

	note, err := r.get(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit note %d: %w", key, err)
	}
	return note, nil
}

func (r *SQLiteNotesRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	key, err := parseSequentialID(id)
	if err != nil {
		return false, nil
	}

	timer := utils.TrackDBOperation("delete", sqliteStore)
	defer timer.ObserveDuration()

	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, key)
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return false, fmt.Errorf("failed to delete note %d: %w", key, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteNotesRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteNotesRepo) Close() error {
	return r.db.Close()
}
