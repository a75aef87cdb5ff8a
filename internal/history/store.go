package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Request status values.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one processed annotation request.
type Record struct {
	ID            string
	CreatedAt     time.Time
	MediaID       string
	MediaLocation string
	Model         string
	Task          string
	Language      string
	TimeUnit      string
	Tokens        int
	Frames        int
	Sentences     int
	Duration      time.Duration
	Status        string
	Error         string
}

// Store manages request history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	keep int
}

// Open initializes or connects to the history database and applies
// migrations. keep bounds retained rows; zero keeps everything.
func Open(path string, keep int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, keep: keep}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record inserts one request outcome and prunes rows beyond the retention
// bound. A zero ID is assigned a fresh UUID.
func (s *Store) Record(ctx context.Context, rec Record) (*Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO requests (
            id, created_at, media_id, media_location, model, task, language,
            time_unit, tokens, frames, sentences, duration_ms, status, error
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.MediaID,
		rec.MediaLocation,
		rec.Model,
		rec.Task,
		rec.Language,
		rec.TimeUnit,
		rec.Tokens,
		rec.Frames,
		rec.Sentences,
		rec.Duration.Milliseconds(),
		rec.Status,
		rec.Error,
	)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	if s.keep > 0 {
		if err := s.prune(ctx); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, created_at, media_id, media_location, model, task, language,
                time_unit, tokens, frames, sentences, duration_ms, status, error
         FROM requests ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return records, nil
}

func (s *Store) prune(ctx context.Context) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM requests WHERE rowid NOT IN (
            SELECT rowid FROM requests ORDER BY created_at DESC, rowid DESC LIMIT ?
        )`,
		s.keep,
	)
	if err != nil {
		return fmt.Errorf("prune requests: %w", err)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var createdAt string
	var durationMS int64
	if err := rows.Scan(
		&rec.ID,
		&createdAt,
		&rec.MediaID,
		&rec.MediaLocation,
		&rec.Model,
		&rec.Task,
		&rec.Language,
		&rec.TimeUnit,
		&rec.Tokens,
		&rec.Frames,
		&rec.Sentences,
		&durationMS,
		&rec.Status,
		&rec.Error,
	); err != nil {
		return Record{}, fmt.Errorf("scan request: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = parsed
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	return rec, nil
}
