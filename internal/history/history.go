// Package history stores playback positions so files resume where they
// were left.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	path       TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	position   REAL NOT NULL,
	duration   REAL NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS positions_updated ON positions(updated_at);
`

// Entry is one remembered file.
type Entry struct {
	Path      string
	Title     string
	Position  float64
	Duration  float64
	UpdatedAt time.Time
}

// Progress returns how far into the file Position is, from 0 to 1.
func (e Entry) Progress() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return min(e.Position/e.Duration, 1)
}

// Store is a sqlite-backed position store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePosition records e. A position within resumeMargin of either end of
// the file clears the entry instead.
func (s *Store) SavePosition(ctx context.Context, e Entry) error {
	if e.Path == "" {
		return errors.New("history: empty path")
	}
	if !resumable(e.Position, e.Duration) {
		return s.Forget(ctx, e.Path)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (path, title, position, duration, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			position = excluded.position,
			duration = excluded.duration,
			updated_at = excluded.updated_at`,
		e.Path, e.Title, e.Position, e.Duration, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("saving position for %s: %w", e.Path, err)
	}
	return nil
}

// Position returns the saved position for path. ok is false when nothing
// was saved.
func (s *Store) Position(ctx context.Context, path string) (pos float64, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT position FROM positions WHERE path = ?`, path).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading position for %s: %w", path, err)
	}
	return pos, true, nil
}

// Forget drops the entry for path.
func (s *Store) Forget(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM positions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forgetting %s: %w", path, err)
	}
	return nil
}

// Recent returns up to limit entries, most recently updated first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, title, position, duration, updated_at
		FROM positions ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.Path, &e.Title, &e.Position, &e.Duration, &ts); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.UpdatedAt = time.Unix(0, ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// Minimum distance from either end of a file for a position to be saved.
const resumeMargin = 10.0

func resumable(pos, dur float64) bool {
	if pos < resumeMargin {
		return false
	}
	if dur > 0 && dur-pos < resumeMargin {
		return false
	}
	return true
}
