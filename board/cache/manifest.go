package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry describes one persisted solid.
type Entry struct {
	Key       string
	File      string
	Kind      string
	Vertices  int
	Faces     int
	RunID     string
	CreatedAt time.Time
}

// Manifest is a sqlite index of the entries in a cache directory. The database
// is opened on first use and only created by Record, so reading a manifest
// that was never written leaves the file system untouched.
type Manifest struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewManifest returns the manifest stored at path.
func NewManifest(path string) *Manifest {
	return &Manifest{path: path}
}

// conn opens the database. Without create a missing file yields a nil db.
func (m *Manifest) conn(create bool) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		return m.db, nil
	}
	if m.path == "" {
		return nil, fmt.Errorf("empty manifest path")
	}
	if !create {
		if _, err := os.Stat(m.path); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", m.path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	m.db = db
	return db, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		file TEXT NOT NULL,
		kind TEXT NOT NULL,
		vertices INTEGER NOT NULL,
		faces INTEGER NOT NULL,
		run_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`)
	return err
}

// Close closes the database if it was opened.
func (m *Manifest) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// Record inserts or replaces the entry for e.Key.
func (m *Manifest) Record(ctx context.Context, e Entry) error {
	db, err := m.conn(true)
	if err != nil {
		return fmt.Errorf("open manifest %s: %w", m.path, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO entries (key, file, kind, vertices, faces, run_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			file = excluded.file,
			kind = excluded.kind,
			vertices = excluded.vertices,
			faces = excluded.faces,
			run_id = excluded.run_id,
			created_at = excluded.created_at`,
		e.Key, e.File, e.Kind, e.Vertices, e.Faces, e.RunID, e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record manifest entry %s: %w", e.Key, err)
	}
	return nil
}

// List returns every entry ordered by key.
func (m *Manifest) List(ctx context.Context) ([]Entry, error) {
	db, err := m.conn(false)
	if err != nil || db == nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT key, file, kind, vertices, faces, run_id, created_at FROM entries ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Lookup returns the entry for key, if any.
func (m *Manifest) Lookup(ctx context.Context, key string) (Entry, bool, error) {
	db, err := m.conn(false)
	if err != nil || db == nil {
		return Entry{}, false, err
	}
	row := db.QueryRowContext(ctx,
		`SELECT key, file, kind, vertices, faces, run_id, created_at FROM entries WHERE key = ?`, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Clear deletes every entry and returns how many were deleted.
func (m *Manifest) Clear(ctx context.Context) (int64, error) {
	db, err := m.conn(false)
	if err != nil || db == nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var created string
	if err := s.Scan(&e.Key, &e.File, &e.Kind, &e.Vertices, &e.Faces, &e.RunID, &created); err != nil {
		return Entry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Entry{}, fmt.Errorf("manifest entry %s: bad created_at %q: %w", e.Key, created, err)
	}
	e.CreatedAt = t
	return e, nil
}
