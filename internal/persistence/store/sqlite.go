package store

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

// timeLayout is fixed width so saved_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite stores slots in a single-file database.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
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
	return &SQLite{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS saves (
		name TEXT PRIMARY KEY,
		save_id TEXT NOT NULL,
		version INTEGER NOT NULL,
		saved_at TEXT NOT NULL,
		play_time_seconds REAL NOT NULL,
		blob BLOB NOT NULL
	);`)
	return err
}

// Put writes a slot, replacing any previous save under the same name.
func (s *SQLite) Put(ctx context.Context, slot Slot) error {
	if slot.Name == "" {
		return fmt.Errorf("empty slot name")
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO saves(name,save_id,version,saved_at,play_time_seconds,blob)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET
			save_id=excluded.save_id,
			version=excluded.version,
			saved_at=excluded.saved_at,
			play_time_seconds=excluded.play_time_seconds,
			blob=excluded.blob`,
		slot.Name, slot.SaveID, slot.Version, slot.SavedAt.UTC().Format(timeLayout), slot.PlayTimeSeconds, slot.Blob)
	if err != nil {
		return fmt.Errorf("put slot %s: %w", slot.Name, err)
	}
	return nil
}

// Get reads one slot including its blob.
func (s *SQLite) Get(ctx context.Context, name string) (Slot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name,save_id,version,saved_at,play_time_seconds,blob FROM saves WHERE name=?`, name)
	slot, err := scanSlot(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("slot %s: %w", name, ErrNotFound)
	}
	return slot, err
}

// List returns slot metadata, newest first. Blobs are not loaded.
func (s *SQLite) List(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name,save_id,version,saved_at,play_time_seconds FROM saves ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		slot, err := scanSlot(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

// Delete removes a slot. Deleting a missing slot returns ErrNotFound.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE name=?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("slot %s: %w", name, ErrNotFound)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func scanSlot(scan func(dest ...any) error, withBlob bool) (Slot, error) {
	var (
		slot    Slot
		savedAt string
	)
	dest := []any{&slot.Name, &slot.SaveID, &slot.Version, &savedAt, &slot.PlayTimeSeconds}
	if withBlob {
		dest = append(dest, &slot.Blob)
	}
	if err := scan(dest...); err != nil {
		return Slot{}, err
	}
	t, err := time.Parse(timeLayout, savedAt)
	if err != nil {
		return Slot{}, fmt.Errorf("slot %s: bad saved_at %q: %w", slot.Name, savedAt, err)
	}
	slot.SavedAt = t
	return slot, nil
}
