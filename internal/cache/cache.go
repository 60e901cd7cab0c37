// Package cache persists completed CSV byte-offset indexes between
// sessions so large files open without a full rescan. Entries are
// keyed by path and validated against file size and mtime; a stale
// entry is a miss. Only derived file geometry is stored here, never
// window, filter or selection state.
package cache

import (
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a sqlite-backed index cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path and
// brings its schema up to date.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored offsets for path if the entry matches the
// given size and mtime. The second return is false on a miss or a
// stale entry.
func (s *Store) Load(path string, size int64, mtime time.Time) ([]int64, bool, error) {
	var (
		gotSize  int64
		gotMtime int64
		blob     []byte
	)
	err := s.db.QueryRow(
		`SELECT size, mtime, offsets FROM file_indexes WHERE path = ?`, path,
	).Scan(&gotSize, &gotMtime, &blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load index for %s: %w", path, err)
	}
	if gotSize != size || gotMtime != mtime.Unix() {
		return nil, false, nil
	}
	return decodeOffsets(blob), true, nil
}

// Save stores a completed offset index for path, replacing any
// previous entry.
func (s *Store) Save(path string, size int64, mtime time.Time, offsets []int64) error {
	_, err := s.db.Exec(
		`INSERT INTO file_indexes (id, path, size, mtime, offsets)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   size = excluded.size,
		   mtime = excluded.mtime,
		   offsets = excluded.offsets,
		   created_at = datetime('now')`,
		uuid.NewString(), path, size, mtime.Unix(), encodeOffsets(offsets),
	)
	if err != nil {
		return fmt.Errorf("save index for %s: %w", path, err)
	}
	return nil
}

// Prune keeps the most recent keep entries and deletes the rest.
func (s *Store) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.Exec(
		`DELETE FROM file_indexes WHERE id NOT IN (
		   SELECT id FROM file_indexes ORDER BY created_at DESC, id LIMIT ?
		 )`, keep,
	)
	if err != nil {
		return fmt.Errorf("prune index cache: %w", err)
	}
	return nil
}

func encodeOffsets(offsets []int64) []byte {
	buf := make([]byte, 8*len(offsets))
	for i, off := range offsets {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(off))
	}
	return buf
}

func decodeOffsets(blob []byte) []int64 {
	out := make([]int64, len(blob)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return out
}
