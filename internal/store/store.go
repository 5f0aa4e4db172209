// Package store persists the recently opened document list in a small
// SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/orglyph/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path       TEXT PRIMARY KEY,
	opened_at  DATETIME NOT NULL,
	open_count INTEGER NOT NULL DEFAULT 1
);
`

// Entry is one row of the recent-files list.
type Entry struct {
	Path      string
	OpenedAt  time.Time
	OpenCount int
}

// RecentStore tracks which documents were opened and when.
type RecentStore struct {
	db *sql.DB
}

// Open connects to the store at path, creating the database and its
// parent directory on first use.
func Open(path string) (*RecentStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	log.Debug(log.CatStore, "Opening recent-files store", "path", path)
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to open store", err, "path", path)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		log.ErrorErr(log.CatStore, "Failed to ping store", err, "path", path)
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &RecentStore{db: db}, nil
}

// Touch records that the document at path was opened now. Repeat opens
// bump the counter and refresh the timestamp.
func (s *RecentStore) Touch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO recent_files (path, opened_at, open_count)
		 VALUES (?, ?, 1)
		 ON CONFLICT(path) DO UPDATE SET
			opened_at = excluded.opened_at,
			open_count = open_count + 1`,
		abs, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}

// List returns up to limit entries, most recently opened first.
func (s *RecentStore) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT path, opened_at, open_count
		 FROM recent_files
		 ORDER BY opened_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent files: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.OpenedAt, &e.OpenCount); err != nil {
			return nil, fmt.Errorf("scan recent file: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Forget drops a path from the list, e.g. when the file no longer
// exists on disk.
func (s *RecentStore) Forget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM recent_files WHERE path = ?`, abs); err != nil {
		return fmt.Errorf("forget recent file: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *RecentStore) Close() error {
	return s.db.Close()
}
