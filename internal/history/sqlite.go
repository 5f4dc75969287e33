// Package history persists the append-only application log. Discovery reads
// a snapshot of it to mark already-seen postings; the applied command appends
// to it.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mzaleski/jobscout/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore keeps the application log in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the applications table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	// applied_at is an ISO calendar date stored as text.
	createTable := `CREATE TABLE IF NOT EXISTS applications (
		url        TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating applications table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Entries returns a snapshot of the full application log.
func (s *SQLiteStore) Entries() ([]model.ApplicationEntry, error) {
	rows, err := s.db.Query("SELECT url, applied_at FROM applications ORDER BY applied_at")
	if err != nil {
		return nil, fmt.Errorf("reading application log: %w", err)
	}
	defer rows.Close()

	var entries []model.ApplicationEntry
	for rows.Next() {
		var url, rawDate string
		if err := rows.Scan(&url, &rawDate); err != nil {
			return nil, fmt.Errorf("scanning application entry: %w", err)
		}
		appliedAt, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			// A corrupt date loses that entry, not the whole log.
			continue
		}
		entries = append(entries, model.ApplicationEntry{URL: url, AppliedAt: appliedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading application log: %w", err)
	}
	return entries, nil
}

// Append records an application for url. Appending the same URL again keeps
// the original date (idempotent).
func (s *SQLiteStore) Append(url string, appliedAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO applications (url, applied_at) VALUES (?, ?)",
		url, appliedAt.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("logging application for %s: %w", url, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
