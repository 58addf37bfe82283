// Package history persists run summaries to a local SQLite database so
// past runs can be inspected after the fact.
package history

import (
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/colrun/colrun/packages/runner"
)

// Record is one stored run summary.
type Record struct {
	ID         int64
	Collection string
	Passed     int
	Failures   int
	Errors     int
	Skipped    int
	DurationMs int64
	CreatedAt  time.Time
}

// Store wraps the SQLite database holding run history.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	collection  TEXT NOT NULL,
	passed      INTEGER NOT NULL,
	failures    INTEGER NOT NULL,
	errors      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores one run summary.
func (s *Store) Save(result *runner.RunResult) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (collection, passed, failures, errors, skipped, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.Collection, result.Passed, result.Failures, result.Errors,
		result.Skipped, result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, collection, passed, failures, errors, skipped, duration_ms, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Collection, &r.Passed, &r.Failures,
			&r.Errors, &r.Skipped, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
