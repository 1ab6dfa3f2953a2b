// Package factstore is an optional debug sink: it persists one row per
// emitted microstatement (kind, output name, type, inputs) for post-hoc
// querying, opened with --fact-store against a run directory (see
// cmd/irgen's lower command).
//
// Grounded on the pack's db.Connect (open-directory-then-migrate shape,
// db/sqlite.go), adapted from gorm+libsql to a plain database/sql
// connection over modernc.org/sqlite, since this repo has no ORM
// dependency to spend on a debug-only sink.
package factstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a *sql.DB opened against a run-directory database file.
type Store struct {
	db *sql.DB
}

// Open establishes a connection to the fact store at path, creating its
// parent directory and running migrations (mirrors the pack's
// Connect: "Ensure directory exists ... Run migrations").
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("factstore: creating directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("factstore: opening %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS microstatements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	module_name TEXT NOT NULL,
	function_name TEXT NOT NULL,
	seq INTEGER NOT NULL,
	kind TEXT NOT NULL,
	output_name TEXT NOT NULL,
	output_type TEXT NOT NULL,
	inputs TEXT NOT NULL
);
`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("factstore: running migrations: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// RecordMicrostatement inserts one debug row.
func (s *Store) RecordMicrostatement(module, function string, seq int, kind, outputName, outputType, inputsJoined string) error {
	_, err := s.db.Exec(
		`INSERT INTO microstatements (module_name, function_name, seq, kind, output_name, output_type, inputs) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		module, function, seq, kind, outputName, outputType, inputsJoined,
	)
	return err
}
