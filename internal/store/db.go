// Package store keeps a sqlite ledger of written workout reports.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrWorkoutNotFound is returned when a workout isn't in the ledger
var ErrWorkoutNotFound = errors.New("workout not found")

// DB wraps the ledger database
type DB struct {
	*sql.DB
	path string
}

// Open opens the ledger at path, creating it if necessary
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	return open(path, path)
}

// OpenMemory opens an empty in-memory ledger
func OpenMemory() (*DB, error) {
	return open(":memory:", ":memory:")
}

func open(dsn, path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: writes are serialized and :memory: stays a single database
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{DB: sqlDB, path: path}, nil
}

// Path returns where the ledger lives
func (db *DB) Path() string {
	return db.path
}

// DefaultPath returns ~/.swimreport/reports.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".swimreport", "reports.db"), nil
}
