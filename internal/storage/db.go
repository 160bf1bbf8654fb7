// Package storage persists scan results in a SQLite database under the
// .codegraph directory, so unchanged files are not re-parsed on every run.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"codegraph/internal/config"
	"codegraph/internal/logging"
)

// DB is the scan cache database connection.
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the cache database at .codegraph/cache.db inside the
// scan root. The schema is created on first use.
func Open(root string, logger *logging.Logger) (*DB, error) {
	cacheDir := filepath.Join(root, config.ConfigDirName)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.ConfigDirName, err)
	}

	dbPath := filepath.Join(cacheDir, "cache.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA foreign_keys=ON",    // Enable foreign key constraints
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on lock
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.dbPath
}

func (db *DB) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path        TEXT PRIMARY KEY,
		hash        TEXT NOT NULL,
		is_header   INTEGER NOT NULL,
		line_count  INTEGER NOT NULL,
		includes    TEXT NOT NULL,
		classes     TEXT NOT NULL,
		structs     TEXT NOT NULL,
		functions   TEXT NOT NULL,
		global_vars TEXT NOT NULL,
		scanned_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scan_runs (
		id            TEXT PRIMARY KEY,
		root          TEXT NOT NULL,
		started_at    TEXT NOT NULL,
		finished_at   TEXT,
		files_scanned INTEGER NOT NULL DEFAULT 0,
		cache_hits    INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_scan_runs_root ON scan_runs(root);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return err
	}
	return nil
}
