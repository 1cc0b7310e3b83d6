// Package store persists clusters, alerts, cost analyses and daily cost
// snapshots in SQLite. Nested collections (cluster nodes, recommendation
// lists) are stored as JSON document columns and decoded back into typed
// records at this boundary.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Config holds database configuration.
type Config struct {
	Path string
}

// DB wraps the SQLite handle behind the typed record operations.
type DB struct {
	db *sql.DB
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Open creates the directory, opens the SQLite database, sets WAL mode and
// pragmas, and ensures all tables exist.
func Open(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return open(cfg.Path, false)
}

// OpenInMemory opens a throwaway in-memory database. Used when no database
// path is configured or the configured path cannot be opened; the API then
// serves freshly seeded data that does not survive a restart.
func OpenInMemory() (*DB, error) {
	return open("file::memory:?cache=shared", true)
}

func open(dsn string, memory bool) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if memory {
		// A shared-cache in-memory database disappears when its last
		// connection closes, so pin a single connection open.
		sqlDB.SetMaxOpenConns(1)
	} else {
		// In WAL mode SQLite supports concurrent readers with a single
		// writer. Allow multiple connections so reads don't block behind
		// writes.
		sqlDB.SetMaxOpenConns(4)
		sqlDB.SetMaxIdleConns(2)

		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA synchronous=NORMAL",
		}
		for _, p := range pragmas {
			if _, err := sqlDB.Exec(p); err != nil {
				sqlDB.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", p, err)
			}
		}
	}

	if err := createTables(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &DB{db: sqlDB}, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clusters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			provider TEXT NOT NULL,
			region TEXT NOT NULL,
			nodes TEXT NOT NULL,
			total_cost REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			cluster_id TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			description TEXT NOT NULL,
			severity TEXT NOT NULL,
			detected_at TEXT NOT NULL,
			resolved INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_cluster ON alerts(cluster_id)`,

		`CREATE TABLE IF NOT EXISTS cost_analyses (
			id TEXT PRIMARY KEY,
			cluster_id TEXT NOT NULL,
			analysis_type TEXT NOT NULL,
			recommendations TEXT NOT NULL,
			potential_savings REAL NOT NULL,
			confidence_score REAL NOT NULL,
			ai_insights TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_cluster ON cost_analyses(cluster_id)`,

		`CREATE TABLE IF NOT EXISTS cost_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL UNIQUE,
			total_monthly_cost_usd REAL NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}
	return nil
}
