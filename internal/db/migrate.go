package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Re-running an ALTER TABLE ADD COLUMN is expected.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Single-row cache of the user data document. It stands in for the
	// remote copy when offline and keeps unsynced edits across runs.
	`CREATE TABLE IF NOT EXISTS user_data_cache (
		id                 INTEGER PRIMARY KEY CHECK (id = 1),
		document           TEXT NOT NULL,
		dirty              INTEGER NOT NULL DEFAULT 0,
		remote_sha         TEXT NOT NULL DEFAULT '',
		synced_fingerprint TEXT NOT NULL DEFAULT '',
		last_synced_at     TEXT,
		updated_at         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sync_log (
		id          TEXT PRIMARY KEY,
		started_at  TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		outcome     TEXT NOT NULL
		            CHECK(outcome IN ('pushed','pulled','unchanged','conflict','failed')),
		remote_sha  TEXT NOT NULL DEFAULT '',
		error       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sync_log_started ON sync_log(started_at)`,
	`ALTER TABLE user_data_cache ADD COLUMN last_remote_modified TEXT`,
}
