package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"user_data_cache", "sync_log"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, "idx_sync_log_started").Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_AddsLateColumns(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(user_data_cache)`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dflt      sql.NullString
			pk        int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	assert.Contains(t, cols, "last_remote_modified")
	assert.Contains(t, cols, "synced_fingerprint")
}

func TestMigrate_CacheHoldsOneRow(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO user_data_cache (id, document, updated_at) VALUES (1, '{}', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO user_data_cache (id, document, updated_at) VALUES (2, '{}', 'now')`)
	assert.Error(t, err)
}

func TestMigrate_RejectsUnknownOutcome(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sync_log (id, started_at, outcome) VALUES ('a', 'now', 'exploded')`)
	assert.Error(t, err)
}
