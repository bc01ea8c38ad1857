package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/db"
)

// SQLiteCacheRepo implements CacheRepo using a SQLite database.
type SQLiteCacheRepo struct {
	db db.DBTX
}

// NewSQLiteCacheRepo creates a new SQLiteCacheRepo.
func NewSQLiteCacheRepo(conn db.DBTX) *SQLiteCacheRepo {
	return &SQLiteCacheRepo{db: conn}
}

func (r *SQLiteCacheRepo) Get(ctx context.Context) (*CachedDocument, error) {
	query := `SELECT document, dirty, remote_sha, synced_fingerprint, last_synced_at,
		last_remote_modified, updated_at
		FROM user_data_cache WHERE id = 1`

	var (
		c              CachedDocument
		document       string
		dirty          int
		lastSynced     sql.NullString
		remoteModified sql.NullString
		updatedAt      string
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&document, &dirty, &c.RemoteSHA, &c.SyncedFingerprint, &lastSynced, &remoteModified, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("cached document: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cached document: %w", err)
	}
	c.Document = []byte(document)
	c.Dirty = intToBool(dirty)
	c.LastSyncedAt = parseNullableTime(lastSynced, time.RFC3339)
	c.LastRemoteModified = parseNullableTime(remoteModified, time.RFC3339)
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		c.UpdatedAt = t
	}
	return &c, nil
}

// SaveDocument stores the document, keeping what is known about the
// remote copy.
func (r *SQLiteCacheRepo) SaveDocument(ctx context.Context, document []byte, dirty bool) error {
	query := `INSERT INTO user_data_cache (id, document, dirty, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			dirty = excluded.dirty,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, string(document), boolToInt(dirty), nowUTC()); err != nil {
		return fmt.Errorf("saving cached document: %w", err)
	}
	return nil
}

// MarkSynced records a successful exchange with the remote. The dirty
// flag is only cleared when clearDirty is set, so edits made while the
// sync was in flight stay pending.
func (r *SQLiteCacheRepo) MarkSynced(ctx context.Context, sha, fingerprint string, at time.Time, remoteModified *time.Time, clearDirty bool) error {
	query := `UPDATE user_data_cache SET
			remote_sha = ?,
			synced_fingerprint = ?,
			last_synced_at = ?,
			last_remote_modified = ?,
			dirty = CASE WHEN ? THEN 0 ELSE dirty END
		WHERE id = 1`
	res, err := r.db.ExecContext(ctx, query,
		sha,
		fingerprint,
		at.UTC().Format(time.RFC3339),
		nullableTimeToString(remoteModified, time.RFC3339),
		boolToInt(clearDirty),
	)
	if err != nil {
		return fmt.Errorf("marking cache synced: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking cache synced: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("cached document: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteCacheRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_data_cache`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
