package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/google/uuid"
)

// syncTimeLayout is fixed width so started_at sorts as text.
const syncTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteSyncLogRepo implements SyncLogRepo using a SQLite database.
type SQLiteSyncLogRepo struct {
	db db.DBTX
}

// NewSQLiteSyncLogRepo creates a new SQLiteSyncLogRepo.
func NewSQLiteSyncLogRepo(conn db.DBTX) *SQLiteSyncLogRepo {
	return &SQLiteSyncLogRepo{db: conn}
}

// Append inserts rec, assigning an id when it has none.
func (r *SQLiteSyncLogRepo) Append(ctx context.Context, rec *SyncRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `INSERT INTO sync_log (id, started_at, duration_ms, outcome, remote_sha, error)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.StartedAt.UTC().Format(syncTimeLayout),
		rec.Duration.Milliseconds(),
		string(rec.Outcome),
		rec.RemoteSHA,
		rec.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting sync record: %w", err)
	}
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *SQLiteSyncLogRepo) ListRecent(ctx context.Context, limit int) ([]*SyncRecord, error) {
	query := `SELECT id, started_at, duration_ms, outcome, remote_sha, error
		FROM sync_log ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sync records: %w", err)
	}
	defer rows.Close()

	var out []*SyncRecord
	for rows.Next() {
		var (
			rec        SyncRecord
			startedAt  string
			durationMs int64
			outcome    string
		)
		if err := rows.Scan(&rec.ID, &startedAt, &durationMs, &outcome, &rec.RemoteSHA, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning sync record: %w", err)
		}
		rec.StartedAt, err = time.Parse(syncTimeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing sync record time: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.Outcome = SyncOutcome(outcome)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Prune keeps only the newest keep records.
func (r *SQLiteSyncLogRepo) Prune(ctx context.Context, keep int) error {
	query := `DELETE FROM sync_log WHERE id NOT IN (
		SELECT id FROM sync_log ORDER BY started_at DESC LIMIT ?)`
	if _, err := r.db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("pruning sync log: %w", err)
	}
	return nil
}
