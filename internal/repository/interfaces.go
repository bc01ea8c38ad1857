package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CachedDocument is the locally cached user data plus what is known
// about the remote copy it was last synced with.
type CachedDocument struct {
	Document           []byte
	Dirty              bool
	RemoteSHA          string
	SyncedFingerprint  string
	LastSyncedAt       *time.Time
	LastRemoteModified *time.Time
	UpdatedAt          time.Time
}

// SyncOutcome classifies one sync attempt.
type SyncOutcome string

const (
	SyncPushed    SyncOutcome = "pushed"
	SyncPulled    SyncOutcome = "pulled"
	SyncUnchanged SyncOutcome = "unchanged"
	SyncConflict  SyncOutcome = "conflict"
	SyncFailed    SyncOutcome = "failed"
)

// SyncRecord is one entry of the sync log.
type SyncRecord struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   SyncOutcome
	RemoteSHA string
	Error     string
}

type CacheRepo interface {
	Get(ctx context.Context) (*CachedDocument, error)
	SaveDocument(ctx context.Context, document []byte, dirty bool) error
	MarkSynced(ctx context.Context, sha, fingerprint string, at time.Time, remoteModified *time.Time, clearDirty bool) error
	Clear(ctx context.Context) error
}

type SyncLogRepo interface {
	Append(ctx context.Context, rec *SyncRecord) error
	ListRecent(ctx context.Context, limit int) ([]*SyncRecord, error)
	Prune(ctx context.Context, keep int) error
}
