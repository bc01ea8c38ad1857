package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/db"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// syncLogKeep bounds the sync log.
const syncLogKeep = 200

// Cached is the locally cached document and its sync bookkeeping.
type Cached struct {
	Doc          *userdata.Document
	Dirty        bool
	SHA          string
	Fingerprint  string
	LastSyncedAt *time.Time
	UpdatedAt    time.Time
}

// SyncState describes a successful exchange with the remote.
type SyncState struct {
	Doc            *userdata.Document // when set, replaces the cached document
	SHA            string
	Fingerprint    string
	At             time.Time
	RemoteModified *time.Time
	ClearDirty     bool
}

// CacheStore is the local copy of the user data document. It keeps
// working offline and holds edits that have not reached the remote.
type CacheStore struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

func NewCacheStore(conn db.DBTX, uow db.UnitOfWork) *CacheStore {
	return &CacheStore{conn: conn, uow: uow}
}

// Load returns ErrNotFound when nothing has been cached.
func (c *CacheStore) Load(ctx context.Context) (*Cached, error) {
	row, err := repository.NewSQLiteCacheRepo(c.conn).Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc, err := userdata.Parse(row.Document)
	if err != nil {
		return nil, fmt.Errorf("cached user data: %w", err)
	}
	return &Cached{
		Doc:          doc,
		Dirty:        row.Dirty,
		SHA:          row.RemoteSHA,
		Fingerprint:  row.SyncedFingerprint,
		LastSyncedAt: row.LastSyncedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// Put replaces the cached document.
func (c *CacheStore) Put(ctx context.Context, doc *userdata.Document, dirty bool) error {
	data, err := userdata.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding user data: %w", err)
	}
	return repository.NewSQLiteCacheRepo(c.conn).SaveDocument(ctx, data, dirty)
}

// RecordSync stores the outcome of a successful exchange and appends rec
// to the sync log in one transaction.
func (c *CacheStore) RecordSync(ctx context.Context, state SyncState, rec *repository.SyncRecord) error {
	var data []byte
	if state.Doc != nil {
		var err error
		if data, err = userdata.Encode(state.Doc); err != nil {
			return fmt.Errorf("encoding user data: %w", err)
		}
	}
	return c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cache := repository.NewSQLiteCacheRepo(tx)
		if data != nil {
			if err := cache.SaveDocument(ctx, data, false); err != nil {
				return err
			}
		}
		if err := cache.MarkSynced(ctx, state.SHA, state.Fingerprint, state.At, state.RemoteModified, state.ClearDirty); err != nil {
			return err
		}
		log := repository.NewSQLiteSyncLogRepo(tx)
		if err := log.Append(ctx, rec); err != nil {
			return err
		}
		return log.Prune(ctx, syncLogKeep)
	})
}

// RecordAttempt appends rec to the sync log without touching the cache.
func (c *CacheStore) RecordAttempt(ctx context.Context, rec *repository.SyncRecord) error {
	return repository.NewSQLiteSyncLogRepo(c.conn).Append(ctx, rec)
}

// History lists the newest sync log records.
func (c *CacheStore) History(ctx context.Context, limit int) ([]*repository.SyncRecord, error) {
	return repository.NewSQLiteSyncLogRepo(c.conn).ListRecent(ctx, limit)
}

// Clear drops the cached document, including unsynced edits.
func (c *CacheStore) Clear(ctx context.Context) error {
	return repository.NewSQLiteCacheRepo(c.conn).Clear(ctx)
}
