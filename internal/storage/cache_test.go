package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *CacheStore {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewCacheStore(database, testutil.NewTestUoW(database))
}

func TestCacheStore_Empty(t *testing.T) {
	_, err := newTestCache(t).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheStore_PutAndLoad(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	doc := testutil.NewDoc(
		testutil.WithProgress("calc1", domain.ProgressPartial),
		testutil.WithCustomSubject("knots", "Knot Theory", "Topology"),
		testutil.WithLastModified(testutil.FixedTime),
	)

	require.NoError(t, cache.Put(ctx, doc, true))

	got, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Dirty)
	assert.Equal(t, doc.Progress, got.Doc.Progress)
	assert.Equal(t, doc.CustomSubjects, got.Doc.CustomSubjects)
	assert.True(t, got.Doc.LastModified.Equal(testutil.FixedTime))
}

func TestCacheStore_RecordSync(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, testutil.NewDoc(), true))

	pulled := testutil.NewDoc(testutil.WithTheme(domain.ThemeLight))
	modified := testutil.FixedTime.Add(-time.Minute)
	err := cache.RecordSync(ctx, SyncState{
		Doc:            pulled,
		SHA:            "sha-9",
		Fingerprint:    "fp",
		At:             testutil.FixedTime,
		RemoteModified: &modified,
		ClearDirty:     true,
	}, &repository.SyncRecord{StartedAt: testutil.FixedTime, Outcome: repository.SyncPulled, RemoteSHA: "sha-9"})
	require.NoError(t, err)

	got, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, got.Dirty)
	assert.Equal(t, "sha-9", got.SHA)
	assert.Equal(t, "fp", got.Fingerprint)
	assert.Equal(t, domain.ThemeLight, got.Doc.Theme)
	require.NotNil(t, got.LastSyncedAt)

	history, err := cache.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, repository.SyncPulled, history[0].Outcome)
}

func TestCacheStore_RecordSyncRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	setup := NewCacheStore(database, testutil.NewTestUoW(database))
	require.NoError(t, setup.Put(ctx, testutil.NewDoc(), true))

	boom := errors.New("log write failed")
	cache := NewCacheStore(database, &testutil.FailingUoW{DB: database, FailOn: 2, Err: boom})

	err := cache.RecordSync(ctx, SyncState{SHA: "sha-1", At: testutil.FixedTime, ClearDirty: true},
		&repository.SyncRecord{StartedAt: testutil.FixedTime, Outcome: repository.SyncPushed})
	assert.ErrorIs(t, err, boom)

	got, err := setup.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Dirty)
	assert.Empty(t, got.SHA)
}

func TestCacheStore_RecordAttemptAndClear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, testutil.NewDoc(), false))

	require.NoError(t, cache.RecordAttempt(ctx, &repository.SyncRecord{
		StartedAt: testutil.FixedTime, Outcome: repository.SyncFailed, Error: "offline",
	}))
	require.NoError(t, cache.Clear(ctx))

	_, err := cache.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	history, err := cache.History(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
