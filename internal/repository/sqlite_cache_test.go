package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepo_GetEmpty(t *testing.T) {
	repo := NewSQLiteCacheRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheRepo_SaveAndGet(t *testing.T) {
	repo := NewSQLiteCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveDocument(ctx, []byte(`{"schema":"3.0"}`), true))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"schema":"3.0"}`, string(got.Document))
	assert.True(t, got.Dirty)
	assert.Empty(t, got.RemoteSHA)
	assert.Nil(t, got.LastSyncedAt)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestCacheRepo_SaveKeepsRemoteState(t *testing.T) {
	repo := NewSQLiteCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveDocument(ctx, []byte(`{}`), false))
	require.NoError(t, repo.MarkSynced(ctx, "abc123", "fp1", testutil.FixedTime, nil, true))
	require.NoError(t, repo.SaveDocument(ctx, []byte(`{"theme":"light"}`), true))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.RemoteSHA)
	assert.Equal(t, "fp1", got.SyncedFingerprint)
	assert.True(t, got.Dirty)
	require.NotNil(t, got.LastSyncedAt)
	assert.True(t, got.LastSyncedAt.Equal(testutil.FixedTime))
}

func TestCacheRepo_MarkSyncedClearDirty(t *testing.T) {
	tests := []struct {
		name       string
		clearDirty bool
		wantDirty  bool
	}{
		{"clears when nothing changed", true, false},
		{"keeps pending edits", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewSQLiteCacheRepo(testutil.NewTestDB(t))
			ctx := context.Background()
			modified := testutil.FixedTime.Add(-time.Hour)

			require.NoError(t, repo.SaveDocument(ctx, []byte(`{}`), true))
			require.NoError(t, repo.MarkSynced(ctx, "sha", "fp", testutil.FixedTime, &modified, tt.clearDirty))

			got, err := repo.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDirty, got.Dirty)
			require.NotNil(t, got.LastRemoteModified)
			assert.True(t, got.LastRemoteModified.Equal(modified))
		})
	}
}

func TestCacheRepo_MarkSyncedWithoutDocument(t *testing.T) {
	repo := NewSQLiteCacheRepo(testutil.NewTestDB(t))

	err := repo.MarkSynced(context.Background(), "sha", "fp", testutil.FixedTime, nil, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheRepo_Clear(t *testing.T) {
	repo := NewSQLiteCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveDocument(ctx, []byte(`{}`), true))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheRepo_DriverErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	boom := errors.New("disk I/O error")
	repo := NewSQLiteCacheRepo(conn)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT document, dirty")).WillReturnError(boom)
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_data_cache")).
		WithArgs(`{}`, 1, sqlmock.AnyArg()).
		WillReturnError(boom)
	assert.ErrorIs(t, repo.SaveDocument(ctx, []byte(`{}`), true), boom)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_data_cache")).
		WillReturnResult(sqlmock.NewErrorResult(boom))
	assert.ErrorIs(t, repo.MarkSynced(ctx, "sha", "fp", testutil.FixedTime, nil, true), boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
