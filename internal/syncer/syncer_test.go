package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/storage"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/alexanderramin/syllabus/internal/userdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory storage.Store with SHA checks.
type memStore struct {
	mu      sync.Mutex
	doc     *userdata.Document
	sha     string
	saves   int
	loadErr error
	onSave  func()
}

func (m *memStore) Load(context.Context) (*storage.Remote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.doc == nil {
		return nil, storage.ErrNotFound
	}
	return &storage.Remote{Doc: m.doc.Clone(), SHA: m.sha}, nil
}

func (m *memStore) Save(_ context.Context, doc *userdata.Document, sha string) (string, error) {
	if m.onSave != nil {
		m.onSave()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sha != m.sha {
		return "", storage.ErrStaleWrite
	}
	m.saves++
	m.doc = doc.Clone()
	m.sha = fmt.Sprintf("sha-%d", m.saves)
	return m.sha, nil
}

func (m *memStore) put(doc *userdata.Document, sha string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc, m.sha = doc, sha
}

type harness struct {
	mu     sync.Mutex
	local  *userdata.Document
	store  *memStore
	cache  *storage.CacheStore
	syncer *Syncer
}

func newHarness(t *testing.T, local *userdata.Document) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	h := &harness{local: local, store: &memStore{}}
	h.cache = storage.NewCacheStore(database, testutil.NewTestUoW(database))
	require.NoError(t, h.cache.Put(context.Background(), local, false))
	h.syncer = New(Options{
		Remote:   h.store,
		Cache:    h.cache,
		Snapshot: func() *userdata.Document { return h.local.Clone() },
		Apply:    func(d *userdata.Document) { h.local = d },
		Guard:    &h.mu,
		Interval: 10 * time.Millisecond,
		Now:      func() time.Time { return testutil.FixedTime },
	})
	return h
}

// edit changes local state the way the app controller does.
func (h *harness) edit(t *testing.T, id string, p domain.Progress, at time.Time) {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.local.Progress[id] = p
	h.local.LastModified = at
	require.NoError(t, h.cache.Put(context.Background(), h.local, true))
	h.syncer.MarkDirty()
}

func (h *harness) history(t *testing.T) []repository.SyncOutcome {
	t.Helper()
	recs, err := h.cache.History(context.Background(), 20)
	require.NoError(t, err)
	var out []repository.SyncOutcome
	for _, r := range recs {
		out = append(out, r.Outcome)
	}
	return out
}

func TestSync_PushesFirstWrite(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime)

	res, err := h.syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.SyncPushed, res.Outcome)
	assert.Equal(t, "sha-1", res.SHA)
	assert.False(t, h.syncer.Dirty())
	assert.Equal(t, domain.ProgressComplete, h.store.doc.Progress.Get("calc1"))

	cached, err := h.cache.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cached.Dirty)
	assert.Equal(t, "sha-1", cached.SHA)

	st := h.syncer.Status()
	assert.Equal(t, StateSynced, st.State)
	assert.Equal(t, "Just synced", st.Message)
}

func TestSync_PullsWhenClean(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	remote := testutil.NewDoc(testutil.WithProgress("linalg", domain.ProgressPartial))
	h.store.put(remote, "r1")

	res, err := h.syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.SyncPulled, res.Outcome)
	assert.Equal(t, domain.ProgressPartial, h.local.Progress.Get("linalg"))
	assert.Zero(t, h.store.saves)

	cached, err := h.cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressPartial, cached.Doc.Progress.Get("linalg"))
	assert.Equal(t, "r1", cached.SHA)
}

func TestSync_LastWriteWins(t *testing.T) {
	tests := []struct {
		name        string
		localAt     time.Time
		wantOutcome repository.SyncOutcome
		wantCalc1   domain.Progress
	}{
		{"local newer is pushed", testutil.FixedTime.Add(time.Hour), repository.SyncPushed, domain.ProgressComplete},
		{"remote newer replaces local", testutil.FixedTime.Add(-time.Hour), repository.SyncPulled, domain.ProgressPartial},
		{"tie keeps remote", testutil.FixedTime, repository.SyncPulled, domain.ProgressPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, testutil.NewDoc())
			h.store.put(testutil.NewDoc(testutil.WithProgress("calc1", domain.ProgressPartial)), "r1")
			h.edit(t, "calc1", domain.ProgressComplete, tt.localAt)

			res, err := h.syncer.Sync(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantCalc1, h.store.doc.Progress.Get("calc1"))
			assert.Equal(t, tt.wantCalc1, h.local.Progress.Get("calc1"))
			assert.False(t, h.syncer.Dirty())
		})
	}
}

func TestSync_StaleWriteKeepsEditsPending(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime.Add(time.Hour))
	// Someone else writes between our read and our write.
	h.store.onSave = func() {
		h.store.onSave = nil
		h.store.put(testutil.NewDoc(), "theirs")
	}

	_, err := h.syncer.Sync(context.Background())
	assert.ErrorIs(t, err, storage.ErrStaleWrite)
	assert.True(t, h.syncer.Dirty())

	cached, err := h.cache.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cached.Dirty)
	assert.Equal(t, domain.ProgressComplete, cached.Doc.Progress.Get("calc1"))
	assert.Equal(t, []repository.SyncOutcome{repository.SyncConflict}, h.history(t))

	res, err := h.syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.SyncPushed, res.Outcome)
}

func TestSync_LoadFailure(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime)
	h.store.loadErr = fmt.Errorf("loading user data: %w", storage.ErrUnavailable)

	_, err := h.syncer.Sync(context.Background())
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	st := h.syncer.Status()
	assert.Equal(t, StateDirty, st.State)
	assert.Contains(t, st.LastError, "remote unavailable")
	assert.Equal(t, []repository.SyncOutcome{repository.SyncFailed}, h.history(t))
}

func TestSync_EditDuringSyncStaysDirty(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime)
	h.store.onSave = func() {
		h.store.onSave = nil
		h.edit(t, "calc2", domain.ProgressPartial, testutil.FixedTime.Add(time.Second))
	}

	_, err := h.syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, h.syncer.Dirty())

	cached, err := h.cache.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cached.Dirty)

	_, err = h.syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, h.syncer.Dirty())
	assert.Equal(t, domain.ProgressPartial, h.store.doc.Progress.Get("calc2"))
}

func TestSync_IdenticalContentSkipsWrite(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	h.store.put(testutil.NewDoc(testutil.WithProgress("calc1", domain.ProgressComplete)), "r1")
	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime.Add(time.Hour))

	res, err := h.syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repository.SyncUnchanged, res.Outcome)
	assert.Zero(t, h.store.saves)
	assert.False(t, h.syncer.Dirty())
}

func TestSync_Offline(t *testing.T) {
	s := New(Options{})

	_, err := s.Sync(context.Background())
	assert.ErrorIs(t, err, ErrOffline)
	assert.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, StateOffline, s.Status().State)
	s.Start(context.Background())
	s.Stop()
}

func TestRestore_PendingEdits(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	synced := testutil.FixedTime.Add(-5 * time.Minute)
	h.syncer.Restore(&storage.Cached{Dirty: true, SHA: "r1", LastSyncedAt: &synced})

	assert.True(t, h.syncer.Dirty())
	assert.Equal(t, StateDirty, h.syncer.Status().State)
}

func TestStart_SyncsPendingEditsInBackground(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	h.syncer.Start(context.Background())
	defer h.syncer.Stop()

	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime)

	assert.Eventually(t, func() bool { return !h.syncer.Dirty() }, 2*time.Second, 10*time.Millisecond)
	h.syncer.Stop()
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	assert.Equal(t, 1, h.store.saves)
}

func TestFlush(t *testing.T) {
	h := newHarness(t, testutil.NewDoc())
	require.NoError(t, h.syncer.Flush(context.Background()))
	assert.Zero(t, h.store.saves)

	h.edit(t, "calc1", domain.ProgressPartial, testutil.FixedTime)
	require.NoError(t, h.syncer.Flush(context.Background()))
	assert.Equal(t, 1, h.store.saves)

	h.edit(t, "calc1", domain.ProgressComplete, testutil.FixedTime.Add(time.Minute))
	h.store.loadErr = errors.New("no route to host")
	assert.Error(t, h.syncer.Flush(context.Background()))
}

func TestSyncedMessage(t *testing.T) {
	assert.Equal(t, "Just synced", syncedMessage(testutil.FixedTime, testutil.FixedTime.Add(-30*time.Second)))
	assert.Equal(t, "Synced 3m ago", syncedMessage(testutil.FixedTime, testutil.FixedTime.Add(-3*time.Minute)))
}
