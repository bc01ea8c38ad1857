// Package syncer keeps the local user data in step with the remote
// store: it tracks unsynced edits, resolves conflicts by last write,
// and saves in the background.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/storage"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// ErrOffline is returned by Sync when no remote store is configured.
var ErrOffline = errors.New("no remote store configured")

// Options configures a Syncer.
type Options struct {
	// Remote is nil for offline and read-only sessions.
	Remote storage.Store
	Cache  *storage.CacheStore

	// Snapshot returns the current local document. Apply replaces local
	// state with a document pulled from the remote. Both are called with
	// Guard held.
	Snapshot func() *userdata.Document
	Apply    func(*userdata.Document)
	Guard    sync.Locker

	Interval time.Duration
	Observer Observer
	Now      func() time.Time
}

// Result describes a completed sync.
type Result struct {
	Outcome repository.SyncOutcome
	SHA     string
}

// Syncer moves the local document to and from the remote store. Local
// edits are counted by MarkDirty; a sync clears them only when no edit
// arrived while it was in flight.
type Syncer struct {
	remote   storage.Store
	cache    *storage.CacheStore
	snapshot func() *userdata.Document
	apply    func(*userdata.Document)
	guard    sync.Locker
	interval time.Duration
	observer Observer
	now      func() time.Time

	gen atomic.Uint64
	run sync.Mutex // one sync at a time

	mu          sync.Mutex
	syncedGen   uint64
	sha         string
	fingerprint string
	lastSynced  *time.Time
	lastErr     error

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(opts Options) *Syncer {
	s := &Syncer{
		remote:   opts.Remote,
		cache:    opts.Cache,
		snapshot: opts.Snapshot,
		apply:    opts.Apply,
		guard:    opts.Guard,
		interval: opts.Interval,
		observer: opts.Observer,
		now:      opts.Now,
	}
	if s.guard == nil {
		s.guard = &sync.Mutex{}
	}
	if s.apply == nil {
		s.apply = func(*userdata.Document) {}
	}
	if s.observer == nil {
		s.observer = NoopObserver{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Restore picks up the bookkeeping of a previous run from the cache.
func (s *Syncer) Restore(c *storage.Cached) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sha = c.SHA
	s.fingerprint = c.Fingerprint
	s.lastSynced = c.LastSyncedAt
	if c.Dirty && s.gen.Load() == s.syncedGen {
		s.gen.Add(1)
	}
}

// MarkDirty records a local edit that the remote has not seen.
func (s *Syncer) MarkDirty() {
	s.gen.Add(1)
}

// Dirty reports whether there are local edits not yet synced.
func (s *Syncer) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Load() != s.syncedGen
}

// Online reports whether a remote store is configured.
func (s *Syncer) Online() bool {
	return s.remote != nil
}

type plan struct {
	outcome        repository.SyncOutcome
	sha            string
	fingerprint    string
	doc            *userdata.Document // what the remote holds afterwards
	pulled         bool
	remoteModified *time.Time
	record         bool // the cache learns a new remote state
}

// Sync exchanges the local document with the remote once. A stale
// version token surfaces as storage.ErrStaleWrite and leaves local
// edits pending.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	if s.remote == nil {
		return nil, ErrOffline
	}
	s.run.Lock()
	defer s.run.Unlock()

	start := s.now()
	s.guard.Lock()
	gen := s.gen.Load()
	local := s.snapshot()
	s.guard.Unlock()

	s.mu.Lock()
	dirty := gen != s.syncedGen
	known := &plan{sha: s.sha, fingerprint: s.fingerprint}
	s.mu.Unlock()

	p, err := s.exchange(ctx, local, dirty, known)
	if err == nil {
		err = s.commit(ctx, start, gen, p)
	}
	if err != nil {
		outcome := repository.SyncFailed
		if errors.Is(err, storage.ErrStaleWrite) {
			outcome = repository.SyncConflict
		}
		p = &plan{outcome: outcome}
		rec := s.record(start, p, err)
		if logErr := s.cache.RecordAttempt(ctx, rec); logErr != nil {
			err = errors.Join(err, fmt.Errorf("recording sync attempt: %w", logErr))
		}
	}

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.observer.OnSync(ctx, SyncEvent{Outcome: p.outcome, SHA: p.sha, Duration: s.now().Sub(start), Err: err})

	if err != nil {
		return nil, err
	}
	return &Result{Outcome: p.outcome, SHA: p.sha}, nil
}

// exchange decides the outcome and performs the remote write, if any.
// known carries the remote state recorded by the last sync.
func (s *Syncer) exchange(ctx context.Context, local *userdata.Document, dirty bool, known *plan) (*plan, error) {
	remote, err := s.remote.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		remote, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	localFP, err := userdata.Fingerprint(local)
	if err != nil {
		return nil, err
	}

	if remote != nil {
		remoteFP := known.fingerprint
		if remote.SHA != known.sha || remoteFP == "" {
			if remoteFP, err = userdata.Fingerprint(remote.Doc); err != nil {
				return nil, err
			}
		}
		modified := remote.Doc.LastModified
		p := &plan{
			outcome:        repository.SyncUnchanged,
			sha:            remote.SHA,
			fingerprint:    remoteFP,
			remoteModified: &modified,
			record:         true,
		}
		if remoteFP == localFP {
			p.doc = local
			return p, nil
		}
		if !dirty || userdata.ResolveConflict(remote.Doc, local) == remote.Doc {
			p.outcome = repository.SyncPulled
			p.doc = remote.Doc
			p.pulled = true
			return p, nil
		}
	} else if !dirty {
		return &plan{outcome: repository.SyncUnchanged}, nil
	}

	var sha string
	if remote != nil {
		sha = remote.SHA
	}
	newSHA, err := s.remote.Save(ctx, local, sha)
	if err != nil {
		return nil, err
	}
	modified := local.LastModified
	return &plan{
		outcome:        repository.SyncPushed,
		sha:            newSHA,
		fingerprint:    localFP,
		doc:            local,
		remoteModified: &modified,
		record:         true,
	}, nil
}

// commit stores the new remote state and applies a pulled document.
// The guard is held so no edit can land between the generation check
// and the cache write.
func (s *Syncer) commit(ctx context.Context, start time.Time, gen uint64, p *plan) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	current := s.gen.Load() == gen
	rec := s.record(start, p, nil)
	if !p.record {
		if err := s.cache.RecordAttempt(ctx, rec); err != nil {
			return fmt.Errorf("recording sync attempt: %w", err)
		}
		s.markSynced(gen, nil)
		return nil
	}

	state := storage.SyncState{
		SHA:            p.sha,
		Fingerprint:    p.fingerprint,
		At:             s.now(),
		RemoteModified: p.remoteModified,
		ClearDirty:     current,
	}
	// An edit made while in flight is already cached and must not be
	// overwritten.
	if current {
		state.Doc = p.doc
	}
	if err := s.cache.RecordSync(ctx, state, rec); err != nil {
		return fmt.Errorf("recording sync: %w", err)
	}
	if p.pulled && current {
		s.apply(p.doc.Clone())
	}
	s.markSynced(gen, &state)
	return nil
}

func (s *Syncer) markSynced(gen uint64, state *storage.SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncedGen = gen
	if state != nil {
		s.sha = state.SHA
		s.fingerprint = state.Fingerprint
		at := state.At
		s.lastSynced = &at
	}
}

func (s *Syncer) record(start time.Time, p *plan, err error) *repository.SyncRecord {
	rec := &repository.SyncRecord{
		StartedAt: start,
		Duration:  s.now().Sub(start),
		Outcome:   p.outcome,
		RemoteSHA: p.sha,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}

// Start runs a background loop that syncs every interval while there
// are pending edits. It is a no-op when offline or already running.
func (s *Syncer) Start(ctx context.Context) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.remote == nil || s.interval <= 0 || s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

func (s *Syncer) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.Dirty() {
				// Failures are observed and retried on the next tick.
				_, _ = s.Sync(ctx)
			}
		}
	}
}

// Stop cancels the background loop and waits for it to exit.
func (s *Syncer) Stop() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// Flush saves pending edits, if any. Callers at teardown log the error
// rather than surface it.
func (s *Syncer) Flush(ctx context.Context) error {
	if s.remote == nil || !s.Dirty() {
		return nil
	}
	_, err := s.Sync(ctx)
	return err
}

// Status reports the sync state for display.
func (s *Syncer) Status() Status {
	if s.remote == nil {
		return Status{State: StateOffline, Message: "Not signed in"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{LastSynced: s.lastSynced}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	switch {
	case s.gen.Load() != s.syncedGen:
		st.State, st.Message = StateDirty, "Unsaved changes"
	case s.lastSynced != nil:
		st.State, st.Message = StateSynced, syncedMessage(s.now(), *s.lastSynced)
	default:
		st.State, st.Message = StateUnknown, "Unknown"
	}
	return st
}
