// Package app is the controller that owns a tracking session: it loads
// user data at startup, serializes mutations, persists them to the local
// cache and hands them to the syncer.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/syllabus/internal/catalog"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/engine"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/storage"
	"github.com/alexanderramin/syllabus/internal/syncer"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// Source tells where the session's user data came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceEmpty  Source = "empty"
)

// Options configures Open.
type Options struct {
	Catalog *catalog.Catalog
	// Remote is nil when running offline.
	Remote storage.Store
	Cache  *storage.CacheStore
	Owner  bool
	// Theme applies when no user data exists yet.
	Theme string

	AutoSync     bool
	Interval     time.Duration
	SyncOnExit   bool
	Observer     Observer
	SyncObserver syncer.Observer
	Now          func() time.Time
	// Warnings found while wiring the session, reported with its own.
	Warnings []string
}

// App is a running session. All methods are safe for concurrent use.
type App struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	tracker  *tracker.Tracker
	cache    *storage.CacheStore
	syncer   *syncer.Syncer
	owner    bool
	online   bool
	flush    bool
	observer Observer
	now      func() time.Time

	// modified is the lastModified stamp of the current state.
	modified time.Time
	source   Source
	warnings []string
}

// Open starts a session. A missing or unreachable remote, or an
// unreadable cache, degrades to the next source and never fails the
// open; the catalog must already be validated.
func Open(ctx context.Context, opts Options) (*App, error) {
	if opts.Catalog == nil {
		return nil, errors.New("open: catalog is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("open: cache is required")
	}
	a := &App{
		catalog:  opts.Catalog,
		cache:    opts.Cache,
		owner:    opts.Owner,
		online:   opts.Remote != nil,
		flush:    opts.SyncOnExit,
		observer: observerOrNoop(opts.Observer),
		now:      opts.Now,
		warnings: append([]string(nil), opts.Warnings...),
	}
	if a.now == nil {
		a.now = time.Now
	}
	start := a.now()

	doc, cached, fallback := a.loadUserData(ctx, opts.Remote)
	if doc != nil {
		if w := userdata.CheckSchema(doc); w != nil {
			a.warnings = append(a.warnings, "user data "+w.Error())
		}
	}

	graph, report := engine.MergeWithReport(a.catalog, doc)
	a.noteReport(report)
	t := tracker.New(graph, nil, opts.Theme, opts.Owner, tracker.WithClock(a.now))
	if doc != nil {
		t.Load(graph, doc.Progress, domain.CoalesceStr(doc.Theme, opts.Theme))
		a.modified = doc.LastModified
	}
	a.tracker = t

	a.syncer = syncer.New(syncer.Options{
		Remote:   opts.Remote,
		Cache:    opts.Cache,
		Snapshot: a.snapshotLocked,
		Apply:    a.applyLocked,
		Guard:    &a.mu,
		Interval: opts.Interval,
		Observer: opts.SyncObserver,
		Now:      a.now,
	})
	a.syncer.Restore(cached)
	if opts.AutoSync {
		a.syncer.Start(context.WithoutCancel(ctx))
	}

	fields := map[string]any{
		"source":   string(a.source),
		"owner":    a.owner,
		"subjects": graph.Len(),
	}
	if fallback != nil {
		fields["fallback"] = fallback.Error()
	}
	a.observe(ctx, "open", start, nil, fields)
	return a, nil
}

// loadUserData picks the session's starting document: the remote copy,
// unless the cache holds newer unsynced edits, then the cache, then
// nothing. The returned error only explains a fallback.
func (a *App) loadUserData(ctx context.Context, remote storage.Store) (*userdata.Document, *storage.Cached, error) {
	cached, err := a.cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.warnings = append(a.warnings, fmt.Sprintf("ignoring local cache: %v", err))
		}
		cached = nil
	}

	var fallback error
	if remote != nil {
		r, err := remote.Load(ctx)
		switch {
		case err == nil:
			if cached != nil && cached.Dirty && userdata.ResolveConflict(r.Doc, cached.Doc) == cached.Doc {
				a.source = SourceCache
				return cached.Doc, cached, nil
			}
			a.source = SourceRemote
			if a.owner {
				if err := a.cache.Put(ctx, r.Doc, false); err != nil {
					a.warnings = append(a.warnings, fmt.Sprintf("caching remote data: %v", err))
				}
				// Unsynced edits lost to a newer remote copy are gone.
				if cached != nil {
					cached.Dirty = false
				}
			}
			return r.Doc, cached, nil
		case errors.Is(err, storage.ErrNotFound):
		default:
			fallback = err
			a.warnings = append(a.warnings, fmt.Sprintf("remote unavailable, using local data: %v", err))
		}
	}

	if cached != nil {
		a.source = SourceCache
		return cached.Doc, cached, fallback
	}
	a.source = SourceEmpty
	return nil, nil, fallback
}

func (a *App) noteReport(r engine.Report) {
	for _, id := range r.IgnoredOverlays {
		a.warnings = append(a.warnings, fmt.Sprintf("ignoring customization of unknown subject %q", id))
	}
	for _, id := range r.SkippedSubjects {
		a.warnings = append(a.warnings, fmt.Sprintf("skipping custom subject %q: id already in use", id))
	}
}

// snapshotLocked extracts the current document. Callers hold a.mu.
func (a *App) snapshotLocked() *userdata.Document {
	return a.tracker.Snapshot(a.modified)
}

// applyLocked replaces the session with a pulled document. Callers hold
// a.mu.
func (a *App) applyLocked(doc *userdata.Document) {
	graph, report := engine.MergeWithReport(a.catalog, doc)
	a.noteReport(report)
	a.tracker.Load(graph, doc.Progress, doc.Theme)
	a.modified = doc.LastModified
}

// Do runs fn against the session as one unit. If fn succeeds its changes
// are written to the local cache and queued for the next sync; if it
// fails the session is rolled back to where it was before fn ran.
func (a *App) Do(ctx context.Context, name string, fn func(t *tracker.Tracker) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := a.now()
	sp := a.tracker.Save()
	if err := fn(a.tracker); err != nil {
		a.tracker.Rollback(sp)
		a.observe(ctx, name, start, err, map[string]any{"changed": false})
		return err
	}
	var err error
	changed := a.tracker.Dirty()
	if changed {
		a.modified = a.now()
		a.tracker.ClearDirty()
		a.syncer.MarkDirty()
		if putErr := a.cache.Put(ctx, a.snapshotLocked(), true); putErr != nil {
			err = fmt.Errorf("saving to local cache: %w", putErr)
		}
	}
	a.observe(ctx, name, start, err, map[string]any{"changed": changed})
	return err
}

// View runs fn with the session locked. fn must not modify it.
func (a *App) View(fn func(t *tracker.Tracker) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.tracker)
}

// Snapshot returns the current user data document.
func (a *App) Snapshot() *userdata.Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Sync exchanges data with the remote now.
func (a *App) Sync(ctx context.Context) (*syncer.Result, error) {
	return a.syncer.Sync(ctx)
}

// SyncStatus reports the state shown in the status line.
func (a *App) SyncStatus() syncer.Status {
	if a.online && !a.owner {
		return syncer.Status{State: syncer.StateOffline, Message: "Read-only"}
	}
	return a.syncer.Status()
}

// SyncHistory lists the newest sync attempts.
func (a *App) SyncHistory(ctx context.Context, limit int) ([]*repository.SyncRecord, error) {
	return a.cache.History(ctx, limit)
}

// Catalog returns the base catalog.
func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Source tells where the session's data was loaded from.
func (a *App) Source() Source { return a.source }

// IsOwner reports whether the session may mutate.
func (a *App) IsOwner() bool { return a.owner }

// Warnings lists non-fatal problems met while loading.
func (a *App) Warnings() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.warnings...)
}

// Close stops background sync and, when configured, makes a last
// attempt to save pending edits. That attempt's failure is only logged.
func (a *App) Close(ctx context.Context) {
	a.syncer.Stop()
	if !a.flush || !a.owner {
		return
	}
	start := a.now()
	err := a.syncer.Flush(ctx)
	if errors.Is(err, syncer.ErrOffline) {
		err = nil
	}
	a.observe(ctx, "flush", start, err, nil)
}
