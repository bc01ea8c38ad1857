// Package tracker holds the in-memory learning session and every
// operation that changes it.
package tracker

import (
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/engine"
	"github.com/alexanderramin/syllabus/internal/readiness"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// Tracker owns the working graph, the progress map and the theme of one
// session. It is not safe for concurrent use; callers serialize access.
//
// Every mutator fails with ErrReadOnly before looking at its arguments
// when the session is not the owner, and validates its input before
// changing anything, so a failed call leaves the session untouched.
type Tracker struct {
	graph    *domain.Graph
	progress domain.ProgressMap
	theme    string
	owner    bool
	dirty    bool
	now      func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for project ids.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New starts a session over g. The tracker takes ownership of g and of
// progress; callers must not modify them afterwards.
func New(g *domain.Graph, progress domain.ProgressMap, theme string, owner bool, opts ...Option) *Tracker {
	if progress == nil {
		progress = domain.ProgressMap{}
	}
	t := &Tracker{
		graph:    g,
		progress: progress,
		theme:    domain.CoalesceStr(theme, domain.ThemeDark),
		owner:    owner,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Graph returns the working graph. Callers must treat it as read-only.
func (t *Tracker) Graph() *domain.Graph { return t.graph }

// Progress returns the progress map. Callers must treat it as read-only.
func (t *Tracker) Progress() domain.ProgressMap { return t.progress }

func (t *Tracker) Theme() string { return t.theme }

// IsOwner reports whether mutations are allowed.
func (t *Tracker) IsOwner() bool { return t.owner }

// Dirty reports whether the session changed since the last ClearDirty.
func (t *Tracker) Dirty() bool { return t.dirty }

func (t *Tracker) ClearDirty() { t.dirty = false }

func (t *Tracker) markDirty() { t.dirty = true }

// Savepoint is a copy of the session taken before a batch of mutations.
type Savepoint struct {
	graph    *domain.Graph
	progress domain.ProgressMap
	theme    string
	dirty    bool
}

// Save captures the current state so a failed batch can be undone.
func (t *Tracker) Save() Savepoint {
	return Savepoint{
		graph:    t.graph.Clone(),
		progress: t.progress.Clone(),
		theme:    t.theme,
		dirty:    t.dirty,
	}
}

// Rollback restores the state captured by Save. A savepoint is used at
// most once.
func (t *Tracker) Rollback(sp Savepoint) {
	t.graph = sp.graph
	t.progress = sp.progress
	t.theme = sp.theme
	t.dirty = sp.dirty
}

// Subject looks up a subject by id.
func (t *Tracker) Subject(id string) (*domain.Subject, error) {
	s := t.graph.Subject(id)
	if s == nil {
		return nil, fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	return s, nil
}

// Readiness evaluates a subject against the current progress.
func (t *Tracker) Readiness(id string) (domain.Readiness, error) {
	s, err := t.Subject(id)
	if err != nil {
		return "", err
	}
	return readiness.Calculate(s, t.progress), nil
}

// Snapshot extracts the persistable document for the current state. It is
// the only way session state reaches storage.
func (t *Tracker) Snapshot(now time.Time) *userdata.Document {
	return engine.Extract(t.graph, t.progress, t.theme, now)
}

// Replace swaps in a freshly merged graph with its progress and theme,
// as done by import and by applying a newer remote copy.
func (t *Tracker) Replace(g *domain.Graph, progress domain.ProgressMap, theme string) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.load(g, progress, theme)
	t.markDirty()
	return nil
}

// Load swaps in state that came from storage. Unlike Replace it does not
// require ownership and leaves the dirty flag alone.
func (t *Tracker) Load(g *domain.Graph, progress domain.ProgressMap, theme string) {
	t.load(g, progress, theme)
}

func (t *Tracker) load(g *domain.Graph, progress domain.ProgressMap, theme string) {
	t.graph = g
	t.progress = progress.Clone()
	t.theme = domain.CoalesceStr(theme, domain.ThemeDark)
}

// Reset replaces the graph with g (normally the bare catalog) and clears
// all progress.
func (t *Tracker) Reset(g *domain.Graph) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.graph = g
	t.progress = domain.ProgressMap{}
	t.markDirty()
	return nil
}

// SetTheme switches between the light and dark theme.
func (t *Tracker) SetTheme(theme string) error {
	if err := t.writable(); err != nil {
		return err
	}
	if theme != domain.ThemeDark && theme != domain.ThemeLight {
		return fmt.Errorf("%w: theme %q (want light or dark)", domain.ErrInvalidValue, theme)
	}
	if theme != t.theme {
		t.theme = theme
		t.markDirty()
	}
	return nil
}

func (t *Tracker) writable() error {
	if !t.owner {
		return ErrReadOnly
	}
	return nil
}
