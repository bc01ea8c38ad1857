package tracker

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// SetSubjectProgress records progress for a subject. It is the only
// writer of the progress map.
func (t *Tracker) SetSubjectProgress(id string, p domain.Progress) error {
	if err := t.writable(); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("%w: progress %q", domain.ErrInvalidValue, p)
	}
	if !t.graph.Has(id) {
		return fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	t.progress[id] = p
	t.markDirty()
	return nil
}

// CycleProgress advances a subject to its next progress state and returns it.
func (t *Tracker) CycleProgress(id string) (domain.Progress, error) {
	if err := t.writable(); err != nil {
		return "", err
	}
	next := t.progress.Get(id).Next()
	if err := t.SetSubjectProgress(id, next); err != nil {
		return "", err
	}
	return next, nil
}

// CycleProjectProgress advances a project's status. Subject progress is
// not affected.
func (t *Tracker) CycleProjectProgress(ref domain.ProjectRef) (domain.ProjectStatus, error) {
	if err := t.writable(); err != nil {
		return "", err
	}
	p, err := t.project(ref)
	if err != nil {
		return "", err
	}
	p.Status = p.Status.Next()
	t.markDirty()
	return p.Status, nil
}
