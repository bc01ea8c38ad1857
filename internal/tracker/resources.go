package tracker

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// AddSubjectResource appends a resource to a subject.
func (t *Tracker) AddSubjectResource(id string, r domain.Resource) error {
	if err := t.writable(); err != nil {
		return err
	}
	s, err := t.Subject(id)
	if err != nil {
		return err
	}
	if err := checkResource(r); err != nil {
		return err
	}
	s.Resources = append(s.Resources, r)
	t.markDirty()
	return nil
}

// RemoveSubjectResource drops the resource at index from a subject.
func (t *Tracker) RemoveSubjectResource(id string, index int) error {
	if err := t.writable(); err != nil {
		return err
	}
	s, err := t.Subject(id)
	if err != nil {
		return err
	}
	rs, err := without(s.Resources, index)
	if err != nil {
		return fmt.Errorf("subject %q: %w", id, err)
	}
	s.Resources = rs
	t.markDirty()
	return nil
}

// AddProjectResource appends a resource to a project.
func (t *Tracker) AddProjectResource(ref domain.ProjectRef, r domain.Resource) error {
	if err := t.writable(); err != nil {
		return err
	}
	p, err := t.project(ref)
	if err != nil {
		return err
	}
	if err := checkResource(r); err != nil {
		return err
	}
	p.Resources = append(p.Resources, r)
	t.markDirty()
	return nil
}

// RemoveProjectResource drops the resource at index from a project.
func (t *Tracker) RemoveProjectResource(ref domain.ProjectRef, index int) error {
	if err := t.writable(); err != nil {
		return err
	}
	p, err := t.project(ref)
	if err != nil {
		return err
	}
	rs, err := without(p.Resources, index)
	if err != nil {
		return fmt.Errorf("project %s: %w", ref, err)
	}
	p.Resources = rs
	t.markDirty()
	return nil
}

func checkResource(r domain.Resource) error {
	if r == nil || r.Title() == "" {
		return fmt.Errorf("%w: resource label is required", domain.ErrValidation)
	}
	if link, ok := r.(domain.LinkResource); ok && link.URL == "" {
		return fmt.Errorf("%w: link resource needs a url", domain.ErrValidation)
	}
	return nil
}

func checkResources(rs domain.Resources) error {
	for i, r := range rs {
		if err := checkResource(r); err != nil {
			return fmt.Errorf("resource %d: %w", i+1, err)
		}
	}
	return nil
}

func without(rs domain.Resources, index int) (domain.Resources, error) {
	if index < 0 || index >= len(rs) {
		return nil, fmt.Errorf("resource %d: %w", index, ErrNotFound)
	}
	out := make(domain.Resources, 0, len(rs)-1)
	out = append(out, rs[:index]...)
	return append(out, rs[index+1:]...), nil
}
