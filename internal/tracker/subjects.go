package tracker

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/readiness"
)

// CreateCustomSubject adds a user-defined subject to the named tier,
// creating the tier as a custom tier when it does not exist yet.
func (t *Tracker) CreateCustomSubject(in domain.NewSubjectInput) (*domain.Subject, error) {
	if err := t.writable(); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	if t.graph.Has(in.ID) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, in.ID)
	}

	s := &domain.Subject{
		ID:        in.ID,
		Name:      in.Name,
		Prereq:    domain.CloneStrings(in.Prereq),
		Coreq:     domain.CloneStrings(in.Coreq),
		Soft:      domain.CloneStrings(in.Soft),
		Summary:   in.Summary,
		Resources: domain.Resources{},
		Projects:  []domain.Project{},
		IsCustom:  true,
	}
	if in.Goal != "" {
		s.Goal = domain.StrPtr(in.Goal)
	}
	tier := t.graph.EnsureCustomTier(in.Tier)
	tier.Subjects = append(tier.Subjects, s)
	t.progress[s.ID] = domain.ProgressEmpty
	t.markDirty()
	return s, nil
}

// DeleteCustomSubject removes a custom subject with its projects and
// progress. An emptied custom tier is removed too. References to the
// subject in other subjects are left in place and now read as empty;
// the subjects holding them are returned so the caller can warn.
func (t *Tracker) DeleteCustomSubject(id string) ([]*domain.Subject, error) {
	if err := t.writable(); err != nil {
		return nil, err
	}
	s, tier := t.graph.Locate(id)
	if s == nil {
		return nil, fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	if !s.IsCustom {
		return nil, fmt.Errorf("subject %q: %w", id, ErrNotCustom)
	}

	dependents := readiness.Dependents(t.graph, id)
	tier.RemoveSubject(id)
	if len(tier.Subjects) == 0 && tier.IsCustom() {
		t.graph.RemoveTier(tier.Name)
	}
	delete(t.progress, id)
	t.markDirty()
	return dependents, nil
}

// SetGoal sets the learning goal of any subject. An empty goal clears it.
func (t *Tracker) SetGoal(id, goal string) error {
	if err := t.writable(); err != nil {
		return err
	}
	s, err := t.Subject(id)
	if err != nil {
		return err
	}
	goal = strings.TrimSpace(goal)
	if goal == "" {
		s.Goal = nil
	} else {
		s.Goal = domain.StrPtr(goal)
	}
	t.markDirty()
	return nil
}

// SetSummary replaces the summary of a custom subject. Catalog summaries
// are fixed.
func (t *Tracker) SetSummary(id, summary string) error {
	if err := t.writable(); err != nil {
		return err
	}
	s, err := t.Subject(id)
	if err != nil {
		return err
	}
	if !s.IsCustom {
		return fmt.Errorf("subject %q: %w", id, ErrNotCustom)
	}
	s.Summary = strings.TrimSpace(summary)
	t.markDirty()
	return nil
}
