package tracker

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// AddProject attaches a new project to a subject. The id is derived from
// the subject id and the current time and is unique within the subject.
func (t *Tracker) AddProject(subjectID string, in domain.ProjectInput) (domain.Project, error) {
	if err := t.writable(); err != nil {
		return domain.Project{}, err
	}
	s, err := t.Subject(subjectID)
	if err != nil {
		return domain.Project{}, err
	}
	in.Normalize()
	if err := domain.Validate(in); err != nil {
		return domain.Project{}, err
	}
	if err := checkResources(in.Resources); err != nil {
		return domain.Project{}, err
	}

	base := fmt.Sprintf("%s-project-%d", subjectID, t.now().UnixMilli())
	id := base
	for n := 2; s.HasProjectID(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	s.Projects = append(s.Projects, domain.Project{
		ID:        id,
		Name:      in.Name,
		Goal:      in.Goal,
		Resources: in.Resources.Clone(),
		Status:    domain.ProjectNotStarted,
	})
	t.markDirty()
	return s.Projects[len(s.Projects)-1], nil
}

// UpdateProject replaces the name, goal and resources of a project. Its
// id and status are kept.
func (t *Tracker) UpdateProject(ref domain.ProjectRef, in domain.ProjectInput) error {
	if err := t.writable(); err != nil {
		return err
	}
	p, err := t.project(ref)
	if err != nil {
		return err
	}
	in.Normalize()
	if err := domain.Validate(in); err != nil {
		return err
	}
	if err := checkResources(in.Resources); err != nil {
		return err
	}
	p.Name = in.Name
	p.Goal = in.Goal
	if in.Resources != nil {
		p.Resources = in.Resources.Clone()
	}
	t.markDirty()
	return nil
}

// RemoveProject detaches a project from its subject.
func (t *Tracker) RemoveProject(ref domain.ProjectRef) error {
	if err := t.writable(); err != nil {
		return err
	}
	if _, err := t.project(ref); err != nil {
		return err
	}
	s := t.graph.Subject(ref.SubjectID)
	s.Projects = append(s.Projects[:ref.Index], s.Projects[ref.Index+1:]...)
	t.markDirty()
	return nil
}

func (t *Tracker) project(ref domain.ProjectRef) (*domain.Project, error) {
	s, err := t.Subject(ref.SubjectID)
	if err != nil {
		return nil, err
	}
	p, ok := s.Project(ref.Index)
	if !ok {
		return nil, fmt.Errorf("project %s: %w", ref, ErrNotFound)
	}
	return p, nil
}
