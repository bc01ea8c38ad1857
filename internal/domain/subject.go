package domain

// Subject is a learnable unit in the curriculum graph. Catalog subjects
// come from the shipped catalog; custom subjects are user-defined.
type Subject struct {
	ID        string
	Name      string
	Prereq    []string
	Coreq     []string
	Soft      []string
	Summary   string
	Goal      *string
	Resources Resources
	Projects  []Project
	IsCustom  bool
}

// GoalText returns the goal or "" when none is set.
func (s *Subject) GoalText() string {
	if s.Goal == nil {
		return ""
	}
	return *s.Goal
}

// Project returns the project at index i.
func (s *Subject) Project(i int) (*Project, bool) {
	if i < 0 || i >= len(s.Projects) {
		return nil, false
	}
	return &s.Projects[i], true
}

// HasProjectID reports whether a project with the given id is attached.
func (s *Subject) HasProjectID(id string) bool {
	for _, p := range s.Projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of s.
func (s *Subject) Clone() *Subject {
	c := *s
	c.Prereq = CloneStrings(s.Prereq)
	c.Coreq = CloneStrings(s.Coreq)
	c.Soft = CloneStrings(s.Soft)
	c.Goal = CloneStrPtr(s.Goal)
	c.Resources = s.Resources.Clone()
	c.Projects = CloneProjects(s.Projects)
	return &c
}
