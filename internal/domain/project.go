package domain

import "fmt"

// Project is a user-defined exercise attached to a subject.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Goal      string        `json:"goal"`
	Resources Resources     `json:"resources"`
	Status    ProjectStatus `json:"status"`
}

// Clone returns a deep copy of p.
func (p Project) Clone() Project {
	p.Resources = p.Resources.Clone()
	return p
}

// CloneProjects deep-copies ps. The result is never nil.
func CloneProjects(ps []Project) []Project {
	out := make([]Project, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// ProjectRef addresses a project by its owning subject and position.
type ProjectRef struct {
	SubjectID string
	Index     int
}

func (r ProjectRef) String() string {
	return fmt.Sprintf("%s[%d]", r.SubjectID, r.Index)
}
