package readiness

import (
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Criteria narrows the catalog view. Zero-value fields match everything.
type Criteria struct {
	Search    string
	Status    domain.Progress
	Category  string
	Readiness domain.Readiness
}

// Group is a tier and the subjects of it that matched.
type Group struct {
	Tier     *domain.Tier
	Subjects []*domain.Subject
}

// Filter returns the matching subjects grouped by tier in graph order.
// Tiers with no match are dropped.
func Filter(g *domain.Graph, progress Lookup, c Criteria) []Group {
	needle := strings.ToLower(strings.TrimSpace(c.Search))
	var out []Group
	for _, t := range g.Tiers {
		if c.Category != "" && t.Category != c.Category {
			continue
		}
		grp := Group{Tier: t}
		for _, s := range t.Subjects {
			if c.Status != "" && progress.Get(s.ID) != c.Status {
				continue
			}
			if c.Readiness != "" && Calculate(s, progress) != c.Readiness {
				continue
			}
			if needle != "" && !matches(s, needle) {
				continue
			}
			grp.Subjects = append(grp.Subjects, s)
		}
		if len(grp.Subjects) > 0 {
			out = append(out, grp)
		}
	}
	return out
}

func matches(s *domain.Subject, needle string) bool {
	for _, field := range []string{s.ID, s.Name, s.Summary, s.GoalText()} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
