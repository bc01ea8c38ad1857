package engine

import (
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// Extract produces the minimal user data document that, merged with the
// same catalog, reproduces g. Catalog subjects only contribute the fields
// the user has set.
func Extract(g *domain.Graph, progress domain.ProgressMap, theme string, now time.Time) *userdata.Document {
	doc := userdata.Empty(theme)
	doc.Progress = progress.Clone()
	doc.LastModified = now.UTC()

	seenTiers := make(map[string]bool)
	for _, t := range g.Tiers {
		for _, s := range t.Subjects {
			if s.IsCustom {
				doc.CustomSubjects = append(doc.CustomSubjects, userdata.CustomSubjectEntry{
					ID:        s.ID,
					Tier:      t.Name,
					Name:      s.Name,
					Prereq:    domain.CloneStrings(s.Prereq),
					Coreq:     domain.CloneStrings(s.Coreq),
					Soft:      domain.CloneStrings(s.Soft),
					Summary:   s.Summary,
					Goal:      domain.CloneStrPtr(s.Goal),
					Resources: s.Resources.Clone(),
					Projects:  domain.CloneProjects(s.Projects),
				})
				if t.IsCustom() && !seenTiers[t.Name] {
					seenTiers[t.Name] = true
					doc.CustomTiers = append(doc.CustomTiers, userdata.CustomTierEntry{
						Name:     t.Name,
						Category: domain.CoalesceStr(t.Category, domain.CustomCategory),
						Order:    domain.CoalesceInt(t.Order, domain.CustomTierOrder),
					})
				}
				continue
			}
			if o, ok := overlayFor(s); ok {
				doc.Overlays = append(doc.Overlays, o)
			}
		}
	}
	return doc
}

func overlayFor(s *domain.Subject) (userdata.OverlayEntry, bool) {
	o := userdata.OverlayEntry{SubjectID: s.ID}
	if s.GoalText() != "" {
		o.Goal = domain.CloneStrPtr(s.Goal)
	}
	if len(s.Resources) > 0 {
		rs := s.Resources.Clone()
		o.Resources = &rs
	}
	if len(s.Projects) > 0 {
		ps := domain.CloneProjects(s.Projects)
		o.Projects = &ps
	}
	return o, !o.Empty()
}
