// Package engine converts between the catalog plus user data and the
// working curriculum graph.
package engine

import (
	"github.com/alexanderramin/syllabus/internal/catalog"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/userdata"
)

// Report lists user data entries that Merge could not apply.
type Report struct {
	// IgnoredOverlays names overlays whose subject is not in the catalog.
	IgnoredOverlays []string
	// SkippedSubjects names custom subjects whose id is already taken.
	SkippedSubjects []string
}

// Clean reports whether every entry was applied.
func (r Report) Clean() bool {
	return len(r.IgnoredOverlays) == 0 && len(r.SkippedSubjects) == 0
}

// Merge builds the working graph from the catalog and optional user data.
// Neither input is modified and the result shares no memory with them.
func Merge(cat *catalog.Catalog, doc *userdata.Document) *domain.Graph {
	g, _ := MergeWithReport(cat, doc)
	return g
}

// MergeWithReport is Merge plus the list of entries that were dropped.
func MergeWithReport(cat *catalog.Catalog, doc *userdata.Document) (*domain.Graph, Report) {
	var report Report
	g := fromCatalog(cat)
	if doc == nil {
		return g, report
	}

	for _, o := range doc.Overlays {
		s := g.Subject(o.SubjectID)
		if s == nil || s.IsCustom {
			report.IgnoredOverlays = append(report.IgnoredOverlays, o.SubjectID)
			continue
		}
		// An empty goal is the same as no goal.
		if o.Goal != nil && *o.Goal != "" {
			s.Goal = domain.CloneStrPtr(o.Goal)
		}
		if o.Resources != nil {
			s.Resources = o.Resources.Clone()
		}
		if o.Projects != nil {
			s.Projects = domain.CloneProjects(*o.Projects)
		}
	}

	for _, ct := range doc.CustomTiers {
		if g.Tier(ct.Name) != nil {
			continue
		}
		g.AddTier(&domain.Tier{
			Name:     ct.Name,
			Category: domain.CoalesceStr(ct.Category, domain.CustomCategory),
			Order:    domain.CoalesceInt(ct.Order, domain.CustomTierOrder),
			Subjects: []*domain.Subject{},
		})
	}

	for _, def := range doc.CustomSubjects {
		if g.Has(def.ID) {
			report.SkippedSubjects = append(report.SkippedSubjects, def.ID)
			continue
		}
		tier := g.EnsureCustomTier(domain.CoalesceStr(def.Tier, domain.DefaultCustomTier))
		tier.Subjects = append(tier.Subjects, &domain.Subject{
			ID:        def.ID,
			Name:      def.Name,
			Prereq:    domain.CloneStrings(def.Prereq),
			Coreq:     domain.CloneStrings(def.Coreq),
			Soft:      domain.CloneStrings(def.Soft),
			Summary:   def.Summary,
			Goal:      domain.CloneStrPtr(def.Goal),
			Resources: def.Resources.Clone(),
			Projects:  domain.CloneProjects(def.Projects),
			IsCustom:  true,
		})
	}
	return g, report
}

func fromCatalog(cat *catalog.Catalog) *domain.Graph {
	g := domain.NewGraph()
	if cat == nil {
		return g
	}
	for _, td := range cat.Tiers {
		t := &domain.Tier{
			Name:     td.Name,
			Category: td.Category,
			Order:    td.Order,
			Subjects: make([]*domain.Subject, 0, len(td.Subjects)),
		}
		for _, sd := range td.Subjects {
			t.Subjects = append(t.Subjects, &domain.Subject{
				ID:        sd.ID,
				Name:      sd.Name,
				Prereq:    domain.CloneStrings(sd.Prereq),
				Coreq:     domain.CloneStrings(sd.Coreq),
				Soft:      domain.CloneStrings(sd.Soft),
				Summary:   sd.Summary,
				Resources: domain.Resources{},
				Projects:  []domain.Project{},
			})
		}
		g.AddTier(t)
	}
	return g
}
