package formatter

import (
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/readiness"
)

const tierBarWidth = 16

// FormatTiers renders one row per tier with its completion bar.
func FormatTiers(g *domain.Graph, progress readiness.Lookup) string {
	if len(g.Tiers) == 0 {
		return Dim("No tiers.") + "\n"
	}
	rows := make([][]string, 0, len(g.Tiers))
	for _, t := range g.Tiers {
		done, total := readiness.TierProgress(t, progress)
		name := t.Name
		if t.IsCustom() {
			name += " " + CustomMark(true)
		}
		rows = append(rows, []string{
			name,
			CategoryBadge(t.Category),
			RenderTierBar(done, total, tierBarWidth),
		})
	}
	return RenderTable([]string{"TIER", "CATEGORY", "PROGRESS"}, rows)
}

// FormatCatalog renders filtered groups, one table per tier.
func FormatCatalog(groups []readiness.Group, progress readiness.Lookup) string {
	if len(groups) == 0 {
		return Dim("No subjects match.") + "\n"
	}
	var b strings.Builder
	for i, grp := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		done, total := readiness.TierProgress(grp.Tier, progress)
		b.WriteString(Header(grp.Tier.Name))
		b.WriteString("\n")
		b.WriteString(CategoryBadge(grp.Tier.Category) + "  " + RenderTierBar(done, total, tierBarWidth) + "\n\n")

		rows := make([][]string, 0, len(grp.Subjects))
		for _, s := range grp.Subjects {
			rows = append(rows, subjectRow(s, progress))
		}
		b.WriteString(RenderTable([]string{"ID", "NAME", "STATUS", "READINESS"}, rows))
	}
	return b.String()
}

func subjectRow(s *domain.Subject, progress readiness.Lookup) []string {
	name := s.Name
	if s.IsCustom {
		name += " " + CustomMark(true)
	}
	return []string{
		Dim(s.ID),
		name,
		ProgressBadge(progress.Get(s.ID)),
		ReadinessBadge(readiness.Calculate(s, progress)),
	}
}
