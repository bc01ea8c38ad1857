package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/readiness"
)

// SubjectView is everything the detail page shows for one subject.
type SubjectView struct {
	Subject    *domain.Subject
	Tier       *domain.Tier
	Progress   readiness.Lookup
	Dependents []*domain.Subject
}

// FormatSubject renders the detail page of a subject: status, goal,
// requirement lists with their own progress, resources and projects.
func FormatSubject(v SubjectView) string {
	s := v.Subject
	var b strings.Builder

	title := Bold(s.Name) + "  " + Dim(s.ID)
	if s.IsCustom {
		title += "  " + CustomMark(true) + Dim(" custom")
	}
	b.WriteString(title + "\n\n")

	pairs := [][2]string{
		{"Tier", v.Tier.Name + "  " + CategoryBadge(v.Tier.Category)},
		{"Status", ProgressBadge(v.Progress.Get(s.ID))},
		{"Readiness", ReadinessBadge(readiness.Calculate(s, v.Progress))},
	}
	if s.Summary != "" {
		pairs = append(pairs, [2]string{"Summary", s.Summary})
	}
	if goal := s.GoalText(); goal != "" {
		pairs = append(pairs, [2]string{"Goal", goal})
	}
	b.WriteString(RenderKeyValues(pairs))

	writeRequirements(&b, "Prerequisites", s.Prereq, v.Progress)
	writeRequirements(&b, "Corequisites", s.Coreq, v.Progress)
	writeRequirements(&b, "Recommended", s.Soft, v.Progress)

	if len(v.Dependents) > 0 {
		names := make([]string, 0, len(v.Dependents))
		for _, d := range v.Dependents {
			names = append(names, d.Name)
		}
		b.WriteString("\n" + Header("Unlocks") + "\n")
		b.WriteString(strings.Join(names, ", ") + "\n")
	}

	if len(s.Resources) > 0 {
		b.WriteString("\n" + Header("Resources") + "\n")
		writeResources(&b, s.Resources, "")
	}

	if len(s.Projects) > 0 {
		b.WriteString("\n" + Header("Projects") + "\n")
		for i, p := range s.Projects {
			fmt.Fprintf(&b, "%s %s  %s\n", Dim(fmt.Sprintf("%d.", i+1)), Bold(p.Name), ProjectStatusPill(p.Status))
			fmt.Fprintf(&b, "   %s\n", p.Goal)
			writeResources(&b, p.Resources, "   ")
		}
	}
	return b.String()
}

func writeRequirements(b *strings.Builder, title string, ids []string, progress readiness.Lookup) {
	if len(ids) == 0 {
		return
	}
	b.WriteString("\n" + Header(title) + "\n")
	for _, id := range ids {
		fmt.Fprintf(b, "%s  %s\n", ProgressBadge(progress.Get(id)), id)
	}
}

func writeResources(b *strings.Builder, rs domain.Resources, indent string) {
	for i, r := range rs {
		fmt.Fprintf(b, "%s%s %s\n", indent, Dim(fmt.Sprintf("[%d]", i+1)), ResourceLine(r))
	}
}

// FormatDependents lists the subjects that build on id.
func FormatDependents(id string, deps []*domain.Subject, progress readiness.Lookup) string {
	if len(deps) == 0 {
		return Dim(fmt.Sprintf("Nothing depends on %s.", id)) + "\n"
	}
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{Dim(d.ID), d.Name, relation(d, id), ReadinessBadge(readiness.Calculate(d, progress))})
	}
	return RenderTable([]string{"ID", "NAME", "NEEDS AS", "READINESS"}, rows)
}

func relation(s *domain.Subject, id string) string {
	for _, p := range s.Prereq {
		if p == id {
			return "prerequisite"
		}
	}
	for _, c := range s.Coreq {
		if c == id {
			return "corequisite"
		}
	}
	return "recommended"
}
