package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/readiness"
)

// FormatDashboard renders the summary box followed by the in-progress
// and completed sections.
func FormatDashboard(d readiness.Dashboard, st readiness.Stats) string {
	var b strings.Builder

	summary := RenderKeyValues([][2]string{
		{"Overall", RenderProgress(float64(st.Percentage)/100, 24)},
		{"Completed", StyleGreen.Render(fmt.Sprintf("%d", st.Completed)) + Dim(fmt.Sprintf(" of %d", st.Total))},
		{"In progress", StyleYellow.Render(fmt.Sprintf("%d", st.InProgress))},
		{"Ready to start", StyleBlue.Render(fmt.Sprintf("%d", st.Ready))},
	})
	b.WriteString(RenderBox("Progress", strings.TrimRight(summary, "\n")))
	b.WriteString("\n\n")

	b.WriteString(Header("Currently studying"))
	b.WriteString("\n")
	writeEntries(&b, d.Current, "Nothing in progress. Pick a ready subject from the catalog.")

	b.WriteString("\n")
	b.WriteString(Header("Completed"))
	b.WriteString("\n")
	writeEntries(&b, d.Completed, "No subjects completed yet.")
	return b.String()
}

func writeEntries(b *strings.Builder, entries []readiness.Entry, empty string) {
	if len(entries) == 0 {
		b.WriteString(Dim(empty) + "\n")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		goal := e.Subject.GoalText()
		if goal == "" {
			goal = Dim("--")
		}
		rows = append(rows, []string{Dim(e.Subject.ID), e.Subject.Name, Dim(e.Tier), goal})
	}
	b.WriteString(RenderTable([]string{"ID", "NAME", "TIER", "GOAL"}, rows))
}
