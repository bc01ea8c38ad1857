package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// HumanTimestampFrom renders t relative to now: minutes and hours for
// the last day, a calendar date otherwise.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return t.Format("Jan 2, 2006")
	}
}

// ProjectStatusPill returns a colored status indicator for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectInProgress:
		return StyleYellow.Render("◐ In progress")
	case domain.ProjectCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.ProjectNotStarted:
		return StyleDim.Render("○ Not started")
	default:
		return StyleDim.Render(string(status))
	}
}

// CategoryBadge returns a capitalized, purple-styled category label.
func CategoryBadge(category string) string {
	if category == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ToUpper(category[:1]) + category[1:])
}

// CustomMark flags user-created subjects and tiers.
func CustomMark(custom bool) string {
	if !custom {
		return ""
	}
	return StyleBlue.Render("✚")
}

// ResourceLine renders a resource as "label  url" or a quoted note.
func ResourceLine(r domain.Resource) string {
	switch v := r.(type) {
	case domain.LinkResource:
		if v.Label == "" || v.Label == v.URL {
			return StyleBlue.Render(v.URL)
		}
		return fmt.Sprintf("%s  %s", v.Label, StyleBlue.Render(v.URL))
	case domain.TextResource:
		return StyleFg.Render(v.Label)
	default:
		return Dim(r.Title())
	}
}

// Plural returns "1 subject" or "3 subjects".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
