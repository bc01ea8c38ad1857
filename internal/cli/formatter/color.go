package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette. UseTheme swaps it for the light variant.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  lipgloss.Style
	StyleYellow lipgloss.Style
	StyleRed    lipgloss.Style
	StyleBlue   lipgloss.Style
	StylePurple lipgloss.Style
	StyleDim    lipgloss.Style
	StyleFg     lipgloss.Style
	StyleHeader lipgloss.Style
	StyleBold   lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	StyleGreen = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
}

// UseTheme switches the palette between the dark and light gruvbox
// variants. Unknown names select dark.
func UseTheme(theme string) {
	if theme == domain.ThemeLight {
		ColorGreen = lipgloss.Color("#427b58")
		ColorYellow = lipgloss.Color("#b57614")
		ColorRed = lipgloss.Color("#9d0006")
		ColorBlue = lipgloss.Color("#076678")
		ColorPurple = lipgloss.Color("#8f3f71")
		ColorDim = lipgloss.Color("#7c6f64")
		ColorFg = lipgloss.Color("#3c3836")
		ColorHeader = lipgloss.Color("#af3a03")
	} else {
		ColorGreen = lipgloss.Color("#8ec07c")
		ColorYellow = lipgloss.Color("#fabd2f")
		ColorRed = lipgloss.Color("#fb4934")
		ColorBlue = lipgloss.Color("#83a598")
		ColorPurple = lipgloss.Color("#d3869b")
		ColorDim = lipgloss.Color("#928374")
		ColorFg = lipgloss.Color("#ebdbb2")
		ColorHeader = lipgloss.Color("#fe8019")
	}
	buildStyles()
}

// ProgressColor returns the style used for a subject's progress state.
func ProgressColor(p domain.Progress) lipgloss.Style {
	switch p {
	case domain.ProgressComplete:
		return StyleGreen
	case domain.ProgressPartial:
		return StyleYellow
	default:
		return StyleDim
	}
}

// ProgressBadge returns a colored progress indicator such as "◐ Partial".
func ProgressBadge(p domain.Progress) string {
	switch p {
	case domain.ProgressComplete:
		return StyleGreen.Render("● Complete")
	case domain.ProgressPartial:
		return StyleYellow.Render("◐ Partial")
	default:
		return StyleDim.Render("○ Empty")
	}
}

// ReadinessBadge returns a colored readiness indicator such as "▶ READY".
func ReadinessBadge(r domain.Readiness) string {
	switch r {
	case domain.ReadinessReady:
		return StyleGreen.Render("▶ READY")
	case domain.ReadinessPartial:
		return StyleYellow.Render("◆ PARTIAL")
	case domain.ReadinessLocked:
		return StyleRed.Render("■ LOCKED")
	default:
		return StyleDim.Render("? UNKNOWN")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
