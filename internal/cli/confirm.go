package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errNeedsConfirmation is returned when a destructive command runs
// without a terminal and without --yes.
var errNeedsConfirmation = errors.New("confirmation required: rerun with --yes")

// syllabusHuhTheme returns a huh theme matching the formatter palette.
func syllabusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// huhConfirm shows a yes/no form on the terminal.
func huhConfirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(syllabusHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return ok, nil
}

// confirm resolves a yes/no question: --yes answers it, a terminal asks
// it, anything else refuses.
func (a *App) confirm(title, description string) (bool, error) {
	if a.assumeYes {
		return true, nil
	}
	if a.IsInteractive == nil || !a.IsInteractive() {
		return false, errNeedsConfirmation
	}
	ask := a.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	return ask(title, description)
}
