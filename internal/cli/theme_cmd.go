package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{domain.ThemeLight, domain.ThemeDark, "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var current string
			_ = app.withTracker(func(t *tracker.Tracker) error {
				current = t.Theme()
				return nil
			})
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			next := args[0]
			if next == "toggle" {
				next = domain.ToggleTheme(current)
			}
			err := app.mutate(cmd, "theme", func(t *tracker.Tracker) error {
				return t.SetTheme(next)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", next)
			return nil
		},
	}
}
