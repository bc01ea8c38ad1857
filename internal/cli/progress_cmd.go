package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "progress",
		Aliases: []string{"p"},
		Short:   "Record progress on subjects",
	}
	cmd.AddCommand(newProgressSetCmd(app), newProgressCycleCmd(app))
	return cmd
}

func newProgressSetCmd(app *App) *cobra.Command {
	var state domain.Progress

	cmd := &cobra.Command{
		Use:   "set ID...",
		Short: "Set the progress of one or more subjects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.mutate(cmd, "progress.set", func(t *tracker.Tracker) error {
				for _, id := range args {
					if err := t.SetSubjectProgress(id, state); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			for _, id := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", formatter.ProgressBadge(state), id)
			}
			return nil
		},
	}

	cmd.Flags().Var(progressValue{p: &state}, "state", "empty, partial or complete")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func newProgressCycleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cycle ID",
		Short: "Advance a subject: empty, partial, complete, then back to empty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var next domain.Progress
			err := app.mutate(cmd, "progress.cycle", func(t *tracker.Tracker) error {
				p, err := t.CycleProgress(args[0])
				next = p
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", formatter.ProgressBadge(next), args[0])
			return nil
		},
	}
}
