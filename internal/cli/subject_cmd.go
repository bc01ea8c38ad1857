package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/readiness"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"s"},
		Short:   "Inspect and edit subjects",
	}

	cmd.AddCommand(
		newSubjectShowCmd(app),
		newSubjectAddCmd(app),
		newSubjectRemoveCmd(app),
		newSubjectGoalCmd(app),
		newSubjectSummaryCmd(app),
		newSubjectDepsCmd(app),
	)

	return cmd
}

func newSubjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a subject with its requirements, resources and projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTracker(func(t *tracker.Tracker) error {
				s, tier := t.Graph().Locate(args[0])
				if s == nil {
					return fmt.Errorf("subject %q: %w", args[0], tracker.ErrNotFound)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubject(formatter.SubjectView{
					Subject:    s,
					Tier:       tier,
					Progress:   t.Progress(),
					Dependents: readiness.Dependents(t.Graph(), s.ID),
				}))
				return nil
			})
		},
	}
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var in domain.NewSubjectInput

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a custom subject",
		Long: "Create a custom subject. The id defaults to a slug of the name and the tier to \"" +
			domain.DefaultCustomTier + "\"; a tier that does not exist is created.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			var created *domain.Subject
			err := app.mutate(cmd, "subject.add", func(t *tracker.Tracker) error {
				s, err := t.CreateCustomSubject(in)
				created = s
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s in %s.\n",
				formatter.Bold(created.Name), formatter.Dim("("+created.ID+")"), domain.CoalesceStr(in.Tier, domain.DefaultCustomTier))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ID, "id", "", "subject id (default: slug of the name)")
	cmd.Flags().StringVar(&in.Tier, "tier", "", "tier name")
	cmd.Flags().StringSliceVar(&in.Prereq, "prereq", nil, "prerequisite subject ids")
	cmd.Flags().StringSliceVar(&in.Coreq, "coreq", nil, "corequisite subject ids")
	cmd.Flags().StringSliceVar(&in.Soft, "soft", nil, "recommended subject ids")
	cmd.Flags().StringVar(&in.Summary, "summary", "", "short description")
	cmd.Flags().StringVar(&in.Goal, "goal", "", "learning goal")

	return cmd
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a custom subject with its projects and progress",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ok, err := app.confirm(fmt.Sprintf("Delete subject %q?", id), "Its projects, resources and progress are removed.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			var dependents []*domain.Subject
			err = app.mutate(cmd, "subject.delete", func(t *tracker.Tracker) error {
				deps, err := t.DeleteCustomSubject(id)
				dependents = deps
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", id)
			if len(dependents) > 0 {
				names := make([]string, 0, len(dependents))
				for _, d := range dependents {
					names = append(names, d.ID)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("warning: ")+
					fmt.Sprintf("still referenced by %s", strings.Join(names, ", ")))
			}
			return nil
		},
	}
}

func newSubjectGoalCmd(app *App) *cobra.Command {
	var clearGoal bool

	cmd := &cobra.Command{
		Use:   "goal ID [GOAL]",
		Short: "Set or clear the learning goal of a subject",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal := ""
			if len(args) == 2 {
				goal = args[1]
			}
			if goal == "" && !clearGoal {
				return fmt.Errorf("give a goal or pass --clear")
			}
			err := app.mutate(cmd, "subject.goal", func(t *tracker.Tracker) error {
				return t.SetGoal(args[0], goal)
			})
			if err != nil {
				return err
			}
			if goal == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared goal of %s.\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal of %s set.\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearGoal, "clear", false, "remove the goal")
	return cmd
}

func newSubjectSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary ID TEXT",
		Short: "Replace the summary of a custom subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.mutate(cmd, "subject.summary", func(t *tracker.Tracker) error {
				return t.SetSummary(args[0], args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Summary of %s updated.\n", args[0])
			return nil
		},
	}
}

func newSubjectDepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deps ID",
		Short: "List the subjects that build on a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTracker(func(t *tracker.Tracker) error {
				if _, err := t.Subject(args[0]); err != nil {
					return err
				}
				deps := readiness.Dependents(t.Graph(), args[0])
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDependents(args[0], deps, t.Progress()))
				return nil
			})
		},
	}
}
