package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the projects attached to a subject",
		Long:  "Projects are numbered from 1 within their subject, as shown by 'subject show'.",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectEditCmd(app),
		newProjectRemoveCmd(app),
		newProjectCycleCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, goal string

	cmd := &cobra.Command{
		Use:   "add SUBJECT",
		Short: "Attach a new project to a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				created  domain.Project
				position int
			)
			err := app.mutate(cmd, "project.add", func(t *tracker.Tracker) error {
				p, err := t.AddProject(args[0], domain.ProjectInput{Name: name, Goal: goal})
				if err != nil {
					return err
				}
				created = p
				s, _ := t.Subject(args[0])
				position = len(s.Projects)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added project %d: %s %s\n",
				position, formatter.Bold(created.Name), formatter.ProjectStatusPill(created.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	cmd.Flags().StringVar(&goal, "goal", "", "what the project should achieve (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	var name, goal string

	cmd := &cobra.Command{
		Use:   "edit SUBJECT N",
		Short: "Change the name or goal of a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("goal") {
				return fmt.Errorf("nothing to change: pass --name and/or --goal")
			}
			err = app.mutate(cmd, "project.update", func(t *tracker.Tracker) error {
				s, err := t.Subject(ref.SubjectID)
				if err != nil {
					return err
				}
				cur, ok := s.Project(ref.Index)
				if !ok {
					return fmt.Errorf("project %s: %w", ref, tracker.ErrNotFound)
				}
				in := domain.ProjectInput{Name: cur.Name, Goal: cur.Goal}
				if cmd.Flags().Changed("name") {
					in.Name = name
				}
				if cmd.Flags().Changed("goal") {
					in.Goal = goal
				}
				return t.UpdateProject(ref, in)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d.\n", ref.Index+1)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&goal, "goal", "", "new goal")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm SUBJECT N",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a project",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.requireOwner(); err != nil {
				return err
			}
			ok, err := app.confirm(fmt.Sprintf("Remove project %d of %s?", ref.Index+1, ref.SubjectID), "Its resources are removed with it.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			err = app.mutate(cmd, "project.delete", func(t *tracker.Tracker) error {
				return t.RemoveProject(ref)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %d of %s.\n", ref.Index+1, ref.SubjectID)
			return nil
		},
	}
}

func newProjectCycleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cycle SUBJECT N",
		Short: "Advance a project: not started, in progress, completed, then back",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := projectRef(args[0], args[1])
			if err != nil {
				return err
			}
			var next domain.ProjectStatus
			err = app.mutate(cmd, "project.cycle", func(t *tracker.Tracker) error {
				st, err := t.CycleProjectProgress(ref)
				next = st
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %d of %s: %s\n", ref.Index+1, ref.SubjectID, formatter.ProjectStatusPill(next))
			return nil
		},
	}
}
