package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Attach links and notes to subjects and projects",
	}
	cmd.AddCommand(newResourceAddCmd(app), newResourceRemoveCmd(app))
	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var (
		url     string
		project string
	)

	cmd := &cobra.Command{
		Use:   "add SUBJECT LABEL",
		Short: "Add a link (with --url) or a text note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.NewResource(args[1], url)
			if err != nil {
				return err
			}
			err = app.mutate(cmd, "resource.add", func(t *tracker.Tracker) error {
				if project == "" {
					return t.AddSubjectResource(args[0], r)
				}
				ref, err := projectRef(args[0], project)
				if err != nil {
					return err
				}
				return t.AddProjectResource(ref, r)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatter.ResourceLine(r))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "link target; omit for a text note")
	cmd.Flags().StringVar(&project, "project", "", "project number within the subject")

	return cmd
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "rm SUBJECT N",
		Aliases: []string{"remove"},
		Short:   "Remove the Nth resource",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parsePosition("resource number", args[1])
			if err != nil {
				return err
			}
			err = app.mutate(cmd, "resource.remove", func(t *tracker.Tracker) error {
				if project == "" {
					return t.RemoveSubjectResource(args[0], idx)
				}
				ref, err := projectRef(args[0], project)
				if err != nil {
					return err
				}
				return t.RemoveProjectResource(ref, idx)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed resource %d.\n", idx+1)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project number within the subject")
	return cmd
}
