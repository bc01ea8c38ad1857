package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/syllabus/internal/app"
	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/userdata"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write your progress and customizations to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "-" {
				return a.session.Export(cmd.Context(), cmd.OutOrStdout())
			}
			path := out
			if path == "" {
				path = app.ExportFilename(a.now())
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := a.session.Export(cmd.Context(), f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, or - for stdout (default: syllabus-data-DATE.json)")
	return cmd
}

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace your data with an exported file",
		Long:  "Replace progress, customizations and theme with the contents of an export. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireOwner(); err != nil {
				return err
			}
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			ok, err := a.confirm("Replace your current data?", "Everything not in "+args[0]+" is lost.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			var promptErr error
			res, err := a.session.Import(cmd.Context(), raw, func(w *userdata.SchemaWarning) bool {
				yes, err := a.confirm("Import anyway?", "The file "+w.Error()+".")
				promptErr = err
				return yes
			})
			if promptErr != nil && errors.Is(err, app.ErrImportCancelled) {
				return promptErr
			}
			if errors.Is(err, app.ErrImportCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err != nil {
				return a.explainReadOnly(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s and %s.\n",
				formatter.Plural(res.Subjects, "subject"), formatter.Plural(res.CustomSubjects, "custom subject"))
			for _, id := range res.Report.IgnoredOverlays {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("warning: ")+
					fmt.Sprintf("ignored customization of unknown subject %q", id))
			}
			for _, id := range res.Report.SkippedSubjects {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("warning: ")+
					fmt.Sprintf("skipped custom subject %q: id already in use", id))
			}
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return raw, nil
}

func newResetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress and customizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireOwner(); err != nil {
				return err
			}
			ok, err := a.confirm("Reset all progress?", "Custom subjects, goals, resources and projects are removed too.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := a.session.Reset(cmd.Context()); err != nil {
				return a.explainReadOnly(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reset to the bare catalog.")
			return nil
		},
	}
}

func newCacheCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget locally cached data, including unsynced edits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.confirm("Clear the local cache?", "Edits that were never synced are lost.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := a.session.ClearCache(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Local cache cleared.")
			return nil
		},
	})
	return cmd
}
