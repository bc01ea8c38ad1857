package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/repository"
	"github.com/alexanderramin/syllabus/internal/syncer"
	"github.com/spf13/cobra"
)

const syncHistoryLimit = 10

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Exchange data with the GitHub repository now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.IsInteractive != nil && app.IsInteractive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Syncing...")
			}
			res, err := app.session.Sync(cmd.Context())
			stop()
			if errors.Is(err, syncer.ErrOffline) {
				return fmt.Errorf("%w: set SYLLABUS_GITHUB_OWNER and SYLLABUS_GITHUB_REPO, or drop --offline", err)
			}
			if err != nil {
				return fmt.Errorf("sync failed, local changes kept: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeSync(res))
			return nil
		},
	}
	cmd.AddCommand(newSyncStatusCmd(app))
	return cmd
}

func describeSync(res *syncer.Result) string {
	switch res.Outcome {
	case repository.SyncPushed:
		return formatter.StyleGreen.Render("↑ Pushed local changes")
	case repository.SyncPulled:
		return formatter.StyleBlue.Render("↓ Pulled newer data from GitHub")
	default:
		return formatter.Dim("= Already up to date")
	}
}

func newSyncStatusCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the sync state and recent attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := app.session.SyncHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyncStatus(app.session.SyncStatus(), history, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", syncHistoryLimit, "attempts to show")
	return cmd
}
