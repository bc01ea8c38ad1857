package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/syllabus/internal/app"
	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

// Opener starts a session from configuration. app.OpenFromConfig is the
// production implementation.
type Opener func(ctx context.Context, cfg config.Config, offline bool, logw io.Writer) (*app.App, func(context.Context), error)

// App holds the configuration and collaborators used by CLI commands,
// plus the session opened for the running command.
type App struct {
	Config  config.Config
	Open    Opener
	Version string

	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title, description string) (bool, error)
	Now     func() time.Time

	offline   bool
	assumeYes bool

	session *app.App
	closeFn func(context.Context)
}

// skipSession marks commands that run without loading user data.
const skipSession = "skip-session"

// NewRootCmd creates the top-level "syllabus" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "syllabus",
		Short:         "Track progress through a self-study curriculum",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSession] != "" || cmd.Name() == "help" {
				return nil
			}
			return a.openSession(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.Shutdown(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.Config.CatalogPath, "catalog", a.Config.CatalogPath, "catalog file (default: built-in catalog)")
	flags.StringVar(&a.Config.DBPath, "db", a.Config.DBPath, "local cache database")
	flags.BoolVar(&a.offline, "offline", false, "work from the local cache only")
	flags.BoolVarP(&a.assumeYes, "yes", "y", false, "answer yes to confirmation prompts")

	root.AddCommand(
		newCatalogCmd(a),
		newDashboardCmd(a),
		newTierCmd(a),
		newSubjectCmd(a),
		newProgressCmd(a),
		newResourceCmd(a),
		newProjectCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newResetCmd(a),
		newSyncCmd(a),
		newCacheCmd(a),
		newThemeCmd(a),
		newVersionCmd(a),
	)

	return root
}

func (a *App) openSession(cmd *cobra.Command) error {
	if a.session != nil {
		return nil
	}
	if a.Open == nil {
		return errors.New("no session opener configured")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	session, closeFn, err := a.Open(ctx, a.Config, a.offline, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.session = session
	a.closeFn = closeFn

	for _, w := range session.Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("warning: ")+w)
	}
	_ = session.View(func(t *tracker.Tracker) error {
		formatter.UseTheme(t.Theme())
		return nil
	})
	return nil
}

// Shutdown closes the session opened for the last command. It is safe to
// call more than once, and main calls it as well because cobra skips
// post-run hooks when a command fails.
func (a *App) Shutdown(ctx context.Context) {
	if a.closeFn == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	a.closeFn(ctx)
	a.closeFn = nil
	a.session = nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// withTracker runs fn against the open session, read-only.
func (a *App) withTracker(fn func(t *tracker.Tracker) error) error {
	return a.session.View(fn)
}

// mutate runs a named mutation through the session so it is cached and
// queued for sync.
func (a *App) mutate(cmd *cobra.Command, name string, fn func(t *tracker.Tracker) error) error {
	return a.explainReadOnly(a.session.Do(cmd.Context(), name, fn))
}

// requireOwner fails early in a read-only session, before any prompt.
func (a *App) requireOwner() error {
	if a.session.IsOwner() {
		return nil
	}
	return a.explainReadOnly(tracker.ErrReadOnly)
}

func (a *App) explainReadOnly(err error) error {
	if errors.Is(err, tracker.ErrReadOnly) {
		return fmt.Errorf("%w: sign in with a token for %s/%s to make changes",
			err, a.Config.GitHub.Owner, a.Config.GitHub.Repo)
	}
	return err
}
