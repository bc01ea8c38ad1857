package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/readiness"
	"github.com/alexanderramin/syllabus/internal/tracker"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	var c readiness.Criteria

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse subjects by tier",
		Long:  "List subjects grouped by tier with their progress and readiness. Filters combine.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTracker(func(t *tracker.Tracker) error {
				groups := readiness.Filter(t.Graph(), t.Progress(), c)
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(groups, t.Progress()))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&c.Search, "search", "s", "", "match id, name or summary")
	cmd.Flags().Var(progressValue{p: &c.Status}, "status", "empty, partial or complete")
	cmd.Flags().StringVar(&c.Category, "category", "", "tier category")
	cmd.Flags().Var(readinessValue{r: &c.Readiness}, "readiness", "ready, partial or locked")

	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show overall progress and what you are studying",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out string
			err := app.withTracker(func(t *tracker.Tracker) error {
				g, progress := t.Graph(), t.Progress()
				out = formatter.FormatDashboard(readiness.Partition(g, progress), readiness.Summarize(g, progress))
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			fmt.Fprintln(cmd.OutOrStdout(), "\n"+formatter.SyncIndicator(app.session.SyncStatus()))
			return nil
		},
	}
}

func newTierCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Inspect tiers",
	}
	cmd.AddCommand(newTierListCmd(app))
	return cmd
}

func newTierListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tiers with completion bars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withTracker(func(t *tracker.Tracker) error {
				g := t.Graph()
				if category != "" {
					g = onlyCategory(g, category)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTiers(g, t.Progress()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only tiers in this category")
	return cmd
}

// onlyCategory returns a shallow view of g restricted to one category.
func onlyCategory(g *domain.Graph, category string) *domain.Graph {
	out := domain.NewGraph()
	for _, t := range g.Tiers {
		if t.Category == category {
			out.Tiers = append(out.Tiers, t)
		}
	}
	return out
}
