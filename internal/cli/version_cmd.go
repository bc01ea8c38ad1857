package cli

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSession: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := app.Version
			if v == "" {
				v = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "syllabus %s (data schema %s)\n", v, domain.SchemaVersion)
			return nil
		},
	}
}
