// Package show provides the show command.
package show

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/report"
	"github.com/agentstation/nsmerge/pkg/pipeline"
	"github.com/agentstation/nsmerge/pkg/save"
)

// Flags holds the show command flags.
type Flags struct {
	Format string
}

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "show",
		GroupID: "inspect",
		Short:   "Print the merged document without validating it",
		Args:    cobra.NoArgs,
		Long: `Show merges the namespaces and prints the result to standard output.
The schema is not loaded and no file is written.`,
		Example: `  nsmerge show
  nsmerge show --format yaml
  nsmerge show | jq '.core'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, ok := save.ParseFormat(flags.Format)
			if !ok {
				return fmt.Errorf("unsupported format %q (want json or yaml)", flags.Format)
			}

			cfg := app.PipelineConfig()
			p := pipeline.New(cfg, pipeline.WithLogger(app.Logger()))
			result, err := p.Collect(cmd.Context())
			if err != nil || result.Status == pipeline.StatusSkipped {
				return report.Emit(app.Alerts(), p.Config().InputDir, result, err)
			}

			return save.Write(result.Document,
				save.WithWriter(cmd.OutOrStdout()),
				save.WithFormat(format),
			)
		},
	}

	cmd.Flags().StringVarP(&flags.Format, "format", "f", "json", "output format: json, yaml")
	return cmd
}
