// Package validate provides the validate command.
package validate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/report"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Merge and validate without writing the output",
		Args:    cobra.NoArgs,
		Long: `Validate runs the same collection and schema validation as merge but
never touches the output file. Use it in CI to check namespace changes.`,
		Example: `  nsmerge validate
  nsmerge validate --schema schema.json -q`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.PipelineConfig()
			p := pipeline.New(cfg, pipeline.WithLogger(app.Logger()))
			result, err := p.Validate(cmd.Context())
			return report.Emit(app.Alerts(), p.Config().InputDir, result, err)
		},
	}
}
