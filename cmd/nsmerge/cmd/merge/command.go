// Package merge provides the merge command, the default action of nsmerge.
package merge

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/report"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// NewCommand creates the merge command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "merge",
		GroupID: "core",
		Short:   "Merge namespace files, validate and write the output",
		Args:    cobra.NoArgs,
		Long: `Merge reads every subdirectory of the input directory as a namespace,
merges the JSON objects of its files in sorted file-name order (later files
win on key collisions), validates the combined document against the JSON
Schema and writes it to the output file.

Nothing is written unless every stage succeeds. A missing input directory
is reported and the command exits successfully without writing.`,
		Example: `  nsmerge merge
  nsmerge merge --input data/namespaces --schema schema.json --output natives.json
  nsmerge merge --exclude '**/*.draft.json'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app)
		},
	}
}

// Execute runs the full pipeline and reports the outcome.
func Execute(ctx context.Context, app application.Application) error {
	cfg := app.PipelineConfig()
	p := pipeline.New(cfg, pipeline.WithLogger(app.Logger()))
	result, err := p.Run(ctx)
	return report.Emit(app.Alerts(), p.Config().InputDir, result, err)
}
