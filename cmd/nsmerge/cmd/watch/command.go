// Package watch provides the watch command.
package watch

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/report"
	"github.com/agentstation/nsmerge/internal/watch"
	"github.com/agentstation/nsmerge/pkg/constants"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// Flags holds the watch command flags.
type Flags struct {
	Debounce     time.Duration
	ValidateOnly bool
}

// NewCommand creates the watch command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Re-run the merge whenever namespace files or the schema change",
		Args:    cobra.NoArgs,
		Long: `Watch runs merge once, then again every time a file under the input
directory or the schema file changes. Failed runs are reported and watching
continues. Stop with Ctrl-C.`,
		Example: `  nsmerge watch
  nsmerge watch --debounce 1s
  nsmerge watch --validate-only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.PipelineConfig()
			p := pipeline.New(cfg, pipeline.WithLogger(app.Logger()))

			w, err := watch.New(p.Config().InputDir, p.Config().SchemaFile,
				watch.WithDebounce(flags.Debounce),
				watch.WithLogger(app.Logger()),
			)
			if err != nil {
				return err
			}

			return w.Run(cmd.Context(), func(ctx context.Context, _ int) error {
				run := p.Run
				if flags.ValidateOnly {
					run = p.Validate
				}
				result, err := run(ctx)
				return report.Emit(app.Alerts(), p.Config().InputDir, result, err)
			})
		},
	}

	cmd.Flags().DurationVar(&flags.Debounce, "debounce", constants.WatchDebounce, "quiet period before re-running")
	cmd.Flags().BoolVar(&flags.ValidateOnly, "validate-only", false, "validate on change without writing the output")
	return cmd
}
