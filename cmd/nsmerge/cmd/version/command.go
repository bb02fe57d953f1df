// Package version provides the version command.
package version

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/application"
)

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("nsmerge %s\n", app.Version())
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				cmd.Printf("  commit:   %s\n", app.Commit())
				cmd.Printf("  built:    %s\n", app.Date())
				cmd.Printf("  built by: %s\n", app.BuiltBy())
			}
		},
	}
}
