package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/nsmerge/cmd/merge"
	"github.com/agentstation/nsmerge/cmd/nsmerge/cmd/show"
	"github.com/agentstation/nsmerge/cmd/nsmerge/cmd/validate"
	"github.com/agentstation/nsmerge/cmd/nsmerge/cmd/version"
	"github.com/agentstation/nsmerge/cmd/nsmerge/cmd/watch"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(watch.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(show.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
