package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentstation/nsmerge/cmd/application"
	"github.com/agentstation/nsmerge/cmd/nsmerge/cmd/merge"
	"github.com/agentstation/nsmerge/internal/cmd/report"
	"github.com/agentstation/nsmerge/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// Execute runs the nsmerge CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// Running the root command without a subcommand performs a merge.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "nsmerge",
		Short:   "Merge namespaced JSON fragments into one validated document",
		Version: a.version,
		Args:    cobra.NoArgs,
		Long: `nsmerge combines JSON fragment files organised into namespace
directories into a single document keyed by namespace, validates it against
a JSON Schema and writes it to disk.

  namespaces/
    core/   a.json b.json   ->   { "core": {...}, "ui": {...} }
    ui/     c.json

Without a subcommand nsmerge runs "merge".`,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return merge.Execute(cmd.Context(), a)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands:",
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is ./.nsmerge.yaml or $HOME/.nsmerge.yaml)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVarP(&a.flags.InputDir, "input", "i", a.config.InputDir, "directory holding one subdirectory per namespace")
	pf.StringVarP(&a.flags.SchemaFile, "schema", "s", a.config.SchemaFile, "JSON Schema the merged document must satisfy")
	pf.StringVarP(&a.flags.OutputFile, "output", "o", a.config.OutputFile, "file the merged document is written to")
	pf.StringSliceVarP(&a.flags.Exclude, "exclude", "e", nil, "glob of namespace files to skip, e.g. '**/*.draft.json' (repeatable)")

	rootCmd.SetVersionTemplate("nsmerge {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// file named by --config, then applies the flags that were set.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if f := cmd.Flags().Lookup("config"); f != nil && f.Changed {
		config, err := LoadConfig(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(cmd.Flags(), a.flags)

	if a.config.NoColor {
		color.NoColor = true
	}

	if !a.fixedLogger {
		logger := NewLogger(a.config)
		a.logger = &logger
	}

	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Str("input_dir", a.config.InputDir).
		Str("schema_file", a.config.SchemaFile).
		Str("output_file", a.config.OutputFile).
		Strs("exclude", a.config.Exclude).
		Msg("Configuration loaded")

	return nil
}

// ExitOnError prints err unless the run report already described it, and
// exits with the status for its failure kind: 130 when interrupted, 1 for
// any other failure.
func ExitOnError(err error) {
	if err == nil {
		return
	}

	code := errors.ExitCode(err)
	if code == errors.ExitOK {
		code = errors.ExitFailure
	}

	if !report.IsReported(err) {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else if code != errors.ExitInterrupted {
		_, _ = fmt.Fprintln(os.Stderr, "\nRun failed. Check the error messages above.")
	}
	os.Exit(code)
}
