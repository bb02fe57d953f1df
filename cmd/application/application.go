// Package application provides the application interface for nsmerge commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            p := pipeline.New(app.PipelineConfig(), pipeline.WithLogger(app.Logger()))
//	            result, err := p.Run(cmd.Context())
//	            // ... report result
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    PipelineConfigFunc: func() pipeline.Config {
//	        return pipeline.Config{InputDir: dir}
//	    },
//	}
//	cmd := merge.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/nsmerge/internal/cmd/alerts"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// Application provides the application interface that commands need.
// The App struct from cmd/nsmerge/app implements this interface.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// PipelineConfig returns the input, schema and output locations after
	// config file, environment and flags have been applied.
	PipelineConfig() pipeline.Config

	// Alerts returns the writer for the human-readable run report.
	Alerts() alerts.Writer

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
