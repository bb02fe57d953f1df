// Package app provides the application context and dependency management
// for the nsmerge CLI: configuration, logging and the report writer.
package app

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/nsmerge/internal/cmd/alerts"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// App represents the nsmerge application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	flags  *Flags

	logger      *zerolog.Logger
	fixedLogger bool
	alerts      alerts.Writer
}

// New creates a new App instance with the given version information.
// Configuration is loaded from .env files, the environment and the config
// file; command-line flags are applied when a command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		flags:   &Flags{},
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// PipelineConfig returns the pipeline locations from the configuration.
func (a *App) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		InputDir:   a.config.InputDir,
		SchemaFile: a.config.SchemaFile,
		OutputFile: a.config.OutputFile,
		Exclude:    append([]string(nil), a.config.Exclude...),
	}
}

// Alerts returns the report writer, stdout unless overridden.
func (a *App) Alerts() alerts.Writer {
	if a.alerts != nil {
		return a.alerts
	}
	return alerts.NewTerminalWriter(os.Stdout, a.config.NoColor)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixedLogger = true
		return nil
	}
}

// WithAlerts sets the report writer.
func WithAlerts(w alerts.Writer) Option {
	return func(a *App) error {
		a.alerts = w
		return nil
	}
}
