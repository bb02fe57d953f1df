// Package logging provides structured logging for nsmerge using zerolog.
// Progress through the merge pipeline (namespaces, files, stages) is logged
// as structured events: human-readable console output on a terminal and
// JSON everywhere else.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("namespace", "core").Msg("Processing namespace")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	ctx = logging.WithNamespace(ctx, "core")
//	logging.FromContext(ctx).Debug().Str("file", "core/a.json").Msg("Processing file")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentstation/nsmerge/pkg/constants"
)

// defaultLogger is used until the CLI configures one from flags and config.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig builds a logger config from NSMERGE_LOG_LEVEL and
// NSMERGE_LOG_FORMAT, falling back to the unprefixed LOG_* variables.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := EnvLevel(); level != "" {
		cfg.Level = level
	}
	if format := lookupEnv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return cfg
}

// EnvLevel returns the log level requested through the environment, or "".
func EnvLevel() string {
	if level := lookupEnv("LOG_LEVEL"); level != "" {
		return level
	}
	if os.Getenv("DEBUG") != "" {
		return "debug"
	}
	return ""
}

func lookupEnv(key string) string {
	if v := os.Getenv(constants.EnvPrefix + "_" + key); v != "" {
		return v
	}
	return os.Getenv(key)
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
