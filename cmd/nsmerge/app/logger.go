package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/nsmerge/pkg/logging"
)

// NewLogger creates the progress logger for a run.
// Log level precedence (highest to lowest):
//  1. --log-level flag, NSMERGE_LOG_LEVEL or LOG_LEVEL
//  2. -q/--quiet flag (warn), which beats -v when both are given
//  3. -v/--verbose flag (debug)
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config, os.Stderr)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level.String(),
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level <= zerolog.DebugLevel,
	})
}

// determineLogLevel resolves the level, writing a warning to warn when the
// settings are contradictory or unknown.
func determineLogLevel(config *Config, warn io.Writer) zerolog.Level {
	if config.LogLevel != "" {
		level, ok := parseLogLevel(config.LogLevel)
		if !ok {
			fmt.Fprintf(warn, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	}

	switch {
	case config.Verbose && config.Quiet:
		fmt.Fprintln(warn, "Warning: both --verbose and --quiet specified, using --quiet")
		return zerolog.WarnLevel
	case config.Quiet:
		return zerolog.WarnLevel
	case config.Verbose:
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// parseLogLevel accepts the names logging.ParseLevel knows. Anything else
// falls back to info and reports false.
func parseLogLevel(name string) (zerolog.Level, bool) {
	switch strings.ToLower(name) {
	case "trace", "debug", "info", "warn", "warning", "error", "off", "none", "disabled":
		return logging.ParseLevel(name), true
	}
	return zerolog.InfoLevel, false
}
