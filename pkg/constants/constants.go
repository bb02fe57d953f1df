// Package constants provides shared constants used throughout the nsmerge codebase.
// This includes default paths, file permissions, and formatting values that
// should be consistent across the application.
package constants

import "time"

// Default path constants mirror the layout the merge tool expects when run
// from a project root with no configuration.
const (
	// DefaultInputDir is the directory holding one subdirectory per namespace
	DefaultInputDir = "namespaces"

	// DefaultSchemaFile is the JSON Schema the merged document must satisfy
	DefaultSchemaFile = "schema.json"

	// DefaultOutputFile is where the merged document is written
	DefaultOutputFile = "natives.json"

	// ConfigFileName is the config file name searched in $HOME and the working directory
	ConfigFileName = ".nsmerge"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "NSMERGE"
)

// FilePermissions is the default permission for written files (rw-r--r--).
const FilePermissions = 0644

// Formatting constants
const (
	// JSONIndent is the indentation used for the merged output document
	JSONIndent = "    "

	// InputEncoding is the only text encoding accepted for fragment files
	InputEncoding = "UTF-8"
)

// WatchDebounce is how long the watcher waits for changes to settle before re-running.
const WatchDebounce = 250 * time.Millisecond
