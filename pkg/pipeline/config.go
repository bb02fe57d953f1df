package pipeline

import (
	"github.com/agentstation/nsmerge/pkg/constants"
)

// Config names the pipeline inputs and output.
type Config struct {
	// InputDir holds one subdirectory per namespace.
	InputDir string `mapstructure:"input_dir" yaml:"input_dir"`
	// SchemaFile is the JSON Schema the merged document must satisfy.
	SchemaFile string `mapstructure:"schema_file" yaml:"schema_file"`
	// OutputFile receives the merged document.
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`
	// Exclude lists doublestar patterns of files to skip, matched against
	// "namespace/file" and the bare file name.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// DefaultConfig returns the conventional layout relative to the working
// directory.
func DefaultConfig() Config {
	return Config{
		InputDir:   constants.DefaultInputDir,
		SchemaFile: constants.DefaultSchemaFile,
		OutputFile: constants.DefaultOutputFile,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.InputDir == "" {
		c.InputDir = d.InputDir
	}
	if c.SchemaFile == "" {
		c.SchemaFile = d.SchemaFile
	}
	if c.OutputFile == "" {
		c.OutputFile = d.OutputFile
	}
	return c
}
