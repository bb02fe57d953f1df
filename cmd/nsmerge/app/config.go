package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/nsmerge/pkg/constants"
	"github.com/agentstation/nsmerge/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Pipeline locations
	InputDir   string
	SchemaFile string
	OutputFile string
	Exclude    []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Flags holds raw command-line flag values. Only flags the user actually
// set override the loaded configuration.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	LogLevel   string
	InputDir   string
	SchemaFile string
	OutputFile string
	Exclude    []string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. NSMERGE_* environment variables
//  3. .env and .env.local files
//  4. Config file (configFile, or .nsmerge.yaml in . or $HOME)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("input_dir", constants.DefaultInputDir)
	v.SetDefault("schema_file", constants.DefaultSchemaFile)
	v.SetDefault("output_file", constants.DefaultOutputFile)
	v.SetDefault("log_level", os.Getenv("LOG_LEVEL"))
	v.SetDefault("log_format", getEnvOrDefault("LOG_FORMAT", "auto"))
	v.SetDefault("log_output", getEnvOrDefault("LOG_OUTPUT", "stderr"))

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",

		ConfigFile: v.ConfigFileUsed(),

		InputDir:   v.GetString("input_dir"),
		SchemaFile: v.GetString("schema_file"),
		OutputFile: v.GetString("output_file"),
		Exclude:    splitList(v.GetStringSlice("exclude")),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

// readConfigFile reads an explicit config file, which must exist, or the
// first .nsmerge.yaml found in the working directory or $HOME.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return errors.NewNotFoundError("config file", configFile)
			}
			return errors.WrapParse("yaml", configFile, err)
		}
		return nil
	}

	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.WrapParse("yaml", v.ConfigFileUsed(), err)
	}
	return nil
}

// UpdateFromFlags applies the flags the user set. Flags left at their
// defaults do not override config file or environment values.
func (c *Config) UpdateFromFlags(fs *pflag.FlagSet, f *Flags) {
	changed := func(name string) bool {
		fl := fs.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("verbose") {
		c.Verbose = f.Verbose
	}
	if changed("quiet") {
		c.Quiet = f.Quiet
	}
	if changed("no-color") {
		c.NoColor = f.NoColor
	}
	if changed("log-level") {
		c.LogLevel = f.LogLevel
	}
	if changed("input") {
		c.InputDir = f.InputDir
	}
	if changed("schema") {
		c.SchemaFile = f.SchemaFile
	}
	if changed("output") {
		c.OutputFile = f.OutputFile
	}
	if changed("exclude") {
		c.Exclude = splitList(f.Exclude)
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		// godotenv.Load never overrides variables that are already set,
		// so the more specific file goes first.
		_ = godotenv.Load(envFile)
	}
}

// splitList flattens comma-separated entries, as given by NSMERGE_EXCLUDE.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
