// Package config holds the jsonfmt configuration. Every option can be set
// from a YAML file and from a command line flag; flags given on the command
// line take precedence over the file.
package config

import (
	"flag"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultArenaSize is the arena capacity of one reformat job.
const DefaultArenaSize = 4 * datasize.MB

// Config is the root configuration.
type Config struct {
	ConfigFile string `yaml:"-"`

	ArenaSize datasize.ByteSize `yaml:"arena_size"`
	Workers   int               `yaml:"workers"`
	Write     bool              `yaml:"write"`

	Parse   ParseConfig   `yaml:"parse"`
	Format  FormatConfig  `yaml:"format"`
	Log     LogConfig     `yaml:"log"`
	Profile ProfileConfig `yaml:"profile"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ParseConfig configures the JSON parser.
type ParseConfig struct {
	MaxDepth          int  `yaml:"max_depth"`
	AllowBareExponent bool `yaml:"allow_bare_exponent"`
}

// FormatConfig configures the JSON formatter.
type FormatConfig struct {
	Indent         int  `yaml:"indent"`
	EscapeStrings  bool `yaml:"escape_strings"`
	PreciseNumbers bool `yaml:"precise_numbers"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ProfileConfig names the files the allocation profile is written to.
// Profiling is enabled when at least one is set.
type ProfileConfig struct {
	HeapText  string `yaml:"heap_text"`
	HeapProto string `yaml:"heap_proto"`
}

// Enabled reports whether any profile output is configured.
func (cfg ProfileConfig) Enabled() bool {
	return cfg.HeapText != "" || cfg.HeapProto != ""
}

// MetricsConfig configures the metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// RegisterFlags registers every option on f with its default value.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&cfg.ConfigFile, "config.file", "", "YAML configuration file to load. Flags given on the command line override it.")
	f.TextVar(&cfg.ArenaSize, "arena.size", DefaultArenaSize, "Arena capacity of one reformat job. Documents needing more memory are rejected.")
	f.IntVar(&cfg.Workers, "workers", 4, "Number of files reformatted concurrently.")
	f.BoolVar(&cfg.Write, "write", false, "Write the result back to each file instead of printing it.")

	cfg.Parse.RegisterFlagsWithPrefix("parse.", f)
	cfg.Format.RegisterFlagsWithPrefix("format.", f)
	cfg.Log.RegisterFlagsWithPrefix("log.", f)
	cfg.Profile.RegisterFlagsWithPrefix("profile.", f)
	cfg.Metrics.RegisterFlagsWithPrefix("metrics.", f)
}

func (cfg *ParseConfig) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.MaxDepth, prefix+"max-depth", 512, "Maximum nesting of arrays and objects.")
	f.BoolVar(&cfg.AllowBareExponent, prefix+"allow-bare-exponent", false, "Accept numbers with an exponent but no fraction, such as 1e5.")
}

func (cfg *FormatConfig) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.Indent, prefix+"indent", 2, "Spaces per nesting level.")
	f.BoolVar(&cfg.EscapeStrings, prefix+"escape-strings", false, "Escape quotes, backslashes and control characters in strings.")
	f.BoolVar(&cfg.PreciseNumbers, prefix+"precise-numbers", false, "Print numbers with their fractional part instead of truncating them.")
}

func (cfg *LogConfig) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Level, prefix+"level", "info", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
	f.StringVar(&cfg.Format, prefix+"format", "logfmt", "Output log messages in the given format. Valid formats: [logfmt, json]")
}

func (cfg *ProfileConfig) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.HeapText, prefix+"heap-text", "", "Write a text heap profile of arena allocations to this file on exit.")
	f.StringVar(&cfg.HeapProto, prefix+"heap-proto", "", "Write a pprof heap profile of arena allocations to this file on exit.")
}

func (cfg *MetricsConfig) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Textfile, prefix+"textfile", "", "Write metrics in the Prometheus text format to this file on exit.")
}

// Validate checks the configuration for invalid values.
func (cfg *Config) Validate() error {
	if cfg.ArenaSize == 0 {
		return errors.New("arena size must be positive")
	}
	if cfg.Workers <= 0 {
		return errors.Errorf("invalid number of workers %d: must be positive", cfg.Workers)
	}
	if cfg.Parse.MaxDepth < 0 {
		return errors.Errorf("invalid max depth %d", cfg.Parse.MaxDepth)
	}
	if cfg.Format.Indent < 0 {
		return errors.Errorf("invalid indent %d", cfg.Format.Indent)
	}
	return cfg.Log.Validate()
}

// Validate checks the level and format names.
func (cfg *LogConfig) Validate() error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unrecognized log level %q", cfg.Level)
	}
	switch cfg.Format {
	case "logfmt", "json":
	default:
		return errors.Errorf("unrecognized log format %q", cfg.Format)
	}
	return nil
}

// Load registers cfg's flags on f and parses args. When -config.file is
// given, the file is applied over the defaults and the flags are parsed a
// second time, so that the ones given explicitly win. The result is
// validated.
func Load(f *flag.FlagSet, args []string, cfg *Config) error {
	cfg.RegisterFlags(f)
	if err := f.Parse(args); err != nil {
		return err
	}

	if cfg.ConfigFile != "" {
		if err := LoadFile(cfg.ConfigFile, cfg); err != nil {
			return err
		}
		if err := f.Parse(args); err != nil {
			return err
		}
	}

	return errors.Wrap(cfg.Validate(), "invalid configuration")
}

// LoadFile applies the YAML file at path over cfg. Unknown keys are errors.
func LoadFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	if err := yaml.UnmarshalStrict(buf, cfg); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}
