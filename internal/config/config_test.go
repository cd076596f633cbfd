package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetOutput(io.Discard)
	return f
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, Load(newFlagSet(), nil, &cfg))

	assert.Equal(t, Config{
		ArenaSize: 4 * datasize.MB,
		Workers:   4,
		Parse:     ParseConfig{MaxDepth: 512},
		Format:    FormatConfig{Indent: 2},
		Log:       LogConfig{Level: "info", Format: "logfmt"},
	}, cfg)
	assert.False(t, cfg.Profile.Enabled())
}

func TestFlags(t *testing.T) {
	var cfg Config
	f := newFlagSet()
	args := []string{
		"-arena.size=64KB",
		"-workers=8",
		"-write",
		"-parse.max-depth=16",
		"-parse.allow-bare-exponent",
		"-format.indent=4",
		"-format.escape-strings",
		"-format.precise-numbers",
		"-log.level=debug",
		"-log.format=json",
		"-profile.heap-text=heap.txt",
		"-metrics.textfile=metrics.prom",
		"a.json", "b.json",
	}
	require.NoError(t, Load(f, args, &cfg))

	assert.Equal(t, 64*datasize.KB, cfg.ArenaSize)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Write)
	assert.Equal(t, ParseConfig{MaxDepth: 16, AllowBareExponent: true}, cfg.Parse)
	assert.Equal(t, FormatConfig{Indent: 4, EscapeStrings: true, PreciseNumbers: true}, cfg.Format)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.True(t, cfg.Profile.Enabled())
	assert.Equal(t, "metrics.prom", cfg.Metrics.Textfile)
	assert.Equal(t, []string{"a.json", "b.json"}, f.Args())
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, `
arena_size: 1MB
workers: 2
parse:
  max_depth: 64
format:
  indent: 3
  escape_strings: true
log:
  level: warn
profile:
  heap_proto: heap.pb.gz
`)

	var cfg Config
	require.NoError(t, Load(newFlagSet(), []string{"-config.file=" + path}, &cfg))

	assert.Equal(t, datasize.MB, cfg.ArenaSize)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 64, cfg.Parse.MaxDepth)
	assert.Equal(t, FormatConfig{Indent: 3, EscapeStrings: true}, cfg.Format)
	assert.Equal(t, LogConfig{Level: "warn", Format: "logfmt"}, cfg.Log, "keys missing from the file keep their defaults")
	assert.Equal(t, "heap.pb.gz", cfg.Profile.HeapProto)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeFile(t, "workers: 2\narena_size: 1MB\nlog:\n  level: warn\n")

	var cfg Config
	args := []string{"-workers=6", "-config.file", path, "-log.level=error"}
	require.NoError(t, Load(newFlagSet(), args, &cfg))

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, datasize.MB, cfg.ArenaSize)
}

func TestConfigFileErrors(t *testing.T) {
	var cfg Config
	err := Load(newFlagSet(), []string{"-config.file=/does/not/exist.yaml"}, &cfg)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	path := writeFile(t, "workers: 2\nunknown_key: true\n")
	cfg = Config{}
	err = Load(newFlagSet(), []string{"-config.file=" + path}, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_key")

	path = writeFile(t, "arena_size: lots\n")
	cfg = Config{}
	require.Error(t, Load(newFlagSet(), []string{"-config.file=" + path}, &cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"zero workers", []string{"-workers=0"}, "invalid number of workers 0"},
		{"zero arena", []string{"-arena.size=0"}, "arena size must be positive"},
		{"negative depth", []string{"-parse.max-depth=-1"}, "invalid max depth -1"},
		{"negative indent", []string{"-format.indent=-2"}, "invalid indent -2"},
		{"bad level", []string{"-log.level=trace"}, `unrecognized log level "trace"`},
		{"bad format", []string{"-log.format=xml"}, `unrecognized log format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			err := Load(newFlagSet(), tt.args, &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestBadFlag(t *testing.T) {
	var cfg Config
	assert.Error(t, Load(newFlagSet(), []string{"-arena.size=huge"}, &cfg))
	assert.Error(t, Load(newFlagSet(), []string{"-no-such-flag"}, &Config{}))
}
