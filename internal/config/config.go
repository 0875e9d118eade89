// Package config loads the hxbind CLI configuration.
//
// Configuration is read from a YAML file:
//
//	log:
//	  level: warn     # debug | info | warn | error
//	  format: text    # text | json
//	output: text      # text | json | dump | manifest
//	strict: false     # exit non-zero when diagnostics are produced
//	key: ""           # manifest signing key
//
// Missing fields keep their defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputDump     = "dump"
	OutputManifest = "manifest"
)

// Config is the CLI configuration.
type Config struct {
	Log    Log    `yaml:"log"`
	Output string `yaml:"output"`
	Strict bool   `yaml:"strict"`
	Key    string `yaml:"key"`
}

// Log configures the diagnostic logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:    Log{Level: "warn", Format: "text"},
		Output: OutputText,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// The result is not validated so callers can apply overrides first; call
// Validate before use.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputDump, OutputManifest:
	default:
		return fmt.Errorf("config: unknown output %q", c.Output)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Output == OutputManifest && c.Key == "" {
		return fmt.Errorf("config: output %q requires a key", OutputManifest)
	}
	return nil
}

// NewLogger creates a logger from the log settings. It does not set the
// global logger. Levels are checked by Validate; anything else logs at info.
func (l Log) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch l.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
