// Package config loads actionlog settings.
//
// Settings are resolved in three layers, later layers overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, if one is given
//  3. ACTIONLOG_* environment variables
//
// Example file:
//
//	seed = "catalogue.yaml"
//
//	[logging]
//	level = "debug"
//
//	[library]
//	member = "alice"
//
//	[script]
//	timeout = "2s"
//
// The matching environment variables are ACTIONLOG_SEED,
// ACTIONLOG_LOGGING_LEVEL, ACTIONLOG_LIBRARY_MEMBER and
// ACTIONLOG_SCRIPT_TIMEOUT.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/actionlog/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ACTIONLOG_"

// Config holds all settings.
type Config struct {
	// Seed is a YAML file with the library catalogue and routes.
	// Empty means the built-in demo data.
	Seed string `toml:"seed" env:"SEED"`

	Logging LoggingConfig `toml:"logging" envPrefix:"LOGGING_"`
	Library LibraryConfig `toml:"library" envPrefix:"LIBRARY_"`
	Route   RouteConfig   `toml:"route" envPrefix:"ROUTE_"`
	Chat    ChatConfig    `toml:"chat" envPrefix:"CHAT_"`
	Metrics MetricsConfig `toml:"metrics" envPrefix:"METRICS_"`
	Script  ScriptConfig  `toml:"script" envPrefix:"SCRIPT_"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `toml:"level" env:"LEVEL"`
}

// LibraryConfig controls the library session.
type LibraryConfig struct {
	// Member is the name borrows and returns are made under.
	Member string `toml:"member" env:"MEMBER"`
}

// RouteConfig controls the route session.
type RouteConfig struct {
	// Name selects a route from the seed data.
	Name string `toml:"name" env:"NAME"`
	// Start is the station the cursor starts on.
	Start string `toml:"start" env:"START"`
}

// ChatConfig controls the chat session.
type ChatConfig struct {
	User string `toml:"user" env:"USER"`
}

// MetricsConfig controls operation counters.
type MetricsConfig struct {
	// Enabled prints counters when a session ends.
	Enabled bool `toml:"enabled" env:"ENABLED"`
}

// ScriptConfig controls Lua scripts.
type ScriptConfig struct {
	// Timeout bounds a single script run.
	Timeout Duration `toml:"timeout" env:"TIMEOUT"`
}

// Duration is a time.Duration read from strings such as "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Library: LibraryConfig{Member: "you"},
		Route:   RouteConfig{Name: "city"},
		Chat:    ChatConfig{User: "you"},
		Script:  ScriptConfig{Timeout: Duration{5 * time.Second}},
	}
}

// Load resolves settings from defaults, the TOML file at path (skipped if
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := Decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML data over cfg. Unknown keys are rejected so typos
// surface instead of being ignored.
func Decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Validate checks settings that cannot be expressed by their types.
func (c Config) Validate() error {
	if !slices.Contains(logging.Levels, c.Logging.Level) {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
		}
	}
	if strings.TrimSpace(c.Library.Member) == "" {
		return &ValidationError{Path: "library.member", Message: "must not be empty", Value: `""`}
	}
	if strings.TrimSpace(c.Chat.User) == "" {
		return &ValidationError{Path: "chat.user", Message: "must not be empty", Value: `""`}
	}
	if c.Script.Timeout.Duration <= 0 {
		return &ValidationError{Path: "script.timeout", Message: "must be positive", Value: c.Script.Timeout}
	}
	return nil
}
