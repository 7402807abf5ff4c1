package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "actionlog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
seed = "books.yaml"

[logging]
level = "debug"

[library]
member = "alice"

[route]
name = "loop"
start = "West"

[metrics]
enabled = true

[script]
timeout = "1m30s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "books.yaml", cfg.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "alice", cfg.Library.Member)
	assert.Equal(t, "loop", cfg.Route.Name)
	assert.Equal(t, "West", cfg.Route.Start)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Script.Timeout.Duration)
	// Untouched sections keep their defaults.
	assert.Equal(t, "you", cfg.Chat.User)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[library]
member = "alice"
`)
	t.Setenv("ACTIONLOG_LIBRARY_MEMBER", "bob")
	t.Setenv("ACTIONLOG_LOGGING_LEVEL", "warn")
	t.Setenv("ACTIONLOG_SCRIPT_TIMEOUT", "250ms")
	t.Setenv("ACTIONLOG_METRICS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.Library.Member)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Script.Timeout.Duration)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \n")

	_, err := Load(path)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
	assert.Equal(t, path, perr.Path)
	assert.Greater(t, perr.Line, 0)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[library]\nmembr = \"typo\"\n")

	_, err := Load(path)

	var perr *ParseError
	assert.True(t, errors.As(err, &perr), "got %T: %v", err, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"no member", func(c *Config) { c.Library.Member = "" }, "library.member"},
		{"no user", func(c *Config) { c.Chat.User = "" }, "chat.user"},
		{"blank member", func(c *Config) { c.Library.Member = "  " }, "library.member"},
		{"blank user", func(c *Config) { c.Chat.User = "\t" }, "chat.user"},
		{"zero timeout", func(c *Config) { c.Script.Timeout = Duration{} }, "script.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrValidationFailed)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("ACTIONLOG_SCRIPT_TIMEOUT", "soon")
	_, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestParseErrorFormat(t *testing.T) {
	bad := errors.New("bad")
	assert.Equal(t, "a.toml:3:7: bad", (&ParseError{Path: "a.toml", Line: 3, Column: 7, Err: bad}).Error())
	assert.Equal(t, "a.toml: bad", (&ParseError{Path: "a.toml", Err: bad}).Error())
	assert.ErrorIs(t, &ParseError{Path: "a.toml", Err: bad}, bad)
}
