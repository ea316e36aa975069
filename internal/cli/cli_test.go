package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional root path", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"./build"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "./build", cfg.RootPath)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("root flag wins over positional", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-root", "a", "b"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a", cfg.RootPath)
	})

	t.Run("all options", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{
			"-r", "build",
			"-target", "src/gen:spindle_gen",
			"-workers", "2",
			"-target-timeout", "30s",
			"-dry-run",
			"-status-port", "9090",
			"-log-format", "json",
			"-log-level", "debug",
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, "src/gen:spindle_gen", cfg.TargetAddr)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, 30*time.Second, cfg.TargetTimeout)
		assert.True(t, cfg.DryRun)
		assert.Equal(t, 9090, cfg.StatusPort)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no root prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-format", "xml", "build"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud", "build"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-bogus"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid worker count", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-workers", "0", "build"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "Workers")
	})
}

func TestParseEnvironmentDefaults(t *testing.T) {
	t.Run("env provides defaults", func(t *testing.T) {
		t.Setenv("BUILDGRID_WORKERS", "3")
		t.Setenv("BUILDGRID_LOG_LEVEL", "warn")
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"build"}, &out)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("flags win over env", func(t *testing.T) {
		t.Setenv("BUILDGRID_WORKERS", "3")
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-workers", "5", "build"}, &out)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Workers)
	})

	t.Run("malformed env is rejected", func(t *testing.T) {
		t.Setenv("BUILDGRID_WORKERS", "many")
		var out bytes.Buffer
		_, _, err := Parse([]string{"build"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})
}
