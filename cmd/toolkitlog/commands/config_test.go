package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

func readConfigFile(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var values map[string]any
	require.NoError(t, yaml.Unmarshal(data, &values))
	return values
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		raw     string
		want    any
		wantErr bool
	}{
		{"version", "version", "2", 2, false},
		{"version not a number", "version", "two", nil, true},
		{"level normalized", "level", " Warning ", "warn", false},
		{"unknown level", "level", "loud", nil, true},
		{"console", "console", "false", false, false},
		{"console invalid", "console", "maybe", nil, true},
		{"color lowered", "color", "ALWAYS", "always", false},
		{"log file verbatim", "log_file", "~/logs/a.log", "~/logs/a.log", false},
		{"unknown key", "colour", "auto", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(tt.key, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigSet_Level(t *testing.T) {
	env := newTestEnv(t, nil)

	out, _, err := execute(t, "", "config", "set", "level", "WARN", "--config", env.configFile)
	require.NoError(t, err)
	assert.Equal(t, "Set level = warn\n", out)

	values := readConfigFile(t, env.configFile)
	assert.Equal(t, "warn", values["level"])
	assert.Equal(t, env.logFile, values["log_file"])

	out, _, err = execute(t, "", "config", "get", "level", "--config", env.configFile)
	require.NoError(t, err)
	assert.Equal(t, "warn\n", out)
}

func TestConfigSet_UnknownKey(t *testing.T) {
	env := newTestEnv(t, nil)

	_, _, err := execute(t, "", "config", "set", "colour", "auto", "--config", env.configFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))
}

func TestConfigSet_InvalidValueNotWritten(t *testing.T) {
	env := newTestEnv(t, nil)
	before, err := os.ReadFile(env.configFile)
	require.NoError(t, err)

	_, _, err = execute(t, "", "config", "set", "color", "purple", "--config", env.configFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "color must be")

	after, err := os.ReadFile(env.configFile)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestConfigGet_UnknownKey(t *testing.T) {
	env := newTestEnv(t, nil)

	_, _, err := execute(t, "", "config", "get", "nope", "--config", env.configFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownKey))
}

func TestConfigList(t *testing.T) {
	env := newTestEnv(t, map[string]any{"level": "verbose"})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := execute(t, "", "config", "list", "--config", env.configFile)
		require.NoError(t, err)

		var values map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &values))
		assert.Equal(t, "verbose", values["level"])
		assert.Equal(t, true, values["console"])
	})

	t.Run("toml", func(t *testing.T) {
		out, _, err := execute(t, "", "config", "list", "--format", "toml", "--config", env.configFile)
		require.NoError(t, err)
		assert.Contains(t, out, "level = ")
		assert.Contains(t, out, "verbose")
		assert.Contains(t, out, "console = true")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, "", "config", "list", "--format", "ini", "--config", env.configFile)
		require.Error(t, err)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	})
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, _, err := execute(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	values := readConfigFile(t, path)
	assert.Equal(t, "info", values["level"])
	assert.Equal(t, "auto", values["color"])

	out, _, err = execute(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestConfigInit_Force(t *testing.T) {
	env := newTestEnv(t, map[string]any{"level": "error"})

	_, _, err := execute(t, "", "config", "init", "--force", "--config", env.configFile)
	require.NoError(t, err)

	assert.Equal(t, "info", readConfigFile(t, env.configFile)["level"])
}

func TestConfigLevel(t *testing.T) {
	t.Run("by argument", func(t *testing.T) {
		env := newTestEnv(t, nil)

		out, _, err := execute(t, "", "config", "level", "Error", "--config", env.configFile)
		require.NoError(t, err)
		assert.Equal(t, "Minimum level: error\n", out)
		assert.Equal(t, "error", readConfigFile(t, env.configFile)["level"])
	})

	t.Run("by prompt", func(t *testing.T) {
		env := newTestEnv(t, nil)

		out, _, err := execute(t, "3\n", "config", "level", "--config", env.configFile)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(out, "Minimum level: info\n"), "got %q", out)
		assert.Equal(t, "info", readConfigFile(t, env.configFile)["level"])
	})

	t.Run("prompt cancelled", func(t *testing.T) {
		env := newTestEnv(t, nil)

		out, _, err := execute(t, "", "config", "level", "--config", env.configFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Level unchanged")
		assert.Equal(t, "debug", readConfigFile(t, env.configFile)["level"])
	})
}

func TestConfigEdit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell editor")
	}

	t.Run("valid after edit", func(t *testing.T) {
		env := newTestEnv(t, nil)
		t.Setenv("EDITOR", "true")

		out, _, err := execute(t, "", "config", "edit", "--config", env.configFile)
		require.NoError(t, err)
		assert.Contains(t, out, "Location: "+env.configFile)
	})

	t.Run("invalid after edit", func(t *testing.T) {
		env := newTestEnv(t, nil)
		script := filepath.Join(t.TempDir(), "breaker.sh")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'color: purple' >> \"$1\"\n"), 0o700))
		t.Setenv("EDITOR", script)

		_, _, err := execute(t, "", "config", "edit", "--config", env.configFile)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		t.Setenv("EDITOR", "true")

		_, _, err := execute(t, "", "config", "edit", "--config", path)
		require.Error(t, err)
	})
}
