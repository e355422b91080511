package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

func TestInit(t *testing.T) {
	viper.Reset()
	Init()

	assert.Equal(t, 1, viper.GetInt(KeyVersion))
	assert.Equal(t, "info", viper.GetString(KeyLevel))
	assert.Equal(t, ColorAuto, viper.GetString(KeyColor))
	assert.True(t, viper.GetBool(KeyConsole))
	assert.NotEmpty(t, viper.GetString(KeyLogFile))
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	logPath := filepath.Join(dir, "out.log")
	content := []byte("level: Error\nlog_file: " + logPath + "\nconsole: false\n")
	require.NoError(t, os.WriteFile(configPath, content, 0o600))

	Init()
	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "Error", cfg.Level)
	assert.Equal(t, logPath, cfg.LogFile)
	assert.False(t, cfg.Console)
	assert.Equal(t, 1, cfg.Version, "defaults fill unset keys")

	lvl, err := cfg.MinLevel()
	require.NoError(t, err)
	assert.Equal(t, logger.LevelError, lvl)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	viper.Reset()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("level: [unclosed\n"), 0o600))

	Init()
	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Setenv("TOOLKITLOG_LEVEL", "debug")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("level: warn\n"), 0o600))

	Init()
	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	viper.Reset()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_file: ~/toolkit.log\n"), 0o600))

	Init()
	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "toolkit.log"), cfg.LogFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default is valid", func(*Config) {}, nil},
		{"empty log file disables sink", func(c *Config) { c.LogFile = "" }, nil},
		{"version too low", func(c *Config) { c.Version = 0 }, ErrVersionTooLow},
		{"unknown level", func(c *Config) { c.Level = "loud" }, logger.ErrUnknownLevel},
		{"bad color", func(c *Config) { c.Color = "rainbow" }, ErrInvalidColor},
		{"null byte path", func(c *Config) { c.LogFile = "bad\x00path" }, ErrInvalidPath},
		{"dot path", func(c *Config) { c.LogFile = "." }, ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := Validate(cfg)

			if tt.wantErr == nil {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.True(t, errors.Is(errs[0], tt.wantErr), "got %v", errs[0])
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	assert.Len(t, Validate(nil), 1)
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: KeyColor, Value: "rainbow", Err: ErrInvalidColor}
	assert.Equal(t, "color: color must be auto, always or never: rainbow", err.Error())
}

func TestCurrent(t *testing.T) {
	viper.Reset()
	Init()
	viper.Set(KeyLevel, "verbose")

	cfg := Current()
	assert.Equal(t, "verbose", cfg.Level)
	assert.Equal(t, cfg.Level, cfg.Map()[KeyLevel])
	assert.Len(t, cfg.Map(), len(Keys()))
}
