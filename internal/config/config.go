package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/toolkitlog/internal/paths"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "TOOLKITLOG"

// Configuration keys.
const (
	KeyVersion = "version"
	KeyLevel   = "level"
	KeyLogFile = "log_file"
	KeyConsole = "console"
	KeyColor   = "color"
)

// Color modes for the terminal sink.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int    `mapstructure:"version" yaml:"version" toml:"version"`
	Level   string `mapstructure:"level" yaml:"level" toml:"level"`
	LogFile string `mapstructure:"log_file" yaml:"log_file" toml:"log_file"`
	Console bool   `mapstructure:"console" yaml:"console" toml:"console"`
	Color   string `mapstructure:"color" yaml:"color" toml:"color"`
}

// Keys returns the configuration keys toolkitlog manages, in display order.
func Keys() []string {
	return []string{KeyVersion, KeyLevel, KeyLogFile, KeyConsole, KeyColor}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: 1,
		Level:   logger.LevelInfo.String(),
		LogFile: paths.DefaultLogFile(),
		Console: true,
		Color:   ColorAuto,
	}
}

// Init initializes Viper with defaults, search paths and environment
// overrides. Call it once at startup before Load.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault(KeyVersion, def.Version)
	viper.SetDefault(KeyLevel, def.Level)
	viper.SetDefault(KeyLogFile, def.LogFile)
	viper.SetDefault(KeyConsole, def.Console)
	viper.SetDefault(KeyColor, def.Color)
}

// Load reads the configuration file. With an empty path the default
// locations are searched and a missing file yields the defaults; with an
// explicit path a missing file is an error.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Defaults apply.
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	expanded, err := paths.ExpandHome(cfg.LogFile)
	if err != nil {
		return nil, errors.Wrap(err, "expanding log_file")
	}
	cfg.LogFile = expanded

	return &cfg, nil
}

// MinLevel parses the configured level.
func (c *Config) MinLevel() (logger.Level, error) {
	return logger.ParseLevel(c.Level)
}

// Map returns the configuration keyed by configuration key, for writing
// and listing.
func (c *Config) Map() map[string]any {
	return map[string]any{
		KeyVersion: c.Version,
		KeyLevel:   c.Level,
		KeyLogFile: c.LogFile,
		KeyConsole: c.Console,
		KeyColor:   c.Color,
	}
}

// Current builds a Config from the values Viper currently holds, including
// values changed with viper.Set.
func Current() *Config {
	return &Config{
		Version: viper.GetInt(KeyVersion),
		Level:   viper.GetString(KeyLevel),
		LogFile: viper.GetString(KeyLogFile),
		Console: viper.GetBool(KeyConsole),
		Color:   viper.GetString(KeyColor),
	}
}
