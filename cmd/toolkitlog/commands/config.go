package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/toolkitlog/internal/cli/prompt"
	"github.com/thoreinstein/toolkitlog/internal/config"
	"github.com/thoreinstein/toolkitlog/internal/doctor"
	"github.com/thoreinstein/toolkitlog/internal/editor"
	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/internal/logging"
	"github.com/thoreinstein/toolkitlog/internal/paths"
	"github.com/thoreinstein/toolkitlog/pkg/fileutil"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// listFormat holds the value of the config list --format flag.
var listFormat string

// initForce holds the value of the config init --force flag.
var initForce bool

// newSelector builds the level picker. Tests replace it.
var newSelector = func(cmd *cobra.Command) *prompt.Selector {
	if f, ok := cmd.InOrStdin().(*os.File); ok && logging.IsTTY(f) {
		return prompt.NewSelector()
	}
	return prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
}

func init() {
	configListCmd.Flags().StringVarP(&listFormat, "format", "f", "yaml", "output format: yaml, toml")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configLevelCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage toolkitlog configuration",
	Long: `Manage toolkitlog configuration stored in ~/.config/toolkitlog/config.yaml.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  toolkitlog config

  # Only log warnings and errors
  toolkitlog config set level warn

  # Write to a different file
  toolkitlog config set log_file ~/logs/toolkit.log

See Also: toolkitlog levels`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Keys: ` + strings.Join(config.Keys(), ", "),
	Example: `  toolkitlog config get level

See Also: toolkitlog config set, toolkitlog config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

Level names are case-insensitive and stored in lower case. The whole
configuration is validated before it is written.`,
	Example: `  toolkitlog config set level verbose
  toolkitlog config set console false
  toolkitlog config set color never

See Also: toolkitlog config get, toolkitlog config level`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML or TOML format.`,
	Example: `  toolkitlog config list
  toolkitlog config list --format toml

See Also: toolkitlog config get, toolkitlog config set`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write the default configuration to the config file. An existing
file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configLevelCmd = &cobra.Command{
	Use:   "level [name]",
	Short: "Change the minimum log level",
	Long: `Change the minimum log level. Without a name, pick one interactively.`,
	Example: `  # Pick from a list
  toolkitlog config level

  # Set directly
  toolkitlog config level error`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigLevel,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. The file is validated after
the editor exits.`,
	Example: `  # Open config in default editor
  toolkitlog config edit

  # Open with specific editor
  EDITOR=nano toolkitlog config edit

See Also: toolkitlog config list, toolkitlog doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func unknownKey(key string) error {
	return errors.NewUserError(errors.Wrapf(errors.ErrUnknownKey, "%q", key),
		"Valid keys: "+strings.Join(config.Keys(), ", "))
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !slices.Contains(config.Keys(), key) {
		return unknownKey(key)
	}

	fmt.Fprintln(cmd.OutOrStdout(), viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	value, err := parseValue(key, raw)
	if err != nil {
		return err
	}

	viper.Set(key, value)
	if err := writeConfig(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	logFromCmd(cmd).Debug("config updated", "key", key, "file", configFileTarget())
	return nil
}

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, raw string) (any, error) {
	switch key {
	case config.KeyVersion:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewUserError(errors.Wrapf(err, "version %q", raw), "version must be a number")
		}
		return n, nil
	case config.KeyLevel:
		level, err := logger.ParseLevel(raw)
		if err != nil {
			return nil, errors.NewUserError(err, "Run 'toolkitlog levels' to see valid levels")
		}
		return level.String(), nil
	case config.KeyConsole:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.NewUserError(errors.Wrapf(err, "console %q", raw), "console must be true or false")
		}
		return b, nil
	case config.KeyLogFile:
		return raw, nil
	case config.KeyColor:
		return strings.ToLower(raw), nil
	default:
		return nil, unknownKey(key)
	}
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	values := config.Current().Map()

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(listFormat) {
	case "yaml", "":
		data, err = yaml.Marshal(values)
	case "toml":
		data, err = toml.Marshal(values)
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", listFormat),
			"Use --format yaml or --format toml")
	}
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	_, err = cmd.OutOrStdout().Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	target := configFileTarget()

	if _, err := os.Stat(target); err == nil && !initForce {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at %s\n", target)
		return nil
	}

	if err := writeConfigValues(target, config.Default().Map()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
	return nil
}

func runConfigLevel(cmd *cobra.Command, args []string) error {
	current, err := logger.ParseLevel(viper.GetString(config.KeyLevel))
	if err != nil {
		current = logger.LevelInfo
	}

	var chosen logger.Level
	if len(args) == 1 {
		if chosen, err = messageLevel(args[0]); err != nil {
			return err
		}
	} else {
		chosen, err = newSelector(cmd).FindLevel(current)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Level unchanged")
			return nil
		}
		if err != nil {
			return errors.NewUserError(err, "Run 'toolkitlog levels' to see valid levels")
		}
	}

	viper.Set(config.KeyLevel, chosen.String())
	if err := writeConfig(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Minimum level: %s\n", chosen)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	target := configFileTarget()

	if _, err := os.Stat(target); os.IsNotExist(err) {
		return errors.NewConfigError(errors.Newf("config file not found at %s", target))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", target)
	if err := editor.Open(cmd.Context(), target); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your preferred editor")
	}

	result := doctor.NewConfigCheck(target).Run(cmd.Context())
	if result.Status == doctor.SeverityError {
		return errors.NewUserError(errors.Mark(errors.New(result.Message), errors.ErrInvalidConfig),
			"Run 'toolkitlog config edit' again to correct it")
	}
	return nil
}

// configFileTarget returns the file config writes go to.
func configFileTarget() string {
	if configPath != "" {
		return configPath
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

// writeConfig validates the current viper configuration and writes it to
// the config file.
func writeConfig() error {
	cfg := config.Current()

	if errs := config.Validate(cfg); len(errs) > 0 {
		var merr *multierror.Error
		for _, err := range errs {
			merr = multierror.Append(merr, err)
		}
		return errors.NewUserError(errors.Mark(merr.ErrorOrNil(), errors.ErrInvalidConfig),
			"Run 'toolkitlog config list' to review the configuration")
	}

	return writeConfigValues(configFileTarget(), cfg.Map())
}

func writeConfigValues(path string, values map[string]any) error {
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := fileutil.AtomicWriteYAML(path, values); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}
	return nil
}
