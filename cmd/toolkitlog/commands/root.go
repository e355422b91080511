// Package commands implements the CLI commands for toolkitlog.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/cmd"
	"github.com/thoreinstein/toolkitlog/internal/config"
	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// diagFile holds the path of the optional JSON diagnostics file.
var diagFile string

// configPath holds the value of the --config flag.
var configPath string

// loadedConfig is the configuration read at startup.
var loadedConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// openDiagFile is closed by Execute.
var openDiagFile *os.File

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase diagnostics verbosity (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error diagnostics")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"diagnostics format: text, json")
	rootCmd.PersistentFlags().StringVar(&diagFile, "diag-file", "",
		"also write diagnostics to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: $XDG_CONFIG_HOME/toolkitlog/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("toolkitlog version {{.Version}}\n")

	// Errors are printed by main with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "toolkitlog",
	Short: "Leveled logging to files and terminals",
	Long: `toolkitlog writes leveled log lines to a log file and the terminal.

Each line is rendered as "<timestamp> [LEVEL]: <message>". Lines below
the configured minimum level are dropped. The minimum level, log file
and terminal output are read from ~/.config/toolkitlog/config.yaml and
can be overridden with TOOLKITLOG_* environment variables.`,
	Example: `  # Log a message at info level
  toolkitlog log "deploy finished in" 42s

  # Log each line of a command's output
  make build 2>&1 | toolkitlog pipe --level verbose

  # Change the minimum level interactively
  toolkitlog config level

  See Also: toolkitlog levels, toolkitlog config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the diagnostics logger from the verbosity flags
// and stores it in the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	format, ok := logging.ParseFormat(logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat),
			"Use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(config.EnvPrefix + "_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handler := logging.NewHandlerFor(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})

	if diagFile != "" && openDiagFile == nil {
		f, err := os.OpenFile(diagFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open diagnostics file")
		}
		openDiagFile = f
	}
	if openDiagFile != nil {
		handler = logging.NewMultiHandler(handler, slog.NewJSONHandler(openDiagFile, &slog.HandlerOptions{
			Level: level,
		}))
	}

	diag := slog.New(handler)
	slog.SetDefault(diag)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, diag))

	return nil
}

// checkConfig reports a config load failure, except for commands that
// must work without a readable config.
func checkConfig(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "init":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if openDiagFile != nil {
			_ = openDiagFile.Close()
			openDiagFile = nil
		}
	}()
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
