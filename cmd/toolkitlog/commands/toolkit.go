package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/internal/config"
	"github.com/thoreinstein/toolkitlog/internal/console"
	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// currentConfig returns the configuration loaded at startup, or the
// defaults when the command runs without initConfig (as in tests).
func currentConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return config.Current()
}

// newToolkitLogger builds the one Logger a command uses, with the file sink
// and terminal sink the configuration asks for. Callers must Dispose it.
func newToolkitLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, error) {
	minLevel, err := cfg.MinLevel()
	if err != nil {
		return nil, errors.NewConfigError(errors.Wrapf(err, "config %s", config.KeyLevel))
	}

	diag := logFromCmd(cmd)
	l := logger.New(minLevel, logger.WithDiagnostics(diag))

	if cfg.LogFile != "" {
		if _, err := l.AttachFile(cfg.LogFile); err != nil {
			return nil, errors.Wrap(err, "attaching file sink")
		}
		diag.Debug("file sink attached", "path", cfg.LogFile)
	}

	if cfg.Console {
		if _, err := l.Attach(console.New(cmd.OutOrStdout(), cfg.Color)); err != nil {
			return nil, errors.Wrap(err, "attaching console sink")
		}
		diag.Debug("console sink attached", "color", cfg.Color)
	}

	if l.Sinks() == 0 {
		diag.Warn("no log sinks configured; messages are dropped",
			"hint", "set log_file or console in the config")
	}

	return l, nil
}

// disposeLogger disposes l and converts a failure into a system error.
func disposeLogger(l *logger.Logger) error {
	if err := l.Dispose(); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "closing log sinks"),
			"Check that the log file is writable")
	}
	return nil
}

// messageLevel parses a --level flag value.
func messageLevel(name string) (logger.Level, error) {
	level, err := logger.ParseLevel(name)
	if err != nil {
		return level, errors.NewUserError(err, "Run 'toolkitlog levels' to see valid levels")
	}
	return level, nil
}
