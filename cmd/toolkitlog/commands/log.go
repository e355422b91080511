package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

// logLevel holds the value of the log --level flag.
var logLevel string

func init() {
	logCmd.Flags().StringVarP(&logLevel, "level", "l", "info",
		"level of the message: debug, verbose, info, warn, error")
	rootCmd.AddCommand(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log [--level L] <parts...>",
	Short: "Log one message",
	Long: `Log one message built from the arguments joined by single spaces.

The message is dropped if its level is below the configured minimum.`,
	Example: `  # Log at info level
  toolkitlog log "cache warmed"

  # Log an error
  toolkitlog log --level error "upload failed:" timeout

See Also: toolkitlog pipe, toolkitlog levels`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.NewUserError(errors.ErrMissingMessage, "Usage: toolkitlog log [--level L] <parts...>")
	}

	level, err := messageLevel(logLevel)
	if err != nil {
		return err
	}

	l, err := newToolkitLogger(cmd, currentConfig())
	if err != nil {
		return err
	}

	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = a
	}
	if err := l.Log(level, parts...); err != nil {
		_ = l.Dispose()
		return errors.Wrap(err, "logging message")
	}

	return disposeLogger(l)
}
