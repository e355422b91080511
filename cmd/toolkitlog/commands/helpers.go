package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/toolkitlog/internal/logging"
)

// logFromCmd returns the diagnostics logger set up by setupLogging.
func logFromCmd(cmd *cobra.Command) *slog.Logger {
	return logging.FromContext(cmd.Context())
}
