// Package logging builds the slog diagnostics logger used by the toolkitlog
// CLI and handed to the logging core as its fallback channel.
//
// This is distinct from [github.com/thoreinstein/toolkitlog/pkg/logger]:
// that package carries the user-facing log lines to files and output
// channels, while this one reports on the tool itself (sink failures,
// configuration problems, -v tracing).
//
//	diag := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//
// Use [ForTest] in tests and [NewDiscard] for quiet mode.
package logging
