// Package errors provides error handling conventions for the toolkitlog CLI.
//
// The package re-exports the wrapping helpers of
// [github.com/cockroachdb/errors] so callers only need a single import, and
// defines sentinel errors, an ExitError type for CLI exit code handling, and
// exit code constants following standard Unix conventions.
//
// # Sentinel Errors
//
//	if errors.Is(err, tkerrors.ErrInvalidConfig) {
//	    // handle bad configuration
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid level, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := tkerrors.NewUserError(logger.ErrUnknownLevel, "Run: toolkitlog levels")
//	var exitErr *tkerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
