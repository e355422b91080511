package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// Format specifies the output format for diagnostics.
type Format string

const (
	// FormatText produces human-readable, colorized output on terminals.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is below slog.LevelDebug and enabled by -vvv.
const LevelTrace = slog.LevelDebug - 4

// Config holds the configuration for creating a diagnostics logger.
type Config struct {
	// Level sets the minimum level. Records below it are discarded.
	Level slog.Level
	// Format selects text or JSON output.
	Format Format
	// Output is where records are written. Defaults to os.Stderr.
	Output io.Writer
}

// ParseFormat converts a --log-format value. Unknown values yield FormatText
// and false.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return FormatText, false
	}
}

// NewHandlerFor returns the slog.Handler for cfg without wrapping it in a
// logger, so callers can combine it with others in a MultiHandler.
func NewHandlerFor(cfg Config) slog.Handler {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	if cfg.Format == FormatJSON {
		return slog.NewJSONHandler(output, opts)
	}
	return NewHandler(output, opts)
}

// New creates a diagnostics logger with the given configuration.
func New(cfg Config) *slog.Logger {
	return slog.New(NewHandlerFor(cfg))
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromVerbosity maps the count of -v flags to a level: none shows
// warnings, -v info, -vv debug and -vvv or more trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// testWriter adapts testing.TB to io.Writer.
type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest creates a trace-level logger writing to the test log. Output shows
// only for failing tests or with -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
