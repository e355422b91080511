package logger

import (
	"log/slog"
	"time"
)

// DefaultDisposeTimeout bounds how long Dispose waits for sinks to drain.
const DefaultDisposeTimeout = 5 * time.Second

type options struct {
	diagnostics    *slog.Logger
	now            func() time.Time
	disposeTimeout time.Duration
	onError        func(*SinkWriteError)
}

func defaultOptions() options {
	return options{
		diagnostics:    slog.New(slog.DiscardHandler),
		now:            time.Now,
		disposeTimeout: DefaultDisposeTimeout,
	}
}

// Option configures a Logger.
type Option func(*options)

// WithDiagnostics sets the fallback logger that sink write failures are
// reported to. By default they are discarded.
func WithDiagnostics(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.diagnostics = l
		}
	}
}

// WithClock overrides the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithDisposeTimeout bounds how long Dispose waits for attached sinks to
// write their pending lines. Non-positive values keep the default.
func WithDisposeTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.disposeTimeout = d
		}
	}
}

// WithErrorHandler registers fn to receive every failed sink write. fn runs
// on the failing sink's delivery goroutine and must not block for long.
func WithErrorHandler(fn func(*SinkWriteError)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
