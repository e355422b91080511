package logger

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDisposed is matched by every error returned from a Logger after Dispose.
	ErrDisposed = errors.New("logger is disposed")

	// ErrNilSink is returned when attaching a nil sink.
	ErrNilSink = errors.New("sink is nil")

	// ErrSinkClosed is returned by a sink written after it was closed.
	ErrSinkClosed = errors.New("sink is closed")
)

// DisposedLoggerError reports use of a Logger after Dispose. It signals a
// programming error in the caller and is always returned synchronously.
type DisposedLoggerError struct {
	// Op is the method that was called, e.g. "info" or "attach".
	Op string
}

func (e *DisposedLoggerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, ErrDisposed.Error())
}

// Is makes DisposedLoggerError match ErrDisposed.
func (e *DisposedLoggerError) Is(target error) bool {
	return target == ErrDisposed
}

// SinkWriteError is a failed delivery of a record to one sink. It is never
// returned to the caller of a leveled method; see WithErrorHandler.
type SinkWriteError struct {
	// Sink names the sink that failed.
	Sink string
	// Line is the rendered line that could not be written.
	Line string
	// Err is the underlying failure.
	Err error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("writing to sink %s: %v", e.Sink, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}
