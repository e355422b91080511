package logger

import (
	"fmt"
)

// Sink is a destination for rendered log lines. Write is only ever called
// from the sink's own delivery goroutine, one line at a time and in the
// order the lines were logged.
//
// A sink that also implements io.Closer is closed by the Logger once it has
// been detached and its pending lines have been written.
type Sink interface {
	Write(line string) error
}

// Handle identifies an attached sink. The zero Handle never refers to a sink.
type Handle struct {
	id uint64
}

// Valid reports whether h was returned by a successful Attach.
func (h Handle) Valid() bool {
	return h.id != 0
}

func (h Handle) String() string {
	return fmt.Sprintf("sink#%d", h.id)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line string) error

// Write calls f(line).
func (f SinkFunc) Write(line string) error {
	return f(line)
}

func sinkName(s Sink) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
