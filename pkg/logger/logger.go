package logger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Logger fans leveled messages out to any number of attached sinks.
//
// Every public method is safe for concurrent use. Calls are serialized, so
// lines logged by sequential calls reach each sink in call order. Delivery
// to a sink happens on that sink's own goroutine: a log call returns as soon
// as the line is queued, and a slow or failing sink does not hold up the
// caller or the other sinks.
type Logger struct {
	opts     options
	minLevel *atomic.Int32

	mu       sync.Mutex
	sinks    map[uint64]*delivery
	nextID   uint64
	disposed bool
}

// New returns a Logger with no sinks that emits messages at minLevel and above.
func New(minLevel Level, opts ...Option) *Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Logger{
		opts:     o,
		minLevel: atomic.NewInt32(int32(minLevel)),
		sinks:    make(map[uint64]*delivery),
	}
}

// NewFromString is New with the minimum level given by name, as accepted
// by ParseLevel.
func NewFromString(level string, opts ...Option) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return New(lvl, opts...), nil
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return Level(l.minLevel.Load())
}

// SetLevel changes the minimum level. It affects calls made after it returns.
func (l *Logger) SetLevel(level Level) {
	l.minLevel.Store(int32(level))
}

// Enabled reports whether a message at level would currently be emitted.
func (l *Logger) Enabled(level Level) bool {
	return ShouldLog(l.Level(), level)
}

// Attach registers s and starts delivering lines to it.
func (l *Logger) Attach(s Sink) (Handle, error) {
	if s == nil {
		return Handle{}, ErrNilSink
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disposed {
		return Handle{}, &DisposedLoggerError{Op: "attach"}
	}

	l.nextID++
	h := Handle{id: l.nextID}
	d := newDelivery(s, l.report)
	l.sinks[h.id] = d
	go d.run()

	return h, nil
}

// AttachFile attaches a FileSink writing to path. The file is created on
// the first delivered line.
func (l *Logger) AttachFile(path string) (Handle, error) {
	return l.Attach(NewFileSink(path))
}

// AttachChannel attaches an OutputChannelSink writing to ch.
func (l *Logger) AttachChannel(ch OutputChannel) (Handle, error) {
	return l.Attach(NewOutputChannelSink(ch))
}

// Detach removes the sink identified by h. Lines already queued for it are
// still written before it is closed. Unknown or already detached handles
// are ignored.
func (l *Logger) Detach(h Handle) {
	l.mu.Lock()
	d, ok := l.sinks[h.id]
	delete(l.sinks, h.id)
	l.mu.Unlock()

	if ok {
		d.close()
	}
}

// Sinks returns the number of attached sinks.
func (l *Logger) Sinks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sinks)
}

// Stats returns delivery counters for the sink identified by h.
func (l *Logger) Stats(h Handle) (SinkStats, bool) {
	l.mu.Lock()
	d, ok := l.sinks[h.id]
	l.mu.Unlock()

	if !ok {
		return SinkStats{}, false
	}
	return d.stats(), true
}

// Debug logs parts at LevelDebug.
func (l *Logger) Debug(parts ...any) error {
	return l.Log(LevelDebug, parts...)
}

// Verbose logs parts at LevelVerbose.
func (l *Logger) Verbose(parts ...any) error {
	return l.Log(LevelVerbose, parts...)
}

// Info logs parts at LevelInfo.
func (l *Logger) Info(parts ...any) error {
	return l.Log(LevelInfo, parts...)
}

// Warn logs parts at LevelWarn.
func (l *Logger) Warn(parts ...any) error {
	return l.Log(LevelWarn, parts...)
}

// Error logs parts at LevelError.
func (l *Logger) Error(parts ...any) error {
	return l.Log(LevelError, parts...)
}

// Log joins parts with single spaces and queues the resulting line for
// every attached sink if level passes the minimum level.
//
// The only error Log returns is a *DisposedLoggerError, after Dispose.
// Sink failures are reported through WithDiagnostics and WithErrorHandler.
// Parts are rendered while the Logger is locked, so their String methods
// must not log to the same Logger.
func (l *Logger) Log(level Level, parts ...any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disposed {
		return &DisposedLoggerError{Op: level.String()}
	}
	if !l.Enabled(level) || len(l.sinks) == 0 {
		return nil
	}

	rec := Record{
		Level:   level,
		Time:    l.opts.now(),
		Message: Join(parts...),
	}
	line := rec.Line()
	for _, d := range l.sinks {
		d.enqueue(line)
	}
	return nil
}

// Flush blocks until every line queued so far for the attached sinks has
// been written, or ctx is done.
func (l *Logger) Flush(ctx context.Context) error {
	l.mu.Lock()
	barriers := make(map[string]<-chan struct{}, len(l.sinks))
	for id, d := range l.sinks {
		barriers[Handle{id: id}.String()+" "+d.name] = d.barrier()
	}
	l.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for name, b := range barriers {
		g.Go(func() error {
			select {
			case <-b:
				return nil
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "flushing %s", name)
			}
		})
	}
	return g.Wait()
}

// Dispose permanently shuts the Logger down. Every sink is detached, its
// queued lines are written and it is closed if it is an io.Closer; Dispose
// waits for this up to the dispose timeout. Later calls to leveled methods
// and Attach fail with a *DisposedLoggerError.
//
// Dispose is idempotent: only the first call does anything, later calls
// return nil.
func (l *Logger) Dispose() error {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return nil
	}
	l.disposed = true
	sinks := l.sinks
	l.sinks = nil
	l.mu.Unlock()

	for _, d := range sinks {
		d.close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.opts.disposeTimeout)
	defer cancel()

	var result *multierror.Error
	for _, d := range sinks {
		if err := d.wait(ctx); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "disposing %s", d.name))
		}
	}
	return result.ErrorOrNil()
}

// Disposed reports whether Dispose has been called.
func (l *Logger) Disposed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.disposed
}

func (l *Logger) report(err *SinkWriteError, first bool) {
	if l.opts.onError != nil {
		l.opts.onError(err)
	}

	level := slog.LevelDebug
	if first {
		level = slog.LevelWarn
	}
	l.opts.diagnostics.Log(context.Background(), level, "log sink write failed",
		"sink", err.Sink,
		"error", err.Err,
	)
}
