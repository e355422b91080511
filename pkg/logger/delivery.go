package logger

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
)

// item is one entry in a sink's queue: either a line to write or a barrier
// that is closed once every line queued before it has been written.
type item struct {
	line    string
	barrier chan struct{}
}

// delivery owns the FIFO queue and worker goroutine of one attached sink.
// Enqueue never blocks on the sink; the worker writes lines one at a time in
// queue order.
type delivery struct {
	sink   Sink
	name   string
	report func(err *SinkWriteError, first bool)

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []item
	closed bool

	done     chan struct{}
	closeErr error

	written *atomic.Uint64
	failed  *atomic.Uint64
	pending *atomic.Int64
}

func newDelivery(s Sink, report func(*SinkWriteError, bool)) *delivery {
	d := &delivery{
		sink:    s,
		name:    sinkName(s),
		report:  report,
		done:    make(chan struct{}),
		written: atomic.NewUint64(0),
		failed:  atomic.NewUint64(0),
		pending: atomic.NewInt64(0),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// enqueue hands line to the worker. It reports false once the delivery has
// been closed.
func (d *delivery) enqueue(line string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.queue = append(d.queue, item{line: line})
	d.pending.Inc()
	d.cond.Signal()
	return true
}

// barrier returns a channel closed when everything queued so far is written.
func (d *delivery) barrier() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return d.done
	}
	ch := make(chan struct{})
	d.queue = append(d.queue, item{barrier: ch})
	d.cond.Signal()
	return ch
}

// close stops new lines from being queued. Lines already queued are still
// written, after which the sink is closed if it is an io.Closer.
func (d *delivery) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.cond.Signal()
}

// wait blocks until the worker has exited or ctx is done.
func (d *delivery) wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.closeErr
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "waiting for sink %s to drain", d.name)
	}
}

func (d *delivery) run() {
	defer close(d.done)

	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		batch := d.queue
		d.queue = nil
		closed := d.closed
		d.mu.Unlock()

		for _, it := range batch {
			if it.barrier != nil {
				close(it.barrier)
				continue
			}
			d.write(it.line)
			d.pending.Dec()
		}

		// Nothing can be queued after close, so this batch was the last.
		if closed {
			break
		}
	}

	if c, ok := d.sink.(io.Closer); ok {
		d.closeErr = c.Close()
	}
}

// write delivers one line, retrying a failed write once before reporting it.
func (d *delivery) write(line string) {
	err := d.attempt(line)
	if err != nil && !errors.Is(err, ErrSinkClosed) {
		err = d.attempt(line)
	}
	if err == nil {
		d.written.Inc()
		return
	}

	first := d.failed.Inc() == 1
	d.report(&SinkWriteError{Sink: d.name, Line: line, Err: err}, first)
}

func (d *delivery) attempt(line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("sink panicked: %v", r)
		}
	}()
	return d.sink.Write(line)
}

// SinkStats counts what happened to the lines handed to one sink.
type SinkStats struct {
	Name    string
	Written uint64
	Failed  uint64
	Pending int64
}

func (d *delivery) stats() SinkStats {
	return SinkStats{
		Name:    d.name,
		Written: d.written.Load(),
		Failed:  d.failed.Load(),
		Pending: d.pending.Load(),
	}
}
