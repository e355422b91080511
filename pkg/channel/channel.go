// Package channel provides an in-memory output channel: an append-only text
// surface that notifies observers of every append.
//
// A Buffer stands in for an editor's output panel. Log lines reach it
// asynchronously, so code that needs to see a line waits for it with
// [Buffer.WaitFor] or [Buffer.WaitForText] and a deadline:
//
//	ctx, cancel := context.WithTimeout(ctx, time.Second)
//	defer cancel()
//	if err := out.WaitForText(ctx, "deployed"); err != nil {
//		// errors.Is(err, channel.ErrWaitTimeout)
//	}
package channel

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrWaitTimeout is matched by errors returned from waits that hit their deadline.
var ErrWaitTimeout = errors.New("timed out waiting for output channel")

// Buffer is an append-only text surface. It is safe for concurrent use.
type Buffer struct {
	name string

	mu        sync.Mutex
	text      strings.Builder
	changed   chan struct{}
	observers map[uint64]func(string)
	nextID    uint64
}

// New returns an empty Buffer called name.
func New(name string) *Buffer {
	return &Buffer{
		name:      name,
		changed:   make(chan struct{}),
		observers: make(map[uint64]func(string)),
	}
}

// Name returns the channel name.
func (b *Buffer) Name() string {
	return b.name
}

// Append adds text to the end of the channel and notifies observers.
func (b *Buffer) Append(text string) error {
	b.mu.Lock()
	b.text.WriteString(text)
	b.signal()
	observers := make([]func(string), 0, len(b.observers))
	for _, fn := range b.observers {
		observers = append(observers, fn)
	}
	b.mu.Unlock()

	for _, fn := range observers {
		fn(text)
	}
	return nil
}

// Clear empties the channel. Observers are not notified.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text.Reset()
	b.signal()
}

// Text returns everything appended since the last Clear.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text.String()
}

// Lines returns the channel contents split into lines, without the trailing
// empty line left by a final newline.
func (b *Buffer) Lines() []string {
	text := strings.TrimSuffix(b.Text(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// OnAppend registers fn to be called with the text of every later Append.
// fn runs on the appending goroutine after the text is visible through
// Text. The returned function unregisters fn.
func (b *Buffer) OnAppend(fn func(text string)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.observers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.observers, id)
	}
}

// WaitFor blocks until match reports true for the channel text or ctx is
// done. On a deadline or cancellation the returned error matches both
// ErrWaitTimeout and the context error.
func (b *Buffer) WaitFor(ctx context.Context, match func(text string) bool) error {
	for {
		b.mu.Lock()
		text := b.text.String()
		changed := b.changed
		b.mu.Unlock()

		if match(text) {
			return nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return errors.Mark(errors.Wrapf(ctx.Err(), "channel %s", b.name), ErrWaitTimeout)
		}
	}
}

// WaitForText blocks until the channel contains substr or ctx is done.
func (b *Buffer) WaitForText(ctx context.Context, substr string) error {
	return b.WaitFor(ctx, func(text string) bool {
		return strings.Contains(text, substr)
	})
}

// signal wakes every waiter. b.mu must be held.
func (b *Buffer) signal() {
	close(b.changed)
	b.changed = make(chan struct{})
}
