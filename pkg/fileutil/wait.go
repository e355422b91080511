package fileutil

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

// DefaultPollInterval is used by the wait helpers when given a non-positive
// interval.
const DefaultPollInterval = 10 * time.Millisecond

// ErrWaitTimeout is matched by errors returned from waits that hit their deadline.
var ErrWaitTimeout = errors.New("timed out waiting for file")

// WaitForFile polls until path exists or ctx is done.
func WaitForFile(ctx context.Context, path string, interval time.Duration) error {
	return poll(ctx, interval, func() (bool, error) {
		_, err := os.Stat(path)
		if err == nil {
			return true, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "checking %s", path)
	}, path)
}

// WaitForContent polls until the file at path exists and contains substr,
// or ctx is done.
func WaitForContent(ctx context.Context, path, substr string, interval time.Duration) error {
	return poll(ctx, interval, func() (bool, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, errors.Wrapf(err, "reading %s", path)
		}
		return strings.Contains(string(data), substr), nil
	}, path)
}

// poll runs check immediately and then on every tick, sleeping between
// checks. The returned error on deadline matches ErrWaitTimeout and the
// context error.
func poll(ctx context.Context, interval time.Duration, check func() (bool, error), path string) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := check()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return errors.Mark(errors.Wrapf(ctx.Err(), "waiting for %s", path), ErrWaitTimeout)
		}
	}
}
