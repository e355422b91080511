package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

// DefaultTailSize is the number of trailing bytes ReadTail returns when
// given a non-positive limit.
const DefaultTailSize = 64 * 1024

// ReadTail returns at most the last limit bytes of the file at path. When
// the file is longer than limit, the partial first line is dropped so the
// result starts on a line boundary.
func ReadTail(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultTailSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "reading file info")
	}

	offset := info.Size() - limit
	if offset < 0 {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seeking file")
	}

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if offset > 0 {
		for i, c := range data {
			if c == '\n' {
				return data[i+1:], nil
			}
		}
	}
	return data, nil
}
