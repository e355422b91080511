package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
)

// LineTerminator ends every line a FileSink writes.
var LineTerminator = lineTerminator(runtime.GOOS)

func lineTerminator(goos string) string {
	if goos == "windows" {
		return "\r\n"
	}
	return "\n"
}

const (
	fileSinkDirPerm  = 0o700
	fileSinkFilePerm = 0o600
)

// FileSink appends lines to a file. The file and its parent directories are
// created on the first write, not when the sink is constructed.
type FileSink struct {
	path string

	mu     sync.Mutex
	file   *os.File
	closed bool
}

// NewFileSink returns a sink appending to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the target file path.
func (s *FileSink) Path() string {
	return s.path
}

// Name implements the optional naming used in diagnostics.
func (s *FileSink) Name() string {
	return "file:" + s.path
}

// Write appends line followed by LineTerminator.
func (s *FileSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}
	if s.file == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.file.WriteString(line + LineTerminator); err != nil {
		return errors.Wrapf(err, "appending to %s", s.path)
	}
	return nil
}

func (s *FileSink) open() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, fileSinkDirPerm); err != nil {
			return errors.Wrapf(err, "creating log directory %s", dir)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileSinkFilePerm)
	if err != nil {
		return errors.Wrapf(err, "opening log file %s", s.path)
	}
	s.file = f
	return nil
}

// Close syncs and closes the file handle if one was opened. It is safe to
// call more than once.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrapf(err, "syncing log file %s", s.path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing log file %s", s.path)
	}
	return nil
}
