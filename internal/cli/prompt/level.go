// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// Sentinel errors for level selection.
var (
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// levelHelp describes what each threshold lets through.
var levelHelp = map[logger.Level]string{
	logger.LevelDebug:   "Everything, including internal tracing.",
	logger.LevelVerbose: "Detailed progress messages and above.",
	logger.LevelInfo:    "Normal operational messages and above.",
	logger.LevelWarn:    "Warnings and errors only.",
	logger.LevelError:   "Errors only.",
}

// finder matches fuzzyfinder.Find so tests can replace the terminal UI.
type finder func(slice any, itemFunc func(i int) string, opts ...fuzzyfinder.Option) (int, error)

// Selector handles interactive level selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
	find   finder
}

// NewSelector creates a new Selector using stdin, stdout and the fuzzy finder.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
		find:   fuzzyfinder.Find,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for
// testing. It has no fuzzy finder, so FindLevel falls back to SelectLevel.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// FindLevel opens a fuzzy finder over the levels, with current preselected
// in the prompt text. Aborting the finder returns ErrSelectionCancelled.
func (s *Selector) FindLevel(current logger.Level) (logger.Level, error) {
	if s.find == nil {
		return s.SelectLevel(current)
	}

	levels := logger.Levels()
	idx, err := s.find(
		levels,
		func(i int) string {
			return levels[i].String()
		},
		fuzzyfinder.WithPromptString(fmt.Sprintf("level (%s) > ", current)),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("Level: %s\n\n%s", levels[i].Tag(), levelHelp[levels[i]])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return current, ErrSelectionCancelled
		}
		return current, errors.Wrap(err, "level selection failed")
	}

	return levels[idx], nil
}

// SelectLevel prompts with a numbered list of levels. An empty answer keeps
// current. EOF returns ErrSelectionCancelled.
func (s *Selector) SelectLevel(current logger.Level) (logger.Level, error) {
	levels := logger.Levels()

	fmt.Fprintln(s.writer, "Minimum log level:")
	for i, l := range levels {
		marker := " "
		if l == current {
			marker = "*"
		}
		fmt.Fprintf(s.writer, " %s[%d] %-7s %s\n", marker, i+1, l, levelHelp[l])
	}
	fmt.Fprintf(s.writer, "Select [%s]: ", current)

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return current, ErrSelectionCancelled
		}
		return current, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return current, nil
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(levels) {
			return current, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(levels))
		}
		return levels[n-1], nil
	}

	level, err := logger.ParseLevel(input)
	if err != nil {
		return current, errors.Wrapf(ErrInvalidSelection, "%q is not a level", input)
	}
	return level, nil
}
