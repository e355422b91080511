// Package console implements a log sink for terminals, used by the CLI in
// place of the editor's output panel.
package console

import (
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/thoreinstein/toolkitlog/internal/config"
	"github.com/thoreinstein/toolkitlog/internal/logging"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// Sink writes log lines to a terminal, coloring the level tag.
type Sink struct {
	out io.Writer

	mu     sync.Mutex
	time   *color.Color
	levels map[logger.Level]*color.Color
}

// New returns a Sink writing to out. mode is one of the config color modes;
// with ColorAuto, color is used only when out supports it.
func New(out io.Writer, mode string) *Sink {
	s := &Sink{out: out}
	if useColor(out, mode) {
		s.time = enabled(color.New(color.FgHiBlack))
		s.levels = map[logger.Level]*color.Color{
			logger.LevelDebug:   enabled(color.New(color.FgMagenta)),
			logger.LevelVerbose: enabled(color.New(color.FgBlue)),
			logger.LevelInfo:    enabled(color.New(color.FgGreen)),
			logger.LevelWarn:    enabled(color.New(color.FgYellow)),
			logger.LevelError:   enabled(color.New(color.FgRed, color.Bold)),
		}
	}
	return s
}

func useColor(out io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return logging.SupportsColor(out)
	}
}

// enabled forces c on regardless of color.NoColor, which fatih/color derives
// from stdout rather than from our writer.
func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// Name implements the optional naming used in diagnostics.
func (s *Sink) Name() string {
	return "console"
}

// Write renders line followed by a newline.
func (s *Sink) Write(line string) error {
	text := s.render(line)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.out, text+"\n")
	return err
}

func (s *Sink) render(line string) string {
	if s.levels == nil {
		return line
	}
	rec, ok := logger.ParseLine(line)
	if !ok {
		return line
	}

	var b strings.Builder
	b.WriteString(s.time.Sprint(rec.Time.Format(logger.TimestampLayout)))
	b.WriteString(" ")
	b.WriteString(s.levels[rec.Level].Sprint("[" + rec.Level.Tag() + "]"))
	b.WriteString(": ")
	b.WriteString(rec.Message)
	return b.String()
}
