package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

func TestSelectLevel_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  logger.Level
	}{
		{"by number", "4\n", logger.LevelWarn},
		{"by name", "error\n", logger.LevelError},
		{"name case-insensitive", "VERBOSE\n", logger.LevelVerbose},
		{"default on empty", "\n", logger.LevelInfo},
		{"whitespace trimmed", "  1  \n", logger.LevelDebug},
		{"no trailing newline", "2", logger.LevelVerbose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			got, err := s.SelectLevel(logger.LevelInfo)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectLevel_InvalidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"too low", "0\n", "out of range"},
		{"too high", "6\n", "out of range"},
		{"unknown name", "loud\n", "not a level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			got, err := s.SelectLevel(logger.LevelWarn)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("expected ErrInvalidSelection, got: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
			if got != logger.LevelWarn {
				t.Errorf("current level should be returned on error, got %v", got)
			}
		})
	}
}

func TestSelectLevel_EOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.SelectLevel(logger.LevelInfo)
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
}

func TestSelectLevel_MarksCurrent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader("\n"), &buf)

	if _, err := s.SelectLevel(logger.LevelWarn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "*[4] warn") {
		t.Errorf("current level not marked in prompt:\n%s", out)
	}
	if !strings.Contains(out, "Select [warn]: ") {
		t.Errorf("prompt missing default:\n%s", out)
	}
}

func TestFindLevel(t *testing.T) {
	t.Parallel()

	var items []string
	s := &Selector{
		find: func(slice any, itemFunc func(i int) string, _ ...fuzzyfinder.Option) (int, error) {
			for i := range len(slice.([]logger.Level)) {
				items = append(items, itemFunc(i))
			}
			return 3, nil
		},
	}

	got, err := s.FindLevel(logger.LevelInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != logger.LevelWarn {
		t.Errorf("FindLevel() = %v, want warn", got)
	}
	want := "debug,verbose,info,warn,error"
	if strings.Join(items, ",") != want {
		t.Errorf("finder items = %v, want %s", items, want)
	}
}

func TestFindLevel_Abort(t *testing.T) {
	t.Parallel()

	s := &Selector{
		find: func(any, func(int) string, ...fuzzyfinder.Option) (int, error) {
			return -1, fuzzyfinder.ErrAbort
		},
	}

	got, err := s.FindLevel(logger.LevelError)
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
	if got != logger.LevelError {
		t.Errorf("FindLevel() = %v, want current level", got)
	}
}

func TestFindLevel_FallsBackWithoutFinder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader("5\n"), &buf)

	got, err := s.FindLevel(logger.LevelInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != logger.LevelError {
		t.Errorf("FindLevel() = %v, want error", got)
	}
}
