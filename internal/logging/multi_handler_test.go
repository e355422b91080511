package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("handler failed")
}

func TestMultiHandler_DispatchesByLevel(t *testing.T) {
	var console, file bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h)

	logger.Debug("only in file")
	logger.Warn("in both")

	if strings.Contains(console.String(), "only in file") {
		t.Error("console handler should not receive debug records")
	}
	if !strings.Contains(console.String(), "in both") {
		t.Error("console handler should receive warn records")
	}
	if strings.Count(file.String(), "\n") != 2 {
		t.Errorf("file handler should receive both records, got: %q", file.String())
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	if !h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info enabled when any handler accepts it")
	}
	if h.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug disabled")
	}
}

func TestMultiHandler_CombinesErrors(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(
		failingHandler{Handler: NewHandler(&bytes.Buffer{}, nil)},
		NewHandler(&buf, nil),
	)

	err := h.Handle(t.Context(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
	if err == nil || !strings.Contains(err.Error(), "handler failed") {
		t.Errorf("expected combined error, got %v", err)
	}
	if !strings.Contains(buf.String(), "msg") {
		t.Error("a failing handler must not stop the others")
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(NewMultiHandler(NewHandler(&a, nil), NewHandler(&b, nil))).
		With("component", "core").
		WithGroup("g")

	logger.Info("hello", "k", "v")

	for _, out := range []string{a.String(), b.String()} {
		if !strings.Contains(out, "component=core") || !strings.Contains(out, "g.k=v") {
			t.Errorf("attributes not propagated: %q", out)
		}
	}
}
