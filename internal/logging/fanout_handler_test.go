package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsEachLevel(t *testing.T) {
	var console, file bytes.Buffer
	h := newFanoutHandler(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With(slog.String(FieldVideo, "movie"))
	logger.Debug("planning cues")
	logger.Info("rendered clip", slog.Int(FieldCueIndex, 3))

	if strings.Contains(console.String(), "planning cues") {
		t.Fatalf("console should drop debug records: %s", console.String())
	}
	if !strings.Contains(console.String(), "rendered clip") {
		t.Fatalf("console missing info record: %s", console.String())
	}
	for _, want := range []string{"planning cues", "rendered clip", `"video":"movie"`, `"cue_index":3`} {
		if !strings.Contains(file.String(), want) {
			t.Fatalf("file output missing %q: %s", want, file.String())
		}
	}
}

func TestFanoutHandlerWithGroup(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))
	slog.New(h).WithGroup("render").Info("done", slog.Int("retries", 1))
	for _, out := range []string{a.String(), b.String()} {
		if !strings.Contains(out, `"render":{"retries":1}`) {
			t.Fatalf("expected grouped attrs, got %s", out)
		}
	}
}

func TestFanoutHandlerEnabledIfAny(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanoutHandler(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("expected warn to be enabled")
	}
}
