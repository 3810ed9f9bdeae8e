package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"subgif/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "render", "ffmpeg", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"render", "ffmpeg", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFailureKindMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"timeout", services.Wrap(services.ErrTimeout, "render", "ffmpeg", "timed out", nil), "timeout"},
		{"external", services.Wrap(services.ErrExternalTool, "render", "ffmpeg", "exit 1", nil), "external_tool"},
		{"not found", fmt.Errorf("probe: %w", services.ErrNotFound), "not_found"},
		{"validation", services.Wrap(services.ErrValidation, "plan", "", "bad", nil), "invalid"},
		{"plain", errors.New("io"), "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.FailureKind(tt.err); got != tt.want {
				t.Fatalf("FailureKind() = %q, want %q", got, tt.want)
			}
		})
	}
}
