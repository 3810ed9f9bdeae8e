package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestMediaRequirementsOnPath(t *testing.T) {
	binDir := t.TempDir()
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(filepath.Join(binDir, executableName("ffmpeg")), script, 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	statuses := CheckBinaries(MediaRequirements("ffmpeg", "ffprobe"))
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Path != filepath.Join(binDir, executableName("ffmpeg")) {
		t.Fatalf("expected ffmpeg resolved from PATH, got %#v", statuses[0])
	}
	if statuses[1].Available || !statuses[1].Optional {
		t.Fatalf("expected optional missing ffprobe, got %#v", statuses[1])
	}
	if missing := MissingRequired(statuses); len(missing) != 0 {
		t.Fatalf("optional dependency reported as missing: %v", missing)
	}
}

func TestMissingRequired(t *testing.T) {
	t.Setenv("PATH", "")
	missing := MissingRequired(CheckBinaries(MediaRequirements("ffmpeg", "")))
	if len(missing) != 1 || missing[0] != "FFmpeg" {
		t.Fatalf("MissingRequired() = %v", missing)
	}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
