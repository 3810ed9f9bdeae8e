package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subgif/internal/config"
	"subgif/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	inputDir   string
	baseDir    string
}

// setupCLITestEnv writes a config file that points at scripted ffmpeg and
// ffprobe binaries reporting clock as every video's duration.
func setupCLITestEnv(t *testing.T, clock string) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithFakeMedia(clock))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SUBGIF_FFMPEG", "")
	t.Setenv("SUBGIF_FFPROBE", "")
	cfg.Logging.Level = "error"

	configPath := filepath.Join(base, "subgif.toml")
	writeTestConfig(t, configPath, cfg)

	inputDir := filepath.Join(base, "videos")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, inputDir: inputDir, baseDir: base}
}

func (e *cliTestEnv) addVideo(t *testing.T, name, srt string) {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(e.inputDir, name), "video")
	if srt != "" {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		testsupport.WriteFile(t, filepath.Join(e.inputDir, base+".srt"), srt)
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func twoCueSRT() string {
	return testsupport.SRT(
		[3]string{"00:00:01,000", "00:00:02,000", "Hello there"},
		[3]string{"00:00:03,000", "00:00:05,500", "General Kenobi!"},
	)
}
