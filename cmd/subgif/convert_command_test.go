package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"subgif/internal/testsupport"
)

func TestConvertCommandRendersClips(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	env.addVideo(t, "movie.mp4", twoCueSRT())
	env.addVideo(t, "silent.mkv", "")

	out, _, err := runCLI(t, []string{"convert", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "movie.srt")
	requireContains(t, out, "fallback")
	requireContains(t, strings.ToUpper(out), "2 VIDEOS")
	requireContains(t, out, "GIFs written to "+env.cfg.Paths.OutputDir)

	got := testsupport.ListNames(t, filepath.Join(env.cfg.Paths.OutputDir, "movie"))
	if !reflect.DeepEqual(got, []string{"movie-0-Hello_there.gif", "movie-1-General_Kenobi_.gif"}) {
		t.Fatalf("movie outputs = %v", got)
	}
	got = testsupport.ListNames(t, filepath.Join(env.cfg.Paths.OutputDir, "silent"))
	if len(got) != 3 {
		t.Fatalf("expected 3 fallback clips, got %v", got)
	}
}

func TestConvertCommandFlagOverrides(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	env.addVideo(t, "movie.mp4", twoCueSRT())
	logPath := filepath.Join(env.baseDir, "ffmpeg.log")
	t.Setenv("SUBGIF_STUB_LOG", logPath)
	outputDir := filepath.Join(env.baseDir, "custom")

	_, _, err := runCLI(t, []string{"convert", env.inputDir, "--output-dir", outputDir, "--workers", "2", "--scale", "0.5"}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "movie", "movie-0-Hello_there.gif")); err != nil {
		t.Fatalf("expected clip under overridden output dir: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read stub log: %v", err)
	}
	requireContains(t, string(data), "scale=iw*0.5:ih*0.5")
	requireContains(t, string(data), "-ss 00:00:01.000 -to 00:00:02.000")
}

func TestConvertCommandRejectsInvalidScale(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	_, _, err := runCLI(t, []string{"convert", env.inputDir, "--scale", "2"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "render.scale") {
		t.Fatalf("expected scale validation error, got %v", err)
	}
}

func TestConvertCommandMissingInput(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	missing := filepath.Join(env.baseDir, "nope")

	_, _, err := runCLI(t, []string{"convert", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
	requireContains(t, err.Error(), "does not exist")
	if _, statErr := os.Stat(env.cfg.Paths.OutputDir); !os.IsNotExist(statErr) {
		t.Fatal("output directory should not be created")
	}
}

func TestConvertCommandDryRun(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	env.addVideo(t, "movie.mp4", twoCueSRT())

	out, _, err := runCLI(t, []string{"convert", env.inputDir, "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("convert --dry-run: %v", err)
	}
	requireContains(t, strings.ToUpper(out), "PLANNED")
	requireContains(t, out, "Dry run: nothing was rendered")
	if _, statErr := os.Stat(env.cfg.Paths.OutputDir); !os.IsNotExist(statErr) {
		t.Fatal("dry run should not create the output directory")
	}
}

func TestConvertCommandEmptyDirectory(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	out, _, err := runCLI(t, []string{"convert", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "No videos found")
}

func TestConvertCommandRequiresArgument(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	if _, _, err := runCLI(t, []string{"convert"}, env.configPath); err == nil {
		t.Fatal("expected error without input directory")
	}
}
