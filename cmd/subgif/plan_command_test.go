package main

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type planOutput struct {
	Video    string `json:"video" yaml:"video"`
	BaseName string `json:"base_name" yaml:"base_name"`
	Source   string `json:"source" yaml:"source"`
	Jobs     []struct {
		Index  int    `json:"index" yaml:"index"`
		Start  string `json:"start" yaml:"start"`
		End    string `json:"end" yaml:"end"`
		Text   string `json:"text" yaml:"text"`
		Output string `json:"output" yaml:"output"`
	} `json:"jobs" yaml:"jobs"`
}

func TestPlanCommandTable(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	env.addVideo(t, "movie.mp4", twoCueSRT())

	out, _, err := runCLI(t, []string{"plan", env.inputDir}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "movie: 2 clips from movie.srt")
	requireContains(t, out, "movie-1-General_Kenobi_.gif")
	requireContains(t, out, "00:00:03.000")
	if _, statErr := os.Stat(env.cfg.Paths.OutputDir); !os.IsNotExist(statErr) {
		t.Fatal("plan should not create the output directory")
	}
}

func TestPlanCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	env.addVideo(t, "movie.mp4", twoCueSRT())

	out, _, err := runCLI(t, []string{"plan", env.inputDir, "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var plans []planOutput
	if err := json.Unmarshal([]byte(out), &plans); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(plans) != 1 || plans[0].BaseName != "movie" || plans[0].Source != "subtitle" {
		t.Fatalf("unexpected plans %+v", plans)
	}
	jobs := plans[0].Jobs
	if len(jobs) != 2 || jobs[0].Start != "00:00:01,000" || jobs[1].Text != "General Kenobi!" {
		t.Fatalf("unexpected jobs %+v", jobs)
	}
	if !strings.HasSuffix(jobs[0].Output, "movie-0-Hello_there.gif") {
		t.Fatalf("unexpected output %q", jobs[0].Output)
	}
}

func TestPlanCommandYAMLFallback(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	env.addVideo(t, "clip.mov", "")

	out, _, err := runCLI(t, []string{"plan", env.inputDir, "-f", "yaml"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var plans []planOutput
	if err := yaml.Unmarshal([]byte(out), &plans); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if len(plans) != 1 || plans[0].Source != "fallback" || len(plans[0].Jobs) != 3 {
		t.Fatalf("unexpected plans %+v", plans)
	}
	last := plans[0].Jobs[2]
	if last.Start != "00:00:20,000" || last.End != "00:00:30,000" || last.Text != "" {
		t.Fatalf("unexpected final fallback job %+v", last)
	}
}

func TestPlanCommandRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t, "00:00:25.00")
	_, _, err := runCLI(t, []string{"plan", env.inputDir, "--format", "xml"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected format error, got %v", err)
	}
}
