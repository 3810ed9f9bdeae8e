package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"subgif/internal/planner"
	"subgif/internal/services"
	"subgif/internal/timecode"
)

func testJob(t *testing.T, text string) planner.Job {
	t.Helper()
	start, _ := timecode.ParseSubtitle("00:00:01,000")
	end, _ := timecode.ParseSubtitle("00:00:03,250")
	out := t.TempDir()
	return planner.Job{
		Index:  4,
		Input:  "/videos/movie.mp4",
		Start:  start,
		End:    end,
		Text:   text,
		Output: filepath.Join(out, "movie", "movie-4-Hi.gif"),
	}
}

func lastArg(args []string) string {
	return args[len(args)-1]
}

func TestRenderSuccess(t *testing.T) {
	job := testJob(t, "Hi there\nfriend")
	r := New("ffmpeg", DefaultStyle())

	var gotName string
	var gotArgs []string
	var textContent string
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		for i, arg := range args {
			if arg != "-vf" {
				continue
			}
			filter := args[i+1]
			start := strings.Index(filter, "textfile=") + len("textfile=")
			end := strings.Index(filter[start:], ":expansion")
			data, err := os.ReadFile(strings.ReplaceAll(filter[start:start+end], `\\`, `\`))
			if err != nil {
				t.Fatalf("overlay text file unreadable: %v", err)
			}
			textContent = string(data)
		}
		return os.WriteFile(lastArg(args), []byte("GIF89a"), 0o644)
	})

	if err := r.Render(context.Background(), job); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Fatalf("unexpected binary %q", gotName)
	}
	wantPrefix := []string{"-hide_banner", "-loglevel", "error", "-y", "-ss", "00:00:01.000", "-to", "00:00:03.250", "-i", "/videos/movie.mp4", "-vf"}
	if !reflect.DeepEqual(gotArgs[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("unexpected args %v", gotArgs)
	}
	if lastArg(gotArgs) != TempPath(job.Output) || gotArgs[len(gotArgs)-3] != "-f" || gotArgs[len(gotArgs)-2] != "gif" {
		t.Fatalf("expected gif output to temp path, got %v", gotArgs)
	}
	if textContent != "Hi there\nfriend" {
		t.Fatalf("overlay text = %q", textContent)
	}
	if data, err := os.ReadFile(job.Output); err != nil || string(data) != "GIF89a" {
		t.Fatalf("expected final output, got %q (%v)", data, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(job.Output))
	if len(entries) != 1 {
		t.Fatalf("expected only the gif to remain, got %v", entries)
	}
}

func TestRenderWithoutTextOmitsDrawtext(t *testing.T) {
	job := testJob(t, "")
	style := DefaultStyle()
	style.Scale = 1
	r := New("", style)
	var gotArgs []string
	var gotName string
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return os.WriteFile(lastArg(args), []byte("GIF89a"), 0o644)
	})
	if err := r.Render(context.Background(), job); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Fatalf("expected default binary, got %q", gotName)
	}
	for _, arg := range gotArgs {
		if arg == "-vf" {
			t.Fatalf("expected no filter, got %v", gotArgs)
		}
	}
}

func TestRenderFailureRemovesTemp(t *testing.T) {
	job := testJob(t, "Hi")
	r := New("ffmpeg", DefaultStyle())
	r.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		_ = os.WriteFile(lastArg(args), []byte("partial"), 0o644)
		return errors.New("exit status 1: Invalid data found")
	})

	err := r.Render(context.Background(), job)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	for _, path := range []string{job.Output, TempPath(job.Output)} {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Fatalf("expected %s to be absent", path)
		}
	}
	entries, _ := os.ReadDir(filepath.Dir(job.Output))
	if len(entries) != 0 {
		t.Fatalf("expected overlay text file cleaned up, got %v", entries)
	}
}

func TestRenderMissingOutputIsFailure(t *testing.T) {
	job := testJob(t, "Hi")
	r := New("ffmpeg", DefaultStyle())
	r.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	if err := r.Render(context.Background(), job); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected failure when ffmpeg writes nothing, got %v", err)
	}
}

func TestRenderTimeout(t *testing.T) {
	job := testJob(t, "Hi")
	r := New("ffmpeg", DefaultStyle(), WithTimeout(20*time.Millisecond))
	r.WithCommandRunner(func(ctx context.Context, _ string, _ ...string) error {
		<-ctx.Done()
		return ctx.Err()
	})
	err := r.Render(context.Background(), job)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if services.FailureKind(err) != "timeout" {
		t.Fatalf("unexpected failure kind %q", services.FailureKind(err))
	}
}

func TestRenderRetries(t *testing.T) {
	job := testJob(t, "Hi")
	r := New("ffmpeg", DefaultStyle(), WithRetries(2))
	calls := 0
	r.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return os.WriteFile(lastArg(args), []byte("GIF89a"), 0o644)
	})
	if err := r.Render(context.Background(), job); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestRenderCanceledContext(t *testing.T) {
	job := testJob(t, "Hi")
	r := New("ffmpeg", DefaultStyle())
	r.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("runner should not be called")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Render(ctx, job); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderRejectsInvalidJob(t *testing.T) {
	r := New("ffmpeg", DefaultStyle())
	job := testJob(t, "Hi")
	job.Start, job.End = job.End, job.Start
	if err := r.Render(context.Background(), job); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := r.Render(context.Background(), planner.Job{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty job, got %v", err)
	}
}

func TestTempPath(t *testing.T) {
	if got := TempPath("/out/movie/movie-0-Hi.gif"); got != "/out/movie/.movie-0-Hi.tmp.gif" {
		t.Fatalf("TempPath() = %q", got)
	}
}
