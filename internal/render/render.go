package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"subgif/internal/fileutil"
	"subgif/internal/logging"
	"subgif/internal/planner"
	"subgif/internal/services"
)

const stageName = "render"

// DefaultTimeout bounds one ffmpeg invocation.
const DefaultTimeout = 120 * time.Second

// commandRunner executes an external command.
type commandRunner func(ctx context.Context, name string, args ...string) error

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the per-attempt timeout. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Renderer) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRetries sets how many extra attempts a failed clip gets.
func WithRetries(retries int) Option {
	return func(r *Renderer) {
		if retries >= 0 {
			r.retries = retries
		}
	}
}

// WithLogger sets the logging destination.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.NewComponentLogger(logger, "render")
	}
}

// Renderer renders planned jobs with ffmpeg.
type Renderer struct {
	binary  string
	style   Style
	timeout time.Duration
	retries int
	logger  *slog.Logger
	run     commandRunner
}

// New constructs a renderer. An empty binary defaults to "ffmpeg".
func New(binary string, style Style, opts ...Option) *Renderer {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	r := &Renderer{
		binary:  binary,
		style:   style,
		timeout: DefaultTimeout,
		logger:  logging.NewComponentLogger(nil, "render"),
		run:     defaultCommandRunner,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Renderer) WithCommandRunner(run commandRunner) {
	if r != nil && run != nil {
		r.run = run
	}
}

// Render produces job.Output, replacing any existing file. The GIF is written
// to a hidden temporary file in the same directory and renamed on success.
func (r *Renderer) Render(ctx context.Context, job planner.Job) error {
	if r == nil {
		return fmt.Errorf("renderer not initialized")
	}
	if strings.TrimSpace(job.Input) == "" || strings.TrimSpace(job.Output) == "" {
		return services.Wrap(services.ErrValidation, stageName, "render", "job requires input and output paths", nil)
	}
	if job.End.Before(job.Start) {
		return services.Wrap(services.ErrValidation, stageName, "render", fmt.Sprintf("cue %d ends before it starts", job.Index), nil)
	}

	dir := filepath.Dir(job.Output)
	if err := fileutil.EnsureDir(dir); err != nil {
		return services.Wrap(services.ErrConfiguration, stageName, "prepare output", dir, err)
	}
	tmpPath := TempPath(job.Output)

	textPath, cleanupText, err := writeOverlayText(dir, job.Text)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, stageName, "write overlay text", dir, err)
	}
	defer cleanupText()

	args := r.Args(job, tmpPath, textPath)
	logger := logging.WithContext(ctx, r.logger).With(logging.Int(logging.FieldCueIndex, job.Index))
	logger.Debug("executing ffmpeg", logging.String("args", strings.Join(args, " ")))

	started := time.Now()
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = r.attempt(ctx, args, tmpPath)
		if lastErr == nil {
			break
		}
		_ = os.Remove(tmpPath)
		if attempt < r.retries {
			logging.WarnWithContext(logger, "gif render failed, retrying", "render_retry",
				logging.Error(lastErr),
				logging.Int("attempt", attempt+1),
				logging.String(logging.FieldErrorHint, "inspect the ffmpeg error output"),
				logging.String(logging.FieldImpact, "clip will be retried"),
			)
		}
	}
	if lastErr != nil {
		return lastErr
	}

	if err := os.Rename(tmpPath, job.Output); err != nil {
		_ = os.Remove(tmpPath)
		return services.Wrap(services.ErrConfiguration, stageName, "finalize", job.Output, err)
	}

	logger.Info("gif rendered",
		logging.String(logging.FieldEventType, "gif_rendered"),
		logging.String("output", job.Output),
		logging.Duration("duration", time.Since(started)),
	)
	return nil
}

func (r *Renderer) attempt(ctx context.Context, args []string, tmpPath string) error {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.run(runCtx, r.binary, args...)
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return services.Wrap(services.ErrTimeout, stageName, "ffmpeg", fmt.Sprintf("exceeded %s", r.timeout), err)
	}
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "ffmpeg", "", err)
	}
	if _, err := os.Stat(tmpPath); err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "ffmpeg", "no output produced", err)
	}
	return nil
}

// Args returns the ffmpeg argument vector for job writing to outputPath, with
// the overlay read from textPath (empty for no overlay).
func (r *Renderer) Args(job planner.Job, outputPath, textPath string) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-ss", job.Start.FFmpeg(),
		"-to", job.End.FFmpeg(),
		"-i", job.Input,
	}
	if filter := r.style.Filter(textPath); filter != "" {
		args = append(args, "-vf", filter)
	}
	return append(args, "-f", "gif", outputPath)
}

// TempPath returns the hidden in-progress path for output: ".{name}.tmp.gif".
func TempPath(output string) string {
	name := filepath.Base(output)
	return filepath.Join(filepath.Dir(output), "."+strings.TrimSuffix(name, filepath.Ext(name))+".tmp.gif")
}

// writeOverlayText stores text in a hidden file under dir. Empty text needs no
// file and yields an empty path.
func writeOverlayText(dir, text string) (string, func(), error) {
	noop := func() {}
	if text == "" {
		return "", noop, nil
	}
	file, err := os.CreateTemp(dir, ".subgif-text-*.txt")
	if err != nil {
		return "", noop, err
	}
	path := file.Name()
	cleanup := func() { _ = os.Remove(path) }
	if _, err := file.WriteString(text); err != nil {
		_ = file.Close()
		cleanup()
		return "", noop, err
	}
	if err := file.Close(); err != nil {
		cleanup()
		return "", noop, err
	}
	return path, cleanup, nil
}

// defaultCommandRunner executes ffmpeg, folding its stderr into the error.
func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
