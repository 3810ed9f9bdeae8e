package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"subgif/internal/config"
	"subgif/internal/fileutil"
	"subgif/internal/language"
	"subgif/internal/logging"
	"subgif/internal/media/ffprobe"
	"subgif/internal/planner"
	"subgif/internal/render"
	"subgif/internal/services"
	"subgif/internal/subtitles"
)

// ErrInputDirectoryNotFound reports a missing or non-directory input path.
var ErrInputDirectoryNotFound = errors.New("input directory not found")

// ClipRenderer renders one planned clip.
type ClipRenderer interface {
	Render(ctx context.Context, job planner.Job) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logging destination.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithVideoWorkers bounds how many videos are processed at once.
func WithVideoWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFallbackInterval sets the width of synthetic cues.
func WithFallbackInterval(interval time.Duration) Option {
	return func(r *Runner) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

// WithMaxDuration sets the longest probed duration accepted for fallback cues.
func WithMaxDuration(limit time.Duration) Option {
	return func(r *Runner) {
		if limit > 0 {
			r.maxDuration = limit
		}
	}
}

// WithDropAdvertisements skips advertisement cues in subtitle files.
func WithDropAdvertisements(drop bool) Option {
	return func(r *Runner) {
		r.dropAds = drop
	}
}

// WithDryRun plans every video without rendering or touching the output
// directory.
func WithDryRun(dry bool) Option {
	return func(r *Runner) {
		r.dryRun = dry
	}
}

// Runner drives a batch conversion.
type Runner struct {
	matcher     *subtitles.Matcher
	prober      planner.DurationProber
	renderer    ClipRenderer
	interval    time.Duration
	maxDuration time.Duration
	workers     int
	dryRun      bool
	dropAds     bool
	logger      *slog.Logger
}

// New constructs a runner from its collaborators.
func New(matcher *subtitles.Matcher, prober planner.DurationProber, renderer ClipRenderer, opts ...Option) *Runner {
	r := &Runner{
		matcher:     matcher,
		prober:      prober,
		renderer:    renderer,
		interval:    subtitles.FallbackInterval,
		maxDuration: planner.DefaultMaxDuration,
		workers:     1,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig wires the ffprobe prober, subtitle matcher and ffmpeg renderer
// described by cfg. Extra options are applied after the configured ones.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("workflow requires configuration")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	policy, err := subtitles.ParseMatchPolicy(cfg.Matching.Policy)
	if err != nil {
		return nil, fmt.Errorf("matching.policy: %w", err)
	}
	matcher := subtitles.NewMatcher(policy, language.FilenameHints(cfg.Matching.Language))
	prober := ffprobe.NewProber(cfg.FFmpeg.FFprobeBinary, cfg.FFmpeg.FFmpegBinary, cfg.ProbeTimeout())
	renderer := render.New(cfg.FFmpeg.FFmpegBinary, styleFromConfig(cfg.Render),
		render.WithTimeout(cfg.RenderTimeout()),
		render.WithRetries(cfg.Render.Retries),
		render.WithLogger(logger),
	)

	base := []Option{
		WithLogger(logger),
		WithVideoWorkers(cfg.Workflow.VideoWorkers),
		WithFallbackInterval(cfg.FallbackInterval()),
		WithMaxDuration(cfg.MaxFallbackDuration()),
		WithDropAdvertisements(cfg.Matching.DropAds),
	}
	return New(matcher, prober, renderer, append(base, opts...)...), nil
}

func styleFromConfig(rc config.Render) render.Style {
	return render.Style{
		Scale:        rc.Scale,
		FontSize:     rc.FontSize,
		FontColor:    rc.FontColor,
		BorderWidth:  rc.BorderWidth,
		BorderColor:  rc.BorderColor,
		BottomMargin: rc.BottomMargin,
		FontFile:     rc.FontFile,
	}
}

// Run converts every video in inputDir, writing clips under outputDir. Only a
// missing input directory, a held output lock or cancellation produce an
// error; per-video and per-clip failures are reported in the Summary.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		InputDir:  inputDir,
		OutputDir: outputDir,
		DryRun:    r.dryRun,
	}
	if strings.TrimSpace(inputDir) == "" || !fileutil.IsDir(inputDir) {
		return summary, fmt.Errorf("%w: %s", ErrInputDirectoryNotFound, inputDir)
	}
	if strings.TrimSpace(outputDir) == "" {
		return summary, services.Wrap(services.ErrConfiguration, "workflow", "run", "output directory is required", nil)
	}

	ctx = services.WithRunID(ctx, summary.RunID)
	component := logging.NewComponentLogger(r.logger, "workflow")
	logger := logging.WithContext(ctx, component)
	started := time.Now()

	if !r.dryRun {
		if err := fileutil.EnsureDir(outputDir); err != nil {
			return summary, services.Wrap(services.ErrConfiguration, "workflow", "prepare output", outputDir, err)
		}
		lock, err := acquireOutputLock(outputDir)
		if err != nil {
			return summary, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release output lock", logging.Error(err))
			}
		}()
	}

	videos, err := fileutil.ListVideos(inputDir)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrInputDirectoryNotFound, err)
	}
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_started"),
		logging.String("input_dir", inputDir),
		logging.String("output_dir", outputDir),
		logging.Int("video_count", len(videos)),
		logging.Int("workers", r.workers),
		logging.Bool("dry_run", r.dryRun),
	)

	p := planner.New(outputDir, r.matcher, r.prober,
		planner.WithLogger(r.logger),
		planner.WithFallbackInterval(r.interval),
		planner.WithMaxDuration(r.maxDuration),
		planner.WithDryRun(r.dryRun),
		planner.WithDropAdvertisements(r.dropAds),
	)

	results := make([]VideoResult, len(videos))
	owners := outputOwners(videos)
	var group errgroup.Group
	group.SetLimit(r.workers)
	for i, video := range videos {
		if owner := owners[i]; owner != video {
			results[i] = rejectCollision(ctx, component, video, owner)
			continue
		}
		group.Go(func() error {
			results[i] = r.processVideo(ctx, component, p, video)
			return nil
		})
	}
	_ = group.Wait()

	summary.Videos = results
	summary.Duration = time.Since(started)
	jobs, succeeded, failed := summary.Totals()
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_finished"),
		logging.Int("video_count", len(videos)),
		logging.Int("video_failures", summary.FailedVideos()),
		logging.Int("jobs", jobs),
		logging.Int("succeeded", succeeded),
		logging.Int("failed", failed),
		logging.Duration("duration", summary.Duration),
	)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// outputOwners maps each video to the first video in listing order that shares
// its output directory. Videos that own their directory map to themselves.
func outputOwners(videos []string) []string {
	owners := make([]string, len(videos))
	first := make(map[string]string, len(videos))
	for i, video := range videos {
		base := videoBase(video)
		if owner, ok := first[base]; ok {
			owners[i] = owner
			continue
		}
		first[base] = video
		owners[i] = video
	}
	return owners
}

func rejectCollision(ctx context.Context, component *slog.Logger, video, owner string) VideoResult {
	base := videoBase(video)
	err := services.Wrap(services.ErrValidation, "workflow", "check output",
		fmt.Sprintf("output directory %s already used by %s", base, filepath.Base(owner)), nil)
	logger := logging.WithContext(services.WithVideo(ctx, base), component)
	logging.WarnWithContext(logger, "video skipped, output directory shared", "output_collision",
		logging.Alert("output_collision"),
		logging.String("video_file", filepath.Base(video)),
		logging.String("owner_file", filepath.Base(owner)),
		logging.String(logging.FieldErrorHint, "rename one of the videos so their base names differ"),
		logging.String(logging.FieldImpact, "no clips produced for this video"),
	)
	return VideoResult{
		Video:       video,
		Name:        base,
		Error:       err.Error(),
		FailureKind: services.FailureKind(err),
	}
}

func videoBase(videoPath string) string {
	name := filepath.Base(videoPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// processVideo plans and renders one video. It never returns an error; the
// outcome is recorded in the result.
func (r *Runner) processVideo(ctx context.Context, component *slog.Logger, p *planner.Planner, videoPath string) VideoResult {
	started := time.Now()
	base := videoBase(videoPath)
	result := VideoResult{Video: videoPath, Name: base}

	ctx = services.WithVideo(ctx, base)
	logger := logging.WithContext(ctx, component)

	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		result.FailureKind = "canceled"
		return result
	}

	logger.Info("processing video", logging.String(logging.FieldEventType, "video_started"))
	plan, err := p.Plan(ctx, videoPath)
	result.Plan = plan
	result.Source = plan.Source
	result.Subtitle = plan.Subtitle
	if err != nil {
		result.Error = err.Error()
		result.FailureKind = services.FailureKind(err)
		result.Duration = time.Since(started)
		logging.ErrorWithContext(logger, "video planning failed", "video_failed",
			logging.Error(err),
			logging.String("failure_kind", result.FailureKind),
			logging.String(logging.FieldErrorHint, "check the subtitle file or that ffprobe/ffmpeg can read the video"),
			logging.String(logging.FieldImpact, "no clips produced for this video"),
		)
		return result
	}
	result.Jobs = len(plan.Jobs)

	if r.dryRun {
		result.Duration = time.Since(started)
		return result
	}

	renderCtx := services.WithStage(ctx, "render")
	for i, job := range plan.Jobs {
		if ctx.Err() != nil {
			result.Skipped = len(plan.Jobs) - i
			break
		}
		logger.Info("rendering clip",
			logging.Int(logging.FieldCueIndex, job.Index),
			logging.String("progress", fmt.Sprintf("%d/%d", i+1, len(plan.Jobs))),
			logging.String("start", job.Start.FFmpeg()),
			logging.String("end", job.End.FFmpeg()),
		)
		if err := r.renderer.Render(renderCtx, job); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				result.Skipped = len(plan.Jobs) - i
				break
			}
			result.Failed++
			if result.FailureKind == "" {
				result.FailureKind = services.FailureKind(err)
			}
			logging.ErrorWithContext(logger, "clip render failed", "clip_failed",
				logging.Error(err),
				logging.Int(logging.FieldCueIndex, job.Index),
				logging.String("output", job.Output),
				logging.String("failure_kind", services.FailureKind(err)),
				logging.String(logging.FieldErrorHint, "run with --log-level debug to see the ffmpeg arguments"),
				logging.String(logging.FieldImpact, "clip skipped; remaining clips continue"),
			)
			continue
		}
		result.Succeeded++
	}

	result.Duration = time.Since(started)
	logger.Info("video finished",
		logging.String(logging.FieldEventType, "video_finished"),
		logging.String("cue_source", string(result.Source)),
		logging.Int("jobs", result.Jobs),
		logging.Int("succeeded", result.Succeeded),
		logging.Int("failed", result.Failed),
		logging.Duration("duration", result.Duration),
	)
	return result
}
