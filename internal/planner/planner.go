package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"subgif/internal/fileutil"
	"subgif/internal/logging"
	"subgif/internal/services"
	"subgif/internal/subtitles"
	"subgif/internal/textutil"
	"subgif/internal/timecode"
)

const stageName = "plan"

// DefaultMaxDuration is the longest probed duration accepted by default.
const DefaultMaxDuration = 24 * time.Hour

// CueSource records where a plan's cues came from.
type CueSource string

const (
	SourceSubtitle CueSource = "subtitle"
	SourceFallback CueSource = "fallback"
)

// Job is one GIF to render.
type Job struct {
	Index  int               `json:"index" yaml:"index"`
	Input  string            `json:"input" yaml:"input"`
	Start  timecode.TimeCode `json:"start" yaml:"start"`
	End    timecode.TimeCode `json:"end" yaml:"end"`
	Text   string            `json:"text" yaml:"text"`
	Output string            `json:"output" yaml:"output"`
}

// Plan is the ordered job list for one video.
type Plan struct {
	Video     string    `json:"video" yaml:"video"`
	BaseName  string    `json:"base_name" yaml:"base_name"`
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	Source    CueSource `json:"source" yaml:"source"`
	Subtitle  string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Duration  string    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Jobs      []Job     `json:"jobs" yaml:"jobs"`
}

// DurationProber reports a video's length as an HH:MM:SS clock string.
type DurationProber interface {
	Duration(ctx context.Context, path string) (string, error)
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logging destination.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logging.NewComponentLogger(logger, "planner")
	}
}

// WithFallbackInterval overrides the synthetic cue width.
func WithFallbackInterval(interval time.Duration) Option {
	return func(p *Planner) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithMaxDuration sets the longest probed duration accepted for fallback cues.
func WithMaxDuration(limit time.Duration) Option {
	return func(p *Planner) {
		if limit > 0 {
			p.maxDuration = limit
		}
	}
}

// WithDropAdvertisements removes advertisement cues before numbering jobs.
func WithDropAdvertisements(drop bool) Option {
	return func(p *Planner) {
		p.dropAds = drop
	}
}

// WithDryRun leaves the output directory untouched.
func WithDryRun(dry bool) Option {
	return func(p *Planner) {
		p.dryRun = dry
	}
}

// Planner builds render plans.
type Planner struct {
	outputRoot  string
	matcher     *subtitles.Matcher
	prober      DurationProber
	interval    time.Duration
	maxDuration time.Duration
	dryRun      bool
	dropAds     bool
	logger      *slog.Logger
}

// New constructs a planner writing under outputRoot.
func New(outputRoot string, matcher *subtitles.Matcher, prober DurationProber, opts ...Option) *Planner {
	p := &Planner{
		outputRoot:  outputRoot,
		matcher:     matcher,
		prober:      prober,
		interval:    subtitles.FallbackInterval,
		maxDuration: DefaultMaxDuration,
		logger:      logging.NewComponentLogger(nil, "planner"),
	}
	if p.matcher == nil {
		p.matcher = subtitles.NewMatcher(subtitles.MatchSubstring, nil)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan prepares the output directory for videoPath and returns its jobs in
// cue order. Subtitle candidates are the subtitle files next to the video.
func (p *Planner) Plan(ctx context.Context, videoPath string) (Plan, error) {
	name := filepath.Base(videoPath)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	plan := Plan{
		Video:     videoPath,
		BaseName:  base,
		OutputDir: filepath.Join(p.outputRoot, base),
	}
	ctx = services.WithStage(services.WithVideo(ctx, base), stageName)
	logger := logging.WithContext(ctx, p.logger)

	if !p.dryRun {
		if err := p.prepareOutput(plan.OutputDir); err != nil {
			return plan, err
		}
	}

	cues, err := p.subtitleCues(logger, &plan)
	if err != nil {
		return plan, err
	}
	if len(cues) == 0 {
		cues, err = p.fallbackCues(ctx, &plan)
		if err != nil {
			return plan, err
		}
	}

	plan.Jobs = make([]Job, 0, len(cues))
	for i, cue := range cues {
		plan.Jobs = append(plan.Jobs, Job{
			Index:  i,
			Input:  videoPath,
			Start:  cue.Start,
			End:    cue.End,
			Text:   textutil.OverlayText(cue.Text),
			Output: OutputPath(p.outputRoot, base, i, cue.Text),
		})
	}

	logger.Info("clips planned",
		logging.String(logging.FieldEventType, "plan_ready"),
		logging.String("cue_source", string(plan.Source)),
		logging.String("subtitle", filepath.Base(plan.Subtitle)),
		logging.Int("cue_count", len(plan.Jobs)),
	)
	return plan, nil
}

func (p *Planner) prepareOutput(dir string) error {
	if err := fileutil.EnsureDir(dir); err != nil {
		return services.Wrap(services.ErrConfiguration, stageName, "prepare output", dir, err)
	}
	removed, err := fileutil.RemoveMatching(dir, "*.gif")
	if err != nil {
		return services.Wrap(services.ErrConfiguration, stageName, "clean output", dir, err)
	}
	if removed > 0 {
		p.logger.Debug("removed previous gifs", logging.String("output_dir", dir), logging.Int("removed", removed))
	}
	return nil
}

// subtitleCues returns the cues of the matched subtitle file. An unreadable
// file is logged and treated as having no cues.
func (p *Planner) subtitleCues(logger *slog.Logger, plan *Plan) ([]subtitles.Cue, error) {
	candidates, err := fileutil.ListSubtitles(filepath.Dir(plan.Video))
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, stageName, "list subtitles", filepath.Dir(plan.Video), err)
	}
	path, ok := p.matcher.Match(plan.BaseName, candidates)
	if !ok {
		return nil, nil
	}
	cues, err := subtitles.Load(path)
	if err != nil {
		logging.WarnWithContext(logger, "subtitle unreadable", "subtitle_unreadable",
			logging.Error(err),
			logging.String("subtitle_path", path),
			logging.String(logging.FieldErrorHint, "check file permissions and encoding"),
			logging.String(logging.FieldImpact, "clips fall back to fixed intervals"),
		)
		return nil, nil
	}
	if p.dropAds {
		var removed int
		if cues, removed = subtitles.DropAdvertisements(cues); removed > 0 {
			logger.Info("advertisement cues dropped",
				logging.String("subtitle_path", path),
				logging.Int("removed", removed),
			)
		}
	}
	if len(cues) == 0 {
		logger.Debug("subtitle has no cues", logging.String("subtitle_path", path))
		return nil, nil
	}
	plan.Source = SourceSubtitle
	plan.Subtitle = path
	return cues, nil
}

func (p *Planner) fallbackCues(ctx context.Context, plan *Plan) ([]subtitles.Cue, error) {
	plan.Source = SourceFallback
	plan.Subtitle = ""
	if p.prober == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "probe duration", "no prober configured", nil)
	}
	clock, err := p.prober.Duration(ctx, plan.Video)
	if err != nil {
		marker := services.ErrExternalTool
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, stageName, "probe duration", filepath.Base(plan.Video), err)
	}
	duration, err := timecode.ParseClock(clock)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, stageName, "parse duration", clock, err)
	}
	if duration.Millis() > p.maxDuration.Milliseconds() {
		return nil, services.Wrap(services.ErrValidation, stageName, "check duration", clock,
			fmt.Errorf("probed duration exceeds limit of %s", p.maxDuration))
	}
	if count := subtitles.FallbackCueCount(duration.Seconds(), p.interval); count > subtitles.MaxFallbackCues {
		return nil, services.Wrap(services.ErrValidation, stageName, "check duration", clock,
			fmt.Errorf("%d fallback cues exceed limit of %d", count, subtitles.MaxFallbackCues))
	}
	plan.Duration = duration.Format()
	return subtitles.FallbackCuesEvery(duration.Seconds(), p.interval), nil
}

// OutputPath returns {root}/{base}/{base}-{index}-{slug}.gif, slugging the
// raw cue text.
func OutputPath(root, base string, index int, rawText string) string {
	return filepath.Join(root, base, fmt.Sprintf("%s-%d-%s.gif", base, index, textutil.Slug(rawText)))
}
