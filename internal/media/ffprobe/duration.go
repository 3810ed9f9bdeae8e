package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"subgif/internal/timecode"
)

// ErrNoDuration reports that neither ffprobe nor ffmpeg produced a duration.
var ErrNoDuration = errors.New("no duration reported")

// DefaultProbeTimeout bounds a single probe invocation.
const DefaultProbeTimeout = 30 * time.Second

var durationBanner = regexp.MustCompile(`Duration:\s*(\d+:\d{2}:\d{2}(?:\.\d+)?)`)

// Prober reports video durations as HH:MM:SS clock strings.
type Prober struct {
	ffprobe string
	ffmpeg  string
	timeout time.Duration
	run     outputRunner
}

// NewProber constructs a prober. Empty binaries default to "ffprobe" and
// "ffmpeg"; a non-positive timeout selects DefaultProbeTimeout.
func NewProber(ffprobeBinary, ffmpegBinary string, timeout time.Duration) *Prober {
	return newProberWithRunner(ffprobeBinary, ffmpegBinary, timeout, execOutput)
}

func newProberWithRunner(ffprobeBinary, ffmpegBinary string, timeout time.Duration, run outputRunner) *Prober {
	ffprobeBinary = strings.TrimSpace(ffprobeBinary)
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{ffprobe: ffprobeBinary, ffmpeg: ffmpegBinary, timeout: timeout, run: run}
}

// Duration returns the duration of the video at path as "HH:MM:SS.mmm",
// suitable for timecode.ParseClock.
func (p *Prober) Duration(ctx context.Context, path string) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result, inspectErr := inspect(probeCtx, p.run, p.ffprobe, path)
	if inspectErr == nil {
		if seconds := result.DurationSeconds(); seconds > 0 {
			return timecode.FromSeconds(seconds).FFmpeg(), nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	scrapeCtx, cancelScrape := context.WithTimeout(ctx, p.timeout)
	defer cancelScrape()
	// ffmpeg exits non-zero without an output file; the banner is still printed.
	output, _ := p.run(scrapeCtx, p.ffmpeg, "-hide_banner", "-i", path)
	if clock, ok := ScrapeDuration(string(output)); ok {
		return clock, nil
	}
	if inspectErr != nil {
		return "", fmt.Errorf("%w for %s: %v", ErrNoDuration, path, inspectErr)
	}
	return "", fmt.Errorf("%w for %s", ErrNoDuration, path)
}

// ScrapeDuration extracts the clock value from an ffmpeg "Duration:" banner.
func ScrapeDuration(output string) (string, bool) {
	m := durationBanner.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}
