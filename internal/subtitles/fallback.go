package subtitles

import (
	"math"
	"time"

	"subgif/internal/timecode"
)

// FallbackInterval is the width of synthetic cues.
const FallbackInterval = 10 * time.Second

// MaxFallbackCues caps how many synthetic cues one video can produce.
const MaxFallbackCues = 100_000

// FallbackCues returns contiguous FallbackInterval-wide cues with empty text
// covering [0, durationSeconds). The final cue is not clipped to the duration.
// Non-positive or non-finite durations yield no cues.
func FallbackCues(durationSeconds float64) []Cue {
	return FallbackCuesEvery(durationSeconds, FallbackInterval)
}

// FallbackCuesEvery is FallbackCues with a custom interval. Output stops after
// MaxFallbackCues cues; callers that must reject longer videos check
// FallbackCueCount first.
func FallbackCuesEvery(durationSeconds float64, interval time.Duration) []Cue {
	count := FallbackCueCount(durationSeconds, interval)
	if count == 0 {
		return nil
	}
	if count > MaxFallbackCues {
		count = MaxFallbackCues
	}
	step := fallbackStep(interval)
	cues := make([]Cue, 0, count)
	for i := int64(0); i < count; i++ {
		start := i * step
		cues = append(cues, Cue{
			Start: timecode.FromMillis(start),
			End:   timecode.FromMillis(start + step),
		})
	}
	return cues
}

// FallbackCueCount reports how many cues FallbackCuesEvery would need to cover
// durationSeconds, before the MaxFallbackCues cap.
func FallbackCueCount(durationSeconds float64, interval time.Duration) int64 {
	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return 0
	}
	total := timecode.FromSeconds(durationSeconds).Millis()
	if total == 0 {
		return 0
	}
	step := fallbackStep(interval)
	count := total / step
	if total%step != 0 {
		count++
	}
	return count
}

func fallbackStep(interval time.Duration) int64 {
	if step := interval.Milliseconds(); step > 0 {
		return step
	}
	return FallbackInterval.Milliseconds()
}
