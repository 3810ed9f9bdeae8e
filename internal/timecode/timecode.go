package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed reports a time string that does not have the expected shape.
var ErrMalformed = errors.New("malformed time code")

var subtitlePattern = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// TimeCode is a non-negative offset on a media timeline with millisecond precision.
type TimeCode struct {
	ms int64
}

// Zero is the start of the timeline.
var Zero = TimeCode{}

// FromMillis builds a TimeCode from milliseconds. Negative values clamp to zero.
func FromMillis(ms int64) TimeCode {
	if ms < 0 {
		ms = 0
	}
	return TimeCode{ms: ms}
}

// FromSeconds builds a TimeCode from fractional seconds, rounded to the nearest
// millisecond. Negative and NaN values clamp to zero.
func FromSeconds(seconds float64) TimeCode {
	if math.IsNaN(seconds) || seconds <= 0 {
		return Zero
	}
	ms := math.Round(seconds * 1000)
	if ms >= math.MaxInt64 {
		return TimeCode{ms: math.MaxInt64}
	}
	return FromMillis(int64(ms))
}

// ParseSubtitle parses the SRT form HH:MM:SS,mmm. Minutes and seconds must be
// below 60 so that FormatSubtitle reproduces the input exactly.
func ParseSubtitle(s string) (TimeCode, error) {
	m := subtitlePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Zero, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	hours, _ := strconv.ParseInt(m[1], 10, 64)
	minutes, _ := strconv.ParseInt(m[2], 10, 64)
	seconds, _ := strconv.ParseInt(m[3], 10, 64)
	millis, _ := strconv.ParseInt(m[4], 10, 64)
	if minutes > 59 || seconds > 59 {
		return Zero, fmt.Errorf("%w: %q out of range", ErrMalformed, s)
	}
	return FromMillis(((hours*60+minutes)*60+seconds)*1000 + millis), nil
}

// ParseClock parses the clock form HH:MM:SS, where the seconds field may carry a
// fraction. The string must split into exactly three ':' separated fields; a
// field that is not a number counts as zero because probe output is noisy.
func ParseClock(s string) (TimeCode, error) {
	trimmed := strings.TrimSpace(s)
	fields := strings.Split(trimmed, ":")
	if trimmed == "" || len(fields) != 3 {
		return Zero, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	hours := parseField(fields[0])
	minutes := parseField(fields[1])
	seconds := parseField(fields[2])
	return FromSeconds(hours*3600 + minutes*60 + seconds), nil
}

func parseField(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// Millis returns the total milliseconds.
func (t TimeCode) Millis() int64 { return t.ms }

// Seconds returns hours*3600 + minutes*60 + seconds, keeping the fraction.
func (t TimeCode) Seconds() float64 { return float64(t.ms) / 1000 }

// Duration converts the offset to a time.Duration.
func (t TimeCode) Duration() time.Duration { return time.Duration(t.ms) * time.Millisecond }

// Add returns t shifted forward by d. Negative results clamp to zero.
func (t TimeCode) Add(d time.Duration) TimeCode {
	return FromMillis(t.ms + d.Milliseconds())
}

// Sub returns the span from other to t.
func (t TimeCode) Sub(other TimeCode) time.Duration {
	return time.Duration(t.ms-other.ms) * time.Millisecond
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after other.
func (t TimeCode) Compare(other TimeCode) int {
	switch {
	case t.ms < other.ms:
		return -1
	case t.ms > other.ms:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is strictly earlier than other.
func (t TimeCode) Before(other TimeCode) bool { return t.ms < other.ms }

func (t TimeCode) parts() (hours, minutes, seconds, millis int64) {
	total := t.ms
	millis = total % 1000
	total /= 1000
	seconds = total % 60
	total /= 60
	minutes = total % 60
	hours = total / 60
	return hours, minutes, seconds, millis
}

// Format renders the zero-padded clock form HH:MM:SS, dropping milliseconds.
func (t TimeCode) Format() string {
	h, m, s, _ := t.parts()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatSubtitle renders the SRT form HH:MM:SS,mmm.
func (t TimeCode) FormatSubtitle() string {
	h, m, s, ms := t.parts()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// FFmpeg renders HH:MM:SS.mmm for ffmpeg time options.
func (t TimeCode) FFmpeg() string {
	h, m, s, ms := t.parts()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// String implements fmt.Stringer using the SRT form.
func (t TimeCode) String() string { return t.FormatSubtitle() }

// MarshalText renders the SRT form so plans serialize readably.
func (t TimeCode) MarshalText() ([]byte, error) {
	return []byte(t.FormatSubtitle()), nil
}
