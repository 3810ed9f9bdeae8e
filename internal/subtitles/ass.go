package subtitles

import (
	"strconv"
	"strings"

	"subgif/internal/timecode"
)

// defaultASSFormat is the [Events] field order used when a script omits its
// Format line.
var defaultASSFormat = []string{"layer", "start", "end", "style", "name", "marginl", "marginr", "marginv", "effect", "text"}

// ParseASS extracts Dialogue events from an ASS/SSA script in source order.
// Override tags are left in the text; the overlay sanitizer removes them.
func ParseASS(content string) []Cue {
	content = strings.TrimPrefix(content, "\ufeff")
	format := defaultASSFormat
	inEvents := false
	var cues []Cue
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") {
			inEvents = strings.EqualFold(line, "[events]")
			continue
		}
		if !inEvents {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "format":
			if parsed := parseASSFormat(value); parsed != nil {
				format = parsed
			}
		case "dialogue":
			if cue, ok := parseASSDialogue(value, format); ok {
				cues = append(cues, cue)
			}
		}
	}
	return cues
}

func parseASSFormat(value string) []string {
	fields := strings.Split(value, ",")
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, strings.ToLower(strings.TrimSpace(field)))
	}
	if len(out) == 0 || out[len(out)-1] != "text" {
		return nil
	}
	return out
}

func parseASSDialogue(value string, format []string) (Cue, bool) {
	fields := strings.SplitN(strings.TrimSpace(value), ",", len(format))
	if len(fields) != len(format) {
		return Cue{}, false
	}
	var cue Cue
	var haveStart, haveEnd bool
	for i, name := range format {
		field := strings.TrimSpace(fields[i])
		switch name {
		case "start":
			tc, err := parseASSTime(field)
			if err != nil {
				return Cue{}, false
			}
			cue.Start, haveStart = tc, true
		case "end":
			tc, err := parseASSTime(field)
			if err != nil {
				return Cue{}, false
			}
			cue.End, haveEnd = tc, true
		case "text":
			cue.Text = field
		}
	}
	if !haveStart || !haveEnd || cue.End.Before(cue.Start) {
		return Cue{}, false
	}
	return cue, true
}

// parseASSTime parses H:MM:SS.cc (centiseconds).
func parseASSTime(value string) (timecode.TimeCode, error) {
	clock, frac, _ := strings.Cut(value, ".")
	tc, err := timecode.ParseClock(clock)
	if err != nil {
		return timecode.Zero, err
	}
	for _, part := range strings.Split(clock, ":") {
		if _, err := strconv.Atoi(part); err != nil {
			return timecode.Zero, timecode.ErrMalformed
		}
	}
	if frac == "" {
		return tc, nil
	}
	millis, err := strconv.Atoi(frac)
	if err != nil || len(frac) > 3 {
		return timecode.Zero, timecode.ErrMalformed
	}
	switch len(frac) {
	case 1:
		millis *= 100
	case 2:
		millis *= 10
	}
	return timecode.FromMillis(tc.Millis() + int64(millis)), nil
}
