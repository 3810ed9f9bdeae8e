package subtitles

import (
	"regexp"
	"strings"

	"subgif/internal/timecode"
)

var srtTimingPattern = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3}) --> (\d{2}:\d{2}:\d{2},\d{3})`)

// ParseSRT parses SubRip text into cues in source order.
//
// Lines accumulate into a block until a blank line arrives while the block
// holds more than one line; blank lines before that are skipped, so a stray
// blank after the index line does not split the block. The second line of a
// block must carry the timing; blocks without it are dropped, as is a final
// block that never reaches a blank line.
func ParseSRT(content string) []Cue {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(content, "\n")
	cues := make([]Cue, 0, len(lines)/4)
	block := make([]string, 0, 4)
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(block) > 1 {
				if cue, ok := parseSRTBlock(block); ok {
					cues = append(cues, cue)
				}
				block = block[:0]
			}
			continue
		}
		block = append(block, line)
	}
	return cues
}

func parseSRTBlock(block []string) (Cue, bool) {
	m := srtTimingPattern.FindStringSubmatch(block[1])
	if m == nil {
		return Cue{}, false
	}
	start, err := timecode.ParseSubtitle(m[1])
	if err != nil {
		return Cue{}, false
	}
	end, err := timecode.ParseSubtitle(m[2])
	if err != nil {
		return Cue{}, false
	}
	if end.Before(start) {
		return Cue{}, false
	}
	return Cue{
		Start: start,
		End:   end,
		Text:  strings.Join(block[2:], " "),
	}, true
}
