package subtitles

import (
	"regexp"
	"strings"
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// IsAdvertisement reports whether cue text is a release-group credit or site
// plug rather than dialogue.
func IsAdvertisement(text string) bool {
	payload := strings.TrimSpace(strings.Join(strings.Fields(text), " "))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

// DropAdvertisements returns cues without advertisement cues, preserving order,
// and how many were removed.
func DropAdvertisements(cues []Cue) ([]Cue, int) {
	kept := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if IsAdvertisement(cue.Text) {
			continue
		}
		kept = append(kept, cue)
	}
	return kept, len(cues) - len(kept)
}
