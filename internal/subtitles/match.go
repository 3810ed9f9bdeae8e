package subtitles

import (
	"fmt"
	"strings"

	"subgif/internal/textutil"
)

// MatchPolicy selects how a subtitle file is chosen for a video.
type MatchPolicy string

const (
	// MatchSubstring prefers candidates whose name contains the video name,
	// then candidates carrying a language hint, then the first candidate.
	MatchSubstring MatchPolicy = "substring"
	// MatchLevenshtein picks the candidate whose base name is the fewest edits
	// away from the video name.
	MatchLevenshtein MatchPolicy = "levenshtein"
)

// ParseMatchPolicy validates a policy name. Empty selects MatchSubstring.
func ParseMatchPolicy(value string) (MatchPolicy, error) {
	switch MatchPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchLevenshtein:
		return MatchLevenshtein, nil
	default:
		return "", fmt.Errorf("unknown match policy %q", value)
	}
}

// Matcher selects the subtitle file that belongs to a video.
type Matcher struct {
	policy MatchPolicy
	hints  []string
}

// NewMatcher builds a matcher. hints are language tokens in priority order
// (see language.FilenameHints); they are compared case-insensitively.
func NewMatcher(policy MatchPolicy, hints []string) *Matcher {
	if policy == "" {
		policy = MatchSubstring
	}
	lowered := make([]string, 0, len(hints))
	for _, hint := range hints {
		if hint = strings.ToLower(strings.TrimSpace(hint)); hint != "" {
			lowered = append(lowered, hint)
		}
	}
	return &Matcher{policy: policy, hints: lowered}
}

// Policy reports the configured policy.
func (m *Matcher) Policy() MatchPolicy {
	return m.policy
}

// Match returns the chosen subtitle path for videoBase (the video file name
// without extension) from paths in directory-listing order. It reports false
// only when paths is empty.
func (m *Matcher) Match(videoBase string, paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}
	candidates := make([]Candidate, 0, len(paths))
	for _, path := range paths {
		candidates = append(candidates, NewCandidate(path))
	}
	if m.policy == MatchLevenshtein {
		return closestCandidate(videoBase, candidates).Path, true
	}
	return m.bySubstring(videoBase, candidates).Path, true
}

func (m *Matcher) bySubstring(videoBase string, candidates []Candidate) Candidate {
	if videoBase != "" {
		for _, c := range candidates {
			if strings.Contains(c.BaseName, videoBase) {
				return c
			}
		}
	}
	for _, hint := range m.hints {
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c.BaseName), hint) {
				return c
			}
		}
	}
	return candidates[0]
}

func closestCandidate(videoBase string, candidates []Candidate) Candidate {
	best := candidates[0]
	bestDistance := -1
	for _, c := range candidates {
		distance := textutil.Levenshtein(videoBase, c.BaseName)
		if distance == 0 {
			return c
		}
		if bestDistance < 0 || distance < bestDistance {
			best = c
			bestDistance = distance
		}
	}
	return best
}
