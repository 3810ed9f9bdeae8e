package subtitles

import (
	"path/filepath"
	"strings"

	"subgif/internal/timecode"
)

// Cue is a timed span of video paired with the raw text shown during it.
type Cue struct {
	Start timecode.TimeCode `json:"start" yaml:"start"`
	End   timecode.TimeCode `json:"end" yaml:"end"`
	Text  string            `json:"text" yaml:"text"`
}

// Duration returns the length of the cue.
func (c Cue) Duration() float64 {
	return c.End.Seconds() - c.Start.Seconds()
}

// Candidate is a subtitle file considered for a video.
type Candidate struct {
	Path     string
	BaseName string
}

// NewCandidate derives the candidate base name (file name without its final
// extension) from a path.
func NewCandidate(path string) Candidate {
	base := filepath.Base(path)
	return Candidate{
		Path:     path,
		BaseName: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}
