// Package subtitles turns subtitle tracks into ordered cue sequences.
//
// It locates the subtitle file that belongs to a video (Matcher), decodes
// and parses SRT and ASS/SSA tracks into cues (Load, ParseSRT, ParseASS), and
// synthesizes evenly spaced cues when no usable track exists (FallbackCues).
// Parsing is tolerant: malformed blocks are skipped and an empty result is a
// normal outcome that callers answer with the fallback sequence.
package subtitles
