package textutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// MaxOverlayRunes bounds overlay text and filename slugs.
	MaxOverlayRunes = 100
	// WrapColumn is the width after which overlay text is split onto two lines.
	WrapColumn = 40
)

var (
	// assOverridePattern matches ASS/SSA override blocks such as {\i1} or {\pos(10,20)}.
	assOverridePattern = regexp.MustCompile(`\{\\[^}]*\}`)
	// assBreakPattern matches ASS hard and soft line breaks.
	assBreakPattern = regexp.MustCompile(`\\[Nnh]`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// markupPolicy strips every tag and keeps only text content.
	markupPolicy = bluemonday.StrictPolicy()
)

// unsafeOverlayReplacer removes characters that break shell arguments or
// ffmpeg filter-graph values.
var unsafeOverlayReplacer = strings.NewReplacer(
	";", "",
	"&", "",
	"\"", "",
	"'", "",
	"\\", "",
	"`", "",
)

// StripMarkup decodes HTML entities and removes HTML and ASS markup, leaving
// single-spaced plain text.
func StripMarkup(raw string) string {
	text := html.UnescapeString(raw)
	text = assOverridePattern.ReplaceAllString(text, "")
	text = assBreakPattern.ReplaceAllString(text, " ")
	// The policy re-escapes text content, so decode once more.
	text = html.UnescapeString(markupPolicy.Sanitize(text))
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// OverlayText converts raw cue text into overlay-safe text: markup removed,
// unsafe characters dropped, at most MaxOverlayRunes long, and split onto two
// lines at the last space within the first WrapColumn characters when longer
// than WrapColumn. Without such a space the text stays on one line.
func OverlayText(raw string) string {
	text := StripMarkup(raw)
	text = unsafeOverlayReplacer.Replace(text)
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	text = strings.TrimSpace(Truncate(text, MaxOverlayRunes))
	return Wrap(text, WrapColumn)
}

// Truncate returns at most limit runes of value.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

// Wrap splits value into two newline-joined lines when it is longer than
// column runes, breaking at the last space at or before index column.
func Wrap(value string, column int) string {
	runes := []rune(value)
	if column <= 0 || len(runes) <= column {
		return value
	}
	split := -1
	for i := column; i >= 0; i-- {
		if runes[i] == ' ' {
			split = i
			break
		}
	}
	if split <= 0 {
		return value
	}
	return string(runes[:split]) + "\n" + string(runes[split+1:])
}

// Slug builds a filename fragment from raw cue text: the first
// MaxOverlayRunes characters with everything outside [A-Za-z0-9] replaced by
// an underscore.
func Slug(raw string) string {
	runes := []rune(Truncate(raw, MaxOverlayRunes))
	var b strings.Builder
	b.Grow(len(runes))
	for _, r := range runes {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
