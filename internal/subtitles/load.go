package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load reads a subtitle file and parses it according to its extension. ASS and
// SSA scripts that yield no dialogue are retried as SubRip, since mislabelled
// files are common. Read failures are returned; parse problems are not.
func Load(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle %q: %w", path, err)
	}
	content, err := DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode subtitle %q: %w", path, err)
	}
	return Parse(filepath.Ext(path), content), nil
}

// Parse dispatches decoded subtitle text to the parser for ext.
func Parse(ext, content string) []Cue {
	switch strings.ToLower(ext) {
	case ".ass", ".ssa":
		if cues := ParseASS(content); len(cues) > 0 {
			return cues
		}
	}
	return ParseSRT(content)
}

// DecodeText converts subtitle bytes to UTF-8. A UTF-8 or UTF-16 byte order
// mark selects that encoding; unmarked input that is not valid UTF-8 is read
// as Windows-1252, the usual encoding of legacy subtitle releases.
func DecodeText(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	if utf8.Valid(decoded) {
		return string(decoded), nil
	}
	latin, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(latin), nil
}
