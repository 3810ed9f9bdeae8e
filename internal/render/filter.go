package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Style holds the drawtext and scaling parameters.
type Style struct {
	Scale        float64
	FontSize     int
	FontColor    string
	BorderWidth  int
	BorderColor  string
	BottomMargin int
	FontFile     string
}

// DefaultStyle returns quarter-size output with 15px white text, a 2px black
// outline, 40px above the bottom edge.
func DefaultStyle() Style {
	return Style{
		Scale:        0.25,
		FontSize:     15,
		FontColor:    "white",
		BorderWidth:  2,
		BorderColor:  "black",
		BottomMargin: 40,
	}
}

// Filter builds the -vf value. textPath is the overlay text file; when empty
// no drawtext filter is added. An empty result means no filter is needed.
func (s Style) Filter(textPath string) string {
	var filters []string
	if s.Scale > 0 && s.Scale != 1 {
		factor := strconv.FormatFloat(s.Scale, 'f', -1, 64)
		filters = append(filters, fmt.Sprintf("scale=iw*%s:ih*%s", factor, factor))
	}
	if textPath != "" {
		opts := []string{
			"textfile=" + escapeFilterValue(textPath),
			"expansion=none",
		}
		if s.FontFile != "" {
			opts = append(opts, "fontfile="+escapeFilterValue(s.FontFile))
		}
		opts = append(opts,
			"x=(w-text_w)/2",
			fmt.Sprintf("y=h-th-%d", s.BottomMargin),
			fmt.Sprintf("fontsize=%d", s.FontSize),
			"fontcolor="+escapeFilterValue(s.FontColor),
			fmt.Sprintf("borderw=%d", s.BorderWidth),
			"bordercolor="+escapeFilterValue(s.BorderColor),
		)
		filters = append(filters, "drawtext="+strings.Join(opts, ":"))
	}
	return strings.Join(filters, ",")
}

// optionEscaper escapes characters the filter option parser treats specially.
var optionEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`)

// graphEscaper escapes characters the filter-graph parser treats specially.
var graphEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `,`, `\,`, `;`, `\;`, `[`, `\[`, `]`, `\]`)

// escapeFilterValue applies both escaping levels ffmpeg unwinds when parsing a
// -vf argument.
func escapeFilterValue(value string) string {
	return graphEscaper.Replace(optionEscaper.Replace(value))
}
