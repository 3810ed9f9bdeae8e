package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestOverlayTextCleanShortTextUnchanged(t *testing.T) {
	if got := OverlayText("hello world"); got != "hello world" {
		t.Fatalf("OverlayText() = %q, want %q", got, "hello world")
	}
}

func TestOverlayTextStripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"html tags", "<i>Hello</i> <b>there</b>", "Hello there"},
		{"font tag", `<font color="#ffff00">Look out</font>`, "Look out"},
		{"entities", "Tom &amp; Jerry", "Tom Jerry"},
		{"encoded tags", "&lt;i&gt;quiet&lt;/i&gt; please", "quiet please"},
		{"ass overrides", `{\an8}{\i1}Up here{\i0}`, "Up here"},
		{"ass line break", `first\Nsecond`, "first second"},
		{"quotes and semicolons", `He said "go"; it's late`, "He said go its late"},
		{"backslash and backtick", "a\\b `c`", "ab c"},
		{"whitespace", "  spaced   out \t text ", "spaced out text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlayText(tt.input); got != tt.want {
				t.Fatalf("OverlayText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOverlayTextSplitsLongText(t *testing.T) {
	input := "The quick brown fox jumps over the lazy dog again"
	if utf8.RuneCountInString(input) != 49 {
		t.Fatalf("fixture length changed: %d", utf8.RuneCountInString(input))
	}
	input += "!"
	got := OverlayText(input)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", got)
	}
	if utf8.RuneCountInString(lines[0]) > WrapColumn {
		t.Fatalf("first line too long: %q", lines[0])
	}
	if lines[0]+" "+lines[1] != input {
		t.Fatalf("split lost content: %q", got)
	}
	if lines[0] != "The quick brown fox jumps over the lazy" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestOverlayTextNoSpaceStaysOnOneLine(t *testing.T) {
	input := strings.Repeat("x", 60)
	if got := OverlayText(input); got != input {
		t.Fatalf("expected unsplit text, got %q", got)
	}
}

func TestOverlayTextTruncates(t *testing.T) {
	input := strings.Repeat("abcd ", 40)
	got := OverlayText(input)
	joined := strings.ReplaceAll(got, "\n", " ")
	if utf8.RuneCountInString(joined) > MaxOverlayRunes {
		t.Fatalf("expected at most %d runes, got %d", MaxOverlayRunes, utf8.RuneCountInString(joined))
	}
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("expected one line break, got %q", got)
	}
}

func TestWrapBreaksAtColumnBoundary(t *testing.T) {
	input := strings.Repeat("a", 40) + " " + strings.Repeat("b", 9)
	got := Wrap(input, WrapColumn)
	want := strings.Repeat("a", 40) + "\n" + strings.Repeat("b", 9)
	if got != want {
		t.Fatalf("Wrap() = %q, want %q", got, want)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, world!", "Hello__world_"},
		{"<i>Hi</i>", "_i_Hi__i_"},
		{"", ""},
		{"café 42", "caf__42"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Fatalf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
	long := Slug(strings.Repeat("z", 150))
	if len(long) != MaxOverlayRunes {
		t.Fatalf("expected slug truncated to %d, got %d", MaxOverlayRunes, len(long))
	}
}

func TestTruncate(t *testing.T) {
	if Truncate("héllo", 2) != "hé" {
		t.Fatalf("unexpected rune truncation: %q", Truncate("héllo", 2))
	}
	if Truncate("abc", 0) != "" {
		t.Fatal("expected empty result for zero limit")
	}
}
