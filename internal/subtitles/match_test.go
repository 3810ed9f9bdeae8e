package subtitles

import "testing"

var englishHints = []string{"eng", "en", "english"}

func TestMatcherSubstringPriority(t *testing.T) {
	m := NewMatcher(MatchSubstring, englishHints)
	got, ok := m.Match("movie", []string{"/in/movie.en.srt", "/in/other.srt"})
	if !ok || got != "/in/movie.en.srt" {
		t.Fatalf("Match() = %q, %v; want movie.en.srt", got, ok)
	}
}

func TestMatcherLanguageHintFallback(t *testing.T) {
	m := NewMatcher(MatchSubstring, englishHints)
	got, ok := m.Match("xyz", []string{"/in/foo.eng.srt", "/in/bar.srt"})
	if !ok || got != "/in/foo.eng.srt" {
		t.Fatalf("Match() = %q, %v; want foo.eng.srt", got, ok)
	}
}

func TestMatcherHintPriorityAcrossCandidates(t *testing.T) {
	m := NewMatcher(MatchSubstring, englishHints)
	got, _ := m.Match("xyz", []string{"/in/a.en.srt", "/in/b.ENG.srt"})
	if got != "/in/b.ENG.srt" {
		t.Fatalf("expected highest priority hint to win, got %q", got)
	}
}

func TestMatcherSubstringIsCaseSensitive(t *testing.T) {
	m := NewMatcher(MatchSubstring, nil)
	got, _ := m.Match("Movie", []string{"/in/first.srt", "/in/movie.srt", "/in/The Movie.srt"})
	if got != "/in/The Movie.srt" {
		t.Fatalf("expected case-sensitive containment, got %q", got)
	}
}

func TestMatcherFirstCandidateFallback(t *testing.T) {
	m := NewMatcher(MatchSubstring, englishHints)
	got, ok := m.Match("xyz", []string{"/in/aaa.srt", "/in/bbb.srt"})
	if !ok || got != "/in/aaa.srt" {
		t.Fatalf("Match() = %q, %v; want first candidate", got, ok)
	}
}

func TestMatcherNoCandidates(t *testing.T) {
	for _, policy := range []MatchPolicy{MatchSubstring, MatchLevenshtein} {
		if got, ok := NewMatcher(policy, englishHints).Match("movie", nil); ok || got != "" {
			t.Fatalf("%s: expected no match, got %q", policy, got)
		}
	}
}

func TestMatcherLevenshtein(t *testing.T) {
	m := NewMatcher(MatchLevenshtein, nil)
	tests := []struct {
		name       string
		video      string
		candidates []string
		want       string
	}{
		{"exact short-circuits", "movie", []string{"/in/movie.en.srt", "/in/movie.srt"}, "/in/movie.srt"},
		{"closest wins", "episode01", []string{"/in/trailer.srt", "/in/episode1.srt"}, "/in/episode1.srt"},
		{"ties keep first seen", "abc", []string{"/in/abd.srt", "/in/abe.srt"}, "/in/abd.srt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := m.Match(tt.video, tt.candidates); got != tt.want {
				t.Fatalf("Match() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMatchPolicy(t *testing.T) {
	if p, err := ParseMatchPolicy(""); err != nil || p != MatchSubstring {
		t.Fatalf("expected default substring, got %q %v", p, err)
	}
	if p, err := ParseMatchPolicy(" Levenshtein "); err != nil || p != MatchLevenshtein {
		t.Fatalf("expected levenshtein, got %q %v", p, err)
	}
	if _, err := ParseMatchPolicy("fuzzy"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
