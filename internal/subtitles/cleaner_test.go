package subtitles

import "testing"

func TestDropAdvertisementsRemovesCredits(t *testing.T) {
	cues := ParseSRT(`1
00:00:01,000 --> 00:00:03,000
www.OpenSubtitles.org

2
00:00:04,000 --> 00:00:06,000
Hello there!

3
00:00:07,000 --> 00:00:09,000
Subtitle by AwesomeSubs
`)

	kept, removed := DropAdvertisements(cues)
	if removed != 2 {
		t.Fatalf("expected 2 cues removed, got %d", removed)
	}
	if len(kept) != 1 || kept[0].Text != "Hello there!" {
		t.Fatalf("expected dialogue to remain, got %+v", kept)
	}
}

func TestIsAdvertisement(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Synced and corrected by someone", true},
		{"Visit https://example.com", true},
		{"Downloaded from YIFY", true},
		{"", false},
		{"Keep your subtitles close", false},
		{"I was by the door", false},
	}
	for _, tt := range tests {
		if got := IsAdvertisement(tt.text); got != tt.want {
			t.Fatalf("IsAdvertisement(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
