package subtitles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	srtPath := filepath.Join(dir, "movie.srt")
	if err := os.WriteFile(srtPath, []byte(twoCueSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	assPath := filepath.Join(dir, "movie.ass")
	if err := os.WriteFile(assPath, []byte(sampleASS), 0o644); err != nil {
		t.Fatalf("write ass: %v", err)
	}
	mislabelled := filepath.Join(dir, "other.ssa")
	if err := os.WriteFile(mislabelled, []byte(twoCueSRT), 0o644); err != nil {
		t.Fatalf("write ssa: %v", err)
	}

	for path, want := range map[string]int{srtPath: 2, assPath: 2, mislabelled: 2} {
		cues, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if len(cues) != want {
			t.Fatalf("Load(%s): expected %d cues, got %d", path, want, len(cues))
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeTextWindows1252(t *testing.T) {
	// "café" with 0xE9 for é, invalid as UTF-8.
	got, err := DecodeText([]byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if got != "café" {
		t.Fatalf("DecodeText() = %q, want café", got)
	}
}

func TestDecodeTextUTF16BOM(t *testing.T) {
	// UTF-16LE BOM followed by "hi".
	got, err := DecodeText([]byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00})
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if got != "hi" {
		t.Fatalf("DecodeText() = %q, want hi", got)
	}
}

func TestDecodeTextStripsUTF8BOM(t *testing.T) {
	got, err := DecodeText([]byte("\xEF\xBB\xBFhello"))
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if got != "hello" {
		t.Fatalf("DecodeText() = %q, want hello", got)
	}
}
