package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// VideoExtensions lists the container extensions treated as input videos.
var VideoExtensions = []string{".mp4", ".mkv", ".avi", ".flv", ".wmv", ".mov"}

// SubtitleExtensions lists the extensions treated as subtitle candidates.
var SubtitleExtensions = []string{".srt", ".ass", ".ssa"}

// ListVideos returns the video files directly inside dir, sorted by name.
func ListVideos(dir string) ([]string, error) {
	return ListByExtension(dir, VideoExtensions)
}

// ListSubtitles returns the subtitle files directly inside dir, sorted by name.
func ListSubtitles(dir string) ([]string, error) {
	return ListByExtension(dir, SubtitleExtensions)
}

// ListByExtension returns full paths of regular files in dir whose extension
// matches one of exts, compared case-insensitively. Results follow
// os.ReadDir order, which is sorted by file name.
func ListByExtension(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains(exts, ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// EnsureDir creates dir (and parents) when missing. It fails when path exists
// but is not a directory.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return os.MkdirAll(dir, 0o755)
	default:
		return err
	}
}

// RemoveMatching deletes regular files in dir whose name matches pattern
// (filepath.Match syntax) and returns how many were removed.
func RemoveMatching(dir, pattern string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
