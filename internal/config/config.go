package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
}

// FFmpeg names the external media tools.
type FFmpeg struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
}

// Render contains the GIF rendering parameters passed to ffmpeg.
type Render struct {
	Scale          float64 `toml:"scale"`
	FontSize       int     `toml:"font_size"`
	FontColor      string  `toml:"font_color"`
	BorderWidth    int     `toml:"border_width"`
	BorderColor    string  `toml:"border_color"`
	BottomMargin   int     `toml:"bottom_margin"`
	FontFile       string  `toml:"font_file"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Retries        int     `toml:"retries"`
}

// Matching controls how a subtitle file is chosen for each video.
type Matching struct {
	// Policy is "substring" (name containment, then language hint, then first)
	// or "levenshtein" (closest base name).
	Policy string `toml:"policy"`
	// Language is the preferred subtitle language as an ISO 639 code.
	Language string `toml:"language"`
	// DropAds removes release-group credits and site plugs from subtitle cues
	// before clips are planned.
	DropAds bool `toml:"drop_ads"`
}

// Fallback controls synthetic cues for videos without usable subtitles.
type Fallback struct {
	IntervalSeconds int `toml:"interval_seconds"`
	// MaxDurationSeconds bounds probed durations; longer videos fail planning.
	MaxDurationSeconds int `toml:"max_duration_seconds"`
}

// Workflow contains batch concurrency and probe timing.
type Workflow struct {
	VideoWorkers        int `toml:"video_workers"`
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives JSON log lines in addition to the console.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for subgif.
type Config struct {
	Paths    Paths    `toml:"paths"`
	FFmpeg   FFmpeg   `toml:"ffmpeg"`
	Render   Render   `toml:"render"`
	Matching Matching `toml:"matching"`
	Fallback Fallback `toml:"fallback"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
}

const defaultConfigLocation = "~/.config/subgif/config.toml"

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subgif.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RenderTimeout returns the per-clip ffmpeg timeout.
func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.Render.TimeoutSeconds) * time.Second
}

// ProbeTimeout returns the per-video duration probe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Workflow.ProbeTimeoutSeconds) * time.Second
}

// FallbackInterval returns the width of synthetic cues.
func (c *Config) FallbackInterval() time.Duration {
	return time.Duration(c.Fallback.IntervalSeconds) * time.Second
}

// MaxFallbackDuration returns the longest probed duration accepted for fallback cues.
func (c *Config) MaxFallbackDuration() time.Duration {
	return time.Duration(c.Fallback.MaxDurationSeconds) * time.Second
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
