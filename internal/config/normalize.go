package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeRender()
	c.normalizeMatching()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		if c.Logging.File, err = expandPath(file); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	if font := strings.TrimSpace(c.Render.FontFile); font != "" {
		if c.Render.FontFile, err = expandPath(font); err != nil {
			return fmt.Errorf("render.font_file: %w", err)
		}
	}
	return nil
}

// normalizeFFmpeg applies SUBGIF_FFMPEG and SUBGIF_FFPROBE, which take
// precedence over the config file.
func (c *Config) normalizeFFmpeg() {
	if value, ok := os.LookupEnv("SUBGIF_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.FFmpegBinary = value
	}
	if value, ok := os.LookupEnv("SUBGIF_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.FFprobeBinary = value
	}
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	if c.FFmpeg.FFmpegBinary == "" {
		c.FFmpeg.FFmpegBinary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeRender() {
	c.Render.FontColor = strings.TrimSpace(c.Render.FontColor)
	if c.Render.FontColor == "" {
		c.Render.FontColor = defaultFontColor
	}
	c.Render.BorderColor = strings.TrimSpace(c.Render.BorderColor)
	if c.Render.BorderColor == "" {
		c.Render.BorderColor = defaultBorderColor
	}
	if c.Render.TimeoutSeconds == 0 {
		c.Render.TimeoutSeconds = defaultRenderTimeout
	}
}

func (c *Config) normalizeMatching() {
	c.Matching.Policy = strings.ToLower(strings.TrimSpace(c.Matching.Policy))
	if c.Matching.Policy == "" {
		c.Matching.Policy = defaultMatchPolicy
	}
	c.Matching.Language = strings.ToLower(strings.TrimSpace(c.Matching.Language))
	if c.Matching.Language == "" {
		c.Matching.Language = defaultLanguage
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.VideoWorkers == 0 {
		c.Workflow.VideoWorkers = defaultVideoWorkers
	}
	if c.Workflow.ProbeTimeoutSeconds == 0 {
		c.Workflow.ProbeTimeoutSeconds = defaultProbeTimeoutSeconds
	}
	if c.Fallback.IntervalSeconds == 0 {
		c.Fallback.IntervalSeconds = defaultFallbackInterval
	}
	if c.Fallback.MaxDurationSeconds == 0 {
		c.Fallback.MaxDurationSeconds = defaultMaxDuration
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
