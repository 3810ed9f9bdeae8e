package config

import (
	"errors"
	"fmt"
	"math"

	"subgif/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRender() error {
	if math.IsNaN(c.Render.Scale) || c.Render.Scale <= 0 || c.Render.Scale > 1 {
		return fmt.Errorf("render.scale must be in (0, 1], got %v", c.Render.Scale)
	}
	if c.Render.FontSize <= 0 {
		return errors.New("render.font_size must be positive")
	}
	if c.Render.BorderWidth < 0 {
		return errors.New("render.border_width must not be negative")
	}
	if c.Render.BottomMargin < 0 {
		return errors.New("render.bottom_margin must not be negative")
	}
	if c.Render.TimeoutSeconds < 0 {
		return errors.New("render.timeout_seconds must not be negative")
	}
	if c.Render.Retries < 0 || c.Render.Retries > maxRetries {
		return fmt.Errorf("render.retries must be between 0 and %d", maxRetries)
	}
	return nil
}

func (c *Config) validateMatching() error {
	switch c.Matching.Policy {
	case "substring", "levenshtein":
	default:
		return fmt.Errorf("matching.policy must be \"substring\" or \"levenshtein\", got %q", c.Matching.Policy)
	}
	if language.ToISO2(c.Matching.Language) == "" {
		return fmt.Errorf("matching.language must be an ISO 639 code or language name, got %q", c.Matching.Language)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.VideoWorkers < 1 || c.Workflow.VideoWorkers > maxVideoWorkers {
		return fmt.Errorf("workflow.video_workers must be between 1 and %d", maxVideoWorkers)
	}
	if c.Workflow.ProbeTimeoutSeconds < 0 {
		return errors.New("workflow.probe_timeout_seconds must not be negative")
	}
	if c.Fallback.IntervalSeconds < 1 {
		return errors.New("fallback.interval_seconds must be at least 1")
	}
	if c.Fallback.MaxDurationSeconds < c.Fallback.IntervalSeconds {
		return errors.New("fallback.max_duration_seconds must be at least fallback.interval_seconds")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
