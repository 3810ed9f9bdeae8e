package preflight

import (
	"subgif/internal/config"
	"subgif/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the path checks for cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckOutputDirectory("Output directory", cfg.Paths.OutputDir)}
	if cfg.Render.FontFile != "" {
		results = append(results, CheckReadableFile("Font file", cfg.Render.FontFile))
	}
	if cfg.Logging.File != "" {
		results = append(results, CheckOutputDirectory("Log directory", parentDir(cfg.Logging.File)))
	}
	return results
}

// CheckSystemDeps evaluates the external binaries cfg points at.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	return deps.CheckBinaries(deps.MediaRequirements(cfg.FFmpeg.FFmpegBinary, cfg.FFmpeg.FFprobeBinary))
}
