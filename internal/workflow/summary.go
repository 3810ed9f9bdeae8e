package workflow

import (
	"time"

	"subgif/internal/planner"
)

// VideoResult reports the outcome for one video.
type VideoResult struct {
	Video       string            `json:"video" yaml:"video"`
	Name        string            `json:"name" yaml:"name"`
	Source      planner.CueSource `json:"source,omitempty" yaml:"source,omitempty"`
	Subtitle    string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Jobs        int               `json:"jobs" yaml:"jobs"`
	Succeeded   int               `json:"succeeded" yaml:"succeeded"`
	Failed      int               `json:"failed" yaml:"failed"`
	Skipped     int               `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duration    time.Duration     `json:"duration" yaml:"duration"`
	FailureKind string            `json:"failure_kind,omitempty" yaml:"failure_kind,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`

	// Plan is the planned job list; empty when planning failed.
	Plan planner.Plan `json:"-" yaml:"-"`
}

// Summary is the result of one batch run.
type Summary struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	InputDir  string        `json:"input_dir" yaml:"input_dir"`
	OutputDir string        `json:"output_dir" yaml:"output_dir"`
	DryRun    bool          `json:"dry_run" yaml:"dry_run"`
	Videos    []VideoResult `json:"videos" yaml:"videos"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Totals sums job counts across all videos.
func (s Summary) Totals() (jobs, succeeded, failed int) {
	for _, v := range s.Videos {
		jobs += v.Jobs
		succeeded += v.Succeeded
		failed += v.Failed
	}
	return jobs, succeeded, failed
}

// FailedVideos counts videos that could not be planned.
func (s Summary) FailedVideos() int {
	count := 0
	for _, v := range s.Videos {
		if v.Error != "" {
			count++
		}
	}
	return count
}

// HasFailures reports whether any video or clip failed.
func (s Summary) HasFailures() bool {
	_, _, failed := s.Totals()
	return failed > 0 || s.FailedVideos() > 0
}

// Plans returns the job lists of every planned video in batch order.
func (s Summary) Plans() []planner.Plan {
	plans := make([]planner.Plan, 0, len(s.Videos))
	for _, v := range s.Videos {
		if v.Error != "" {
			continue
		}
		plans = append(plans, v.Plan)
	}
	return plans
}
