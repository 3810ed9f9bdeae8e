package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary subgif shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// MediaRequirements describes the FFmpeg tools used for rendering and probing.
// ffprobe is optional because durations can be scraped from ffmpeg itself.
func MediaRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegBinary, Description: "Renders GIF clips with burned-in text"},
		{Name: "FFprobe", Command: ffprobeBinary, Description: "Probes durations for videos without subtitles", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
