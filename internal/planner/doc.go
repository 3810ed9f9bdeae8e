// Package planner turns one video into an ordered list of GIF render jobs.
//
// Planner picks the subtitle file for the video, parses its cues, and falls
// back to fixed-width cues from the probed duration when there are none. Each
// cue becomes a Job carrying the time range, overlay-safe text, and the output
// path {outputDir}/{video}/{video}-{index}-{slug}.gif. Unless planning dry,
// the video's output directory is created or emptied of GIFs first.
package planner
