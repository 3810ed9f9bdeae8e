// Package render turns planned jobs into animated GIFs by invoking ffmpeg.
//
// Each job is trimmed to its cue, optionally downscaled, and given a centred
// drawtext overlay near the bottom edge. Overlay text travels through a
// temporary text file with expansion disabled, so no cue text is ever parsed
// as filter-graph syntax. Output is written beside the target and renamed into
// place once ffmpeg succeeds.
package render
