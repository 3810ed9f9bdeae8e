// Package timecode models points and spans on a subtitle/video timeline.
//
// A TimeCode is an immutable count of milliseconds that parses the SRT
// `HH:MM:SS,mmm` notation and the `HH:MM:SS[.ff]` clock notation reported by
// media probes, and renders both forms plus the `HH:MM:SS.mmm` form accepted
// by ffmpeg's -ss/-to options.
package timecode
