// Package ffprobe wraps the probing side of FFmpeg.
//
// Inspect runs ffprobe and decodes its JSON report into Result. Prober builds
// on it to answer the one question the GIF pipeline asks of a video without
// subtitles: how long is it. When ffprobe is missing or reports no duration,
// Prober scrapes the "Duration:" banner that `ffmpeg -i` prints instead.
package ffprobe
