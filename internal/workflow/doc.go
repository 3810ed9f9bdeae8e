// Package workflow converts a directory of videos into GIF clips.
//
// A Runner lists the videos in an input directory, plans one clip per cue for
// each of them, and renders the clips with ffmpeg. Videos are processed by a
// bounded worker pool; within a video, clips render one at a time in cue
// order. A failure is confined to the clip or video that produced it and is
// reported in the run Summary rather than aborting the batch.
//
// Each run holds an exclusive lock on its output directory and carries a
// unique run id that is attached to every log line it produces.
package workflow
