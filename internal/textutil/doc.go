// Package textutil provides text processing utilities for subtitle overlays,
// filenames, and fuzzy name comparison.
//
// The primary use cases are:
//   - Turning raw cue text (markup, entities, ASS override tags) into plain,
//     length-bounded, line-wrapped overlay text that is safe to hand to ffmpeg
//   - Building filename slugs from cue text
//   - Computing edit distance between file base names
package textutil
