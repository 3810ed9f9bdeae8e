// Package preflight checks that the environment can run a conversion: the
// media tools resolve on PATH, and the output directory and optional font file
// are usable. The doctor command renders its results.
package preflight
