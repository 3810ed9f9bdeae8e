// Package logging assembles the slog loggers used by subgif.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standardized field keys. WithContext tags log lines with the run id, video
// and stage carried on a context, so per-video work can be traced through a
// batch. NewNop gives tests and optional wiring a logger that cannot fail.
package logging
