// Package services defines shared utilities consumed by the batch runner and
// the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, video names, and stage names for
//     logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent per-job failure kinds for the run summary.
//
// Use these helpers when wiring new pipeline steps so error classification
// and observability stay uniform across the batch.
package services
