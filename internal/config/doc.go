// Package config loads, normalizes, and validates subgif configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the SUBGIF_FFMPEG and SUBGIF_FFPROBE environment
// overrides. Always obtain settings through this package so downstream code
// receives absolute paths, canonical log formats, and clear validation errors.
package config
