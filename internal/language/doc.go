// Package language provides language code normalization and the filename
// hints used to pick subtitle files.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names,
// filename hint lists) are consolidated here so the subtitle matcher and the
// configuration layer agree on what "en" means.
package language
