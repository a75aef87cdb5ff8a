// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639 tags, region-qualified codes,
// full word forms, display names) are consolidated here so the model resolver
// and the annotation mapper agree on what a language request means. Whisper
// only supports a fixed subset of languages; validation against that subset
// happens here, before any model work starts.
package language
