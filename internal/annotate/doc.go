// Package annotate converts whisper transcripts into time-aligned annotation
// views: one text document per media document, tokens with character offsets
// recovered by scanning the text, speech time frames, alignment edges, and
// per-segment sentence groupings.
package annotate
