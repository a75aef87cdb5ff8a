package annotate

import (
	"math"
	"strings"

	"scribe/internal/mmif"
	"scribe/internal/whisper"
)

// TimeUnit selects the unit of emitted time frame boundaries.
type TimeUnit string

const (
	UnitMilliseconds TimeUnit = "milliseconds"
	UnitSeconds      TimeUnit = "seconds"
)

// BufferSource selects how the canonical character buffer is obtained.
type BufferSource string

const (
	// ModelText uses the model's own full-text string as the buffer.
	ModelText BufferSource = "model"
	// RebuiltText joins the stripped word surface forms with single spaces.
	// Cursor advancement and buffer construction use the same joiner, so
	// offsets stay consistent even when the model text carries irregular
	// whitespace.
	RebuiltText BufferSource = "rebuilt"
)

// Mapper walks a transcript and emits the parallel annotation set into a view.
type Mapper struct {
	Unit   TimeUnit
	Source BufferSource
}

// Summary counts what one mapping pass emitted, for logging and history.
type Summary struct {
	Language  string
	Tokens    int
	Frames    int
	Sentences int
}

// DeclareContains registers the output shape of a mapping pass on the view:
// which annotation kinds will appear, and for time frames, the source media
// document and time unit. Declaration precedes emission so consumers can
// discover the shape without scanning records.
func (m Mapper) DeclareContains(view *mmif.View, mediaDocID string) {
	view.NewContain(mmif.TextDocument, nil)
	view.NewContain(mmif.Token, nil)
	view.NewContain(mmif.TimeFrame, mmif.Properties{
		"timeUnit": string(m.unit()),
		"document": mediaDocID,
	})
	view.NewContain(mmif.Alignment, nil)
	view.NewContain(mmif.Sentence, nil)
}

// Map emits the annotation set for one transcript into the view: the text
// document, a media-to-text alignment, per-word tokens and speech time frames
// with frame-to-token alignments, and one sentence grouping per segment.
// lang is the normalized base language tagged onto the text document; empty
// falls back to the language the model detected.
func (m Mapper) Map(view *mmif.View, mediaDocID string, transcript *whisper.Transcript, lang string) (Summary, error) {
	if lang == "" {
		lang = transcript.Language
	}
	buffer := m.buffer(transcript)
	runes := []rune(buffer)

	textDoc := view.NewTextDocument(buffer, lang)
	view.NewAnnotation(mmif.Alignment, mmif.Properties{
		"source": mediaDocID,
		"target": textDoc.ID(),
	})
	textRef := view.DocumentRef(textDoc)

	summary := Summary{Language: lang}
	cursor := 0
	for _, segment := range transcript.Segments {
		if len(segment.Words) == 0 || strings.TrimSpace(segment.Text) == "" {
			continue
		}
		var tokenIDs []string
		for _, word := range segment.Words {
			surface := strings.TrimSpace(word.Word)
			if surface == "" {
				continue
			}
			start, end, err := Locate(runes, cursor, surface)
			if err != nil {
				return summary, err
			}
			cursor = end

			token := view.NewAnnotation(mmif.Token, mmif.Properties{
				"word":     surface,
				"start":    start,
				"end":      end,
				"document": textRef,
			})
			tokenIDs = append(tokenIDs, token.ID())
			summary.Tokens++

			frame := view.NewAnnotation(mmif.TimeFrame, mmif.Properties{
				"frameType": "speech",
				"start":     m.timestamp(word.Start),
				"end":       m.timestamp(word.End),
			})
			summary.Frames++
			view.NewAnnotation(mmif.Alignment, mmif.Properties{
				"source": frame.ID(),
				"target": token.ID(),
			})
		}
		if len(tokenIDs) == 0 {
			continue
		}
		view.NewAnnotation(mmif.Sentence, mmif.Properties{
			"targets": tokenIDs,
			"text":    segment.Text,
		})
		summary.Sentences++
	}
	return summary, nil
}

// buffer returns the canonical character buffer tokens are located in. The
// text document carries the same string, so token offsets always point into
// the emitted document.
func (m Mapper) buffer(transcript *whisper.Transcript) string {
	if m.Source != RebuiltText {
		return transcript.Text
	}
	var words []string
	for _, segment := range transcript.Segments {
		if len(segment.Words) == 0 || strings.TrimSpace(segment.Text) == "" {
			continue
		}
		for _, word := range segment.Words {
			if surface := strings.TrimSpace(word.Word); surface != "" {
				words = append(words, surface)
			}
		}
	}
	return strings.Join(words, " ")
}

// timestamp converts a float-second model timestamp into the configured unit.
// Millisecond conversion rounds to the nearest integer so 1.5s is exactly 1500.
func (m Mapper) timestamp(seconds float64) any {
	if m.unit() == UnitMilliseconds {
		return int64(math.Round(seconds * 1000))
	}
	return seconds
}

func (m Mapper) unit() TimeUnit {
	if m.Unit == "" {
		return UnitMilliseconds
	}
	return m.Unit
}
