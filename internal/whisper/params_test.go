package whisper

import (
	"errors"
	"testing"

	"scribe/internal/services"
)

func TestDefaultParamsAreValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default parameters failed validation: %v", err)
	}
}

func TestParamsValidateRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative no_speech_threshold", func(p *Params) { p.NoSpeechThreshold = -0.1 }},
		{"no_speech_threshold above one", func(p *Params) { p.NoSpeechThreshold = 1.5 }},
		{"zero beam size", func(p *Params) { p.BeamSize = 0 }},
		{"zero best of", func(p *Params) { p.BestOf = 0 }},
		{"negative temperature", func(p *Params) { p.Temperature = -1 }},
		{"negative patience", func(p *Params) { p.Patience = -0.5 }},
		{"invalid task", func(p *Params) { p.Task = "summarize" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.mutate(&params)
			if err := params.Validate(); !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}
