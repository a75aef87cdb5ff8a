package whisper

import (
	"fmt"

	"scribe/internal/services"
)

// Params is the explicit, validated set of decoding options delegated to the
// model. Every recognized option has a default; nothing is forwarded opaquely.
type Params struct {
	// Language is the normalized base language code; empty selects language
	// detection from the first few seconds of audio.
	Language string
	// Task selects transcription (X->X) or translation (X->English).
	Task Task
	// InitialPrompt is optional text provided as a prompt for the first window.
	InitialPrompt string
	// ConditionOnPreviousText feeds the previous window's output back as a
	// prompt; disabling reduces failure loops at the cost of consistency.
	ConditionOnPreviousText bool
	// NoSpeechThreshold marks a segment as silence when the no-speech
	// probability exceeds it and decoding failed the logprob check.
	NoSpeechThreshold float64
	// BeamSize is the number of beams in beam search.
	BeamSize int
	// BestOf is the number of candidates when sampling with non-zero temperature.
	BestOf int
	// Temperature is the sampling temperature.
	Temperature float64
	// Patience is the beam search patience factor.
	Patience float64
	// LengthPenalty is the token length exponent; zero means the default
	// simple length normalization.
	LengthPenalty float64
}

// DefaultParams returns the decoding defaults matching the whisper CLI.
func DefaultParams() Params {
	return Params{
		Task:                    TaskTranscribe,
		ConditionOnPreviousText: true,
		NoSpeechThreshold:       0.6,
		BeamSize:                5,
		BestOf:                  5,
		Temperature:             0,
		Patience:                1.0,
	}
}

// Validate rejects out-of-range option values before any model work starts.
func (p Params) Validate() error {
	switch p.Task {
	case TaskTranscribe, TaskTranslate:
	default:
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("invalid task %q", p.Task), nil)
	}
	if p.NoSpeechThreshold < 0 || p.NoSpeechThreshold > 1 {
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("no-speech threshold %v out of range [0,1]", p.NoSpeechThreshold), nil)
	}
	if p.BeamSize <= 0 {
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("beam size %d must be positive", p.BeamSize), nil)
	}
	if p.BestOf <= 0 {
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("best-of %d must be positive", p.BestOf), nil)
	}
	if p.Temperature < 0 {
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("temperature %v must be >= 0", p.Temperature), nil)
	}
	if p.Patience <= 0 {
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("patience %v must be positive", p.Patience), nil)
	}
	if p.LengthPenalty < 0 {
		return services.Wrap(services.ErrConfiguration, "whisper", "params", fmt.Sprintf("length penalty %v must be >= 0", p.LengthPenalty), nil)
	}
	return nil
}
