// Package metadata declares what the annotation service consumes, produces,
// and accepts as request parameters, so consumers can discover the interface
// without reading code.
package metadata

import (
	"scribe/internal/mmif"
	"scribe/internal/whisper"
)

// Application identity constants.
const (
	AppName         = "Whisper Annotator"
	AppIdentifier   = "scribe/whisper-annotator"
	AppVersion      = "1.0.0"
	AppLicense      = "Apache 2.0"
	AnalyzerName    = "openai-whisper"
	AnalyzerLicense = "MIT"
)

// delegatedPrefix marks parameter descriptions forwarded to the model CLI.
const delegatedPrefix = "(delegated to whisper) "

// App is the full service declaration served on the metadata endpoint.
type App struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Identifier      string      `json:"identifier"`
	AppVersion      string      `json:"app_version"`
	AppLicense      string      `json:"app_license"`
	Analyzer        string      `json:"analyzer"`
	AnalyzerLicense string      `json:"analyzer_license"`
	Input           []TypeSpec  `json:"input"`
	Output          []TypeSpec  `json:"output"`
	Parameters      []Parameter `json:"parameters"`
}

// TypeSpec names one input or output annotation type, with type-scoped
// properties such as the time unit on emitted time frames.
type TypeSpec struct {
	Type       string            `json:"@type"`
	Required   bool              `json:"required,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Parameter declares one request option: its type, accepted choices, and the
// default applied when the request omits it.
type Parameter struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Choices     []string `json:"choices,omitempty"`
	Default     string   `json:"default"`
}

// Declaration builds the service metadata with the given request defaults.
func Declaration(defaults Request) App {
	return App{
		Name:            AppName,
		Description:     "Transcribes audio and video documents with Whisper ASR and emits time-aligned text annotations.",
		Identifier:      AppIdentifier,
		AppVersion:      AppVersion,
		AppLicense:      AppLicense,
		Analyzer:        AnalyzerName,
		AnalyzerLicense: AnalyzerLicense,
		Input: []TypeSpec{
			{Type: mmif.AudioDocument},
			{Type: mmif.VideoDocument},
		},
		Output: []TypeSpec{
			{Type: mmif.TextDocument},
			{Type: mmif.TimeFrame, Properties: map[string]string{"timeUnit": defaults.TimeUnit}},
			{Type: mmif.Alignment},
			{Type: mmif.Token},
			{Type: mmif.Sentence},
		},
		Parameters: parameters(defaults),
	}
}

func parameters(defaults Request) []Parameter {
	return []Parameter{
		{
			Name: "modelSize",
			Description: "Size of the model to use. With modelLang=en and a non-large, non-turbo tier, " +
				"an English-only variant is substituted for speed and accuracy. Aliases: " +
				"tiny=t, base=b, small=s, medium=m, large=l, large-v2=l2, large-v3=l3, turbo=tu.",
			Type:    "string",
			Choices: whisper.Sizes(),
			Default: defaults.ModelSize,
		},
		{
			Name: "modelLang",
			Description: "ISO 639 language code of the audio, optionally region-qualified (e.g. en-US). " +
				"The region is recorded but not used for transcription. When empty, the language is " +
				"detected from the first few seconds of audio. Unsupported codes are rejected before " +
				"model invocation.",
			Type:    "string",
			Default: defaults.ModelLang,
		},
		{
			Name:        "timeUnit",
			Description: "Unit of emitted time frame boundaries.",
			Type:        "string",
			Choices:     []string{"milliseconds", "seconds"},
			Default:     defaults.TimeUnit,
		},
		{
			Name:        "task",
			Description: delegatedPrefix + "perform X->X speech recognition ('transcribe') or X->English translation ('translate').",
			Type:        "string",
			Choices:     []string{"transcribe", "translate"},
			Default:     defaults.Task,
		},
		{
			Name:        "initialPrompt",
			Description: delegatedPrefix + "optional text to provide as a prompt for the first window.",
			Type:        "string",
			Default:     defaults.InitialPrompt,
		},
		{
			Name: "conditionOnPreviousText",
			Description: delegatedPrefix + "provide the previous output as a prompt for the next window; disabling " +
				"may make text inconsistent across windows but avoids failure loops.",
			Type:    "boolean",
			Default: formatBool(defaults.ConditionOnPreviousText),
		},
		{
			Name: "noSpeechThreshold",
			Description: delegatedPrefix + "consider a segment silence when the no-speech probability exceeds this " +
				"value and decoding failed the log-probability check.",
			Type:    "number",
			Default: formatFloat(defaults.NoSpeechThreshold),
		},
		{
			Name:        "beamSize",
			Description: delegatedPrefix + "number of beams in beam search.",
			Type:        "integer",
			Default:     formatInt(defaults.BeamSize),
		},
		{
			Name:        "bestOf",
			Description: delegatedPrefix + "number of candidates when sampling with non-zero temperature.",
			Type:        "integer",
			Default:     formatInt(defaults.BestOf),
		},
		{
			Name:        "temperature",
			Description: delegatedPrefix + "sampling temperature.",
			Type:        "number",
			Default:     formatFloat(defaults.Temperature),
		},
		{
			Name:        "patience",
			Description: delegatedPrefix + "beam search patience factor.",
			Type:        "number",
			Default:     formatFloat(defaults.Patience),
		},
		{
			Name:        "lengthPenalty",
			Description: delegatedPrefix + "token length exponent; zero selects simple length normalization.",
			Type:        "number",
			Default:     formatFloat(defaults.LengthPenalty),
		},
	}
}
