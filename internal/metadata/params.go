package metadata

import (
	"fmt"
	"net/url"
	"strconv"

	"scribe/internal/services"
	"scribe/internal/whisper"
)

// Request is the validated parameter set for one annotation request. Fields
// mirror the declared parameters one to one.
type Request struct {
	ModelSize               string
	ModelLang               string
	TimeUnit                string
	Task                    string
	InitialPrompt           string
	ConditionOnPreviousText bool
	NoSpeechThreshold       float64
	BeamSize                int
	BestOf                  int
	Temperature             float64
	Patience                float64
	LengthPenalty           float64
}

// DefaultRequest returns the built-in parameter defaults, before any
// configuration file overrides.
func DefaultRequest() Request {
	params := whisper.DefaultParams()
	return Request{
		ModelSize:               "tiny",
		ModelLang:               "",
		TimeUnit:                "milliseconds",
		Task:                    string(whisper.TaskTranscribe),
		InitialPrompt:           params.InitialPrompt,
		ConditionOnPreviousText: params.ConditionOnPreviousText,
		NoSpeechThreshold:       params.NoSpeechThreshold,
		BeamSize:                params.BeamSize,
		BestOf:                  params.BestOf,
		Temperature:             params.Temperature,
		Patience:                params.Patience,
		LengthPenalty:           params.LengthPenalty,
	}
}

// ParseRequest overlays query parameters onto the defaults. Unknown parameter
// names and malformed values are rejected before any model work starts.
func ParseRequest(values url.Values, defaults Request) (Request, error) {
	req := defaults
	for name, given := range values {
		if len(given) == 0 {
			continue
		}
		value := given[0]
		var err error
		switch name {
		case "modelSize":
			req.ModelSize = value
		case "modelLang":
			req.ModelLang = value
		case "timeUnit":
			if value != "milliseconds" && value != "seconds" {
				err = fmt.Errorf("timeUnit must be milliseconds or seconds, got %q", value)
			}
			req.TimeUnit = value
		case "task":
			req.Task = value
		case "initialPrompt":
			req.InitialPrompt = value
		case "conditionOnPreviousText":
			req.ConditionOnPreviousText, err = parseBool(name, value)
		case "noSpeechThreshold":
			req.NoSpeechThreshold, err = parseFloat(name, value)
		case "beamSize":
			req.BeamSize, err = parseInt(name, value)
		case "bestOf":
			req.BestOf, err = parseInt(name, value)
		case "temperature":
			req.Temperature, err = parseFloat(name, value)
		case "patience":
			req.Patience, err = parseFloat(name, value)
		case "lengthPenalty":
			req.LengthPenalty, err = parseFloat(name, value)
		case "pretty":
			// Output formatting hint handled by the transport layer.
		default:
			err = fmt.Errorf("unknown parameter %q", name)
		}
		if err != nil {
			return Request{}, services.Wrap(services.ErrValidation, "metadata", "parse request", "", err)
		}
	}
	return req, nil
}

// Params translates the request into decoding options for the model, with the
// normalized base language filled in by the caller after resolution.
func (r Request) Params(baseLang string) whisper.Params {
	return whisper.Params{
		Language:                baseLang,
		Task:                    whisper.Task(r.Task),
		InitialPrompt:           r.InitialPrompt,
		ConditionOnPreviousText: r.ConditionOnPreviousText,
		NoSpeechThreshold:       r.NoSpeechThreshold,
		BeamSize:                r.BeamSize,
		BestOf:                  r.BestOf,
		Temperature:             r.Temperature,
		Patience:                r.Patience,
		LengthPenalty:           r.LengthPenalty,
	}
}

// Signature renders the request as string parameters for view signing.
func (r Request) Signature() map[string]string {
	sig := map[string]string{
		"modelSize":               r.ModelSize,
		"timeUnit":                r.TimeUnit,
		"task":                    r.Task,
		"conditionOnPreviousText": formatBool(r.ConditionOnPreviousText),
		"noSpeechThreshold":       formatFloat(r.NoSpeechThreshold),
		"beamSize":                formatInt(r.BeamSize),
		"bestOf":                  formatInt(r.BestOf),
		"temperature":             formatFloat(r.Temperature),
		"patience":                formatFloat(r.Patience),
		"lengthPenalty":           formatFloat(r.LengthPenalty),
	}
	if r.ModelLang != "" {
		sig["modelLang"] = r.ModelLang
	}
	if r.InitialPrompt != "" {
		sig["initialPrompt"] = r.InitialPrompt
	}
	return sig
}

func parseBool(name, value string) (bool, error) {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", name, value)
	}
	return parsed, nil
}

func parseFloat(name, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	return parsed, nil
}

func parseInt(name, value string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, value)
	}
	return parsed, nil
}

func formatBool(value bool) string {
	return strconv.FormatBool(value)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}
