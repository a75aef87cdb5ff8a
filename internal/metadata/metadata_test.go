package metadata_test

import (
	"errors"
	"net/url"
	"testing"

	"scribe/internal/metadata"
	"scribe/internal/services"
)

func TestDeclarationCarriesDefaults(t *testing.T) {
	app := metadata.Declaration(metadata.DefaultRequest())

	if app.Name == "" || app.Identifier == "" {
		t.Fatal("declaration missing identity fields")
	}
	if len(app.Input) != 2 {
		t.Fatalf("expected audio and video inputs, got %d", len(app.Input))
	}
	if len(app.Output) != 5 {
		t.Fatalf("expected five output types, got %d", len(app.Output))
	}

	byName := map[string]metadata.Parameter{}
	for _, param := range app.Parameters {
		byName[param.Name] = param
	}
	for _, name := range []string{
		"modelSize", "modelLang", "timeUnit", "task", "initialPrompt",
		"conditionOnPreviousText", "noSpeechThreshold",
		"beamSize", "bestOf", "temperature", "patience", "lengthPenalty",
	} {
		if _, ok := byName[name]; !ok {
			t.Fatalf("parameter %s not declared", name)
		}
	}
	if byName["modelSize"].Default != "tiny" {
		t.Fatalf("modelSize default: got %q want tiny", byName["modelSize"].Default)
	}
	if byName["noSpeechThreshold"].Default != "0.6" {
		t.Fatalf("noSpeechThreshold default: got %q want 0.6", byName["noSpeechThreshold"].Default)
	}
}

func TestParseRequestOverlaysDefaults(t *testing.T) {
	values := url.Values{
		"modelSize":               {"l3"},
		"modelLang":               {"en-US"},
		"task":                    {"translate"},
		"conditionOnPreviousText": {"false"},
		"noSpeechThreshold":       {"0.4"},
		"beamSize":                {"3"},
	}

	req, err := metadata.ParseRequest(values, metadata.DefaultRequest())
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if req.ModelSize != "l3" || req.ModelLang != "en-US" || req.Task != "translate" {
		t.Fatalf("overrides not applied: %+v", req)
	}
	if req.ConditionOnPreviousText {
		t.Fatal("conditionOnPreviousText override not applied")
	}
	if req.NoSpeechThreshold != 0.4 || req.BeamSize != 3 {
		t.Fatalf("numeric overrides not applied: %+v", req)
	}
	// Untouched fields keep defaults.
	if req.TimeUnit != "milliseconds" || req.BestOf != 5 {
		t.Fatalf("defaults lost: %+v", req)
	}
}

func TestParseRequestRejectsUnknownParameter(t *testing.T) {
	_, err := metadata.ParseRequest(url.Values{"modelsize": {"tiny"}}, metadata.DefaultRequest())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseRequestRejectsMalformedValues(t *testing.T) {
	cases := []url.Values{
		{"conditionOnPreviousText": {"maybe"}},
		{"noSpeechThreshold": {"high"}},
		{"beamSize": {"3.5"}},
		{"timeUnit": {"frames"}},
	}
	for _, values := range cases {
		if _, err := metadata.ParseRequest(values, metadata.DefaultRequest()); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("values %v: expected validation error, got %v", values, err)
		}
	}
}

func TestParseRequestIgnoresPretty(t *testing.T) {
	req, err := metadata.ParseRequest(url.Values{"pretty": {"true"}}, metadata.DefaultRequest())
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if req != metadata.DefaultRequest() {
		t.Fatalf("pretty changed the request: %+v", req)
	}
}

func TestSignatureOmitsEmptyOptionals(t *testing.T) {
	sig := metadata.DefaultRequest().Signature()
	if _, ok := sig["modelLang"]; ok {
		t.Fatal("empty modelLang should be omitted from signature")
	}
	if _, ok := sig["initialPrompt"]; ok {
		t.Fatal("empty initialPrompt should be omitted from signature")
	}
	if sig["modelSize"] != "tiny" || sig["task"] != "transcribe" {
		t.Fatalf("signature missing core parameters: %v", sig)
	}
}
