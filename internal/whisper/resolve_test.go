package whisper_test

import (
	"errors"
	"testing"

	"scribe/internal/services"
	"scribe/internal/whisper"
)

func TestResolveExpandsAliases(t *testing.T) {
	cases := map[string]whisper.ModelID{
		"t":  "tiny",
		"b":  "base",
		"s":  "small",
		"m":  "medium",
		"l":  "large",
		"l2": "large-v2",
		"l3": "large-v3",
		"tu": "turbo",
	}
	for alias, want := range cases {
		got, _, err := whisper.Resolve(alias, "", whisper.TaskTranscribe)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", alias, err)
		}
		if got != want {
			t.Fatalf("Resolve(%q): got %q want %q", alias, got, want)
		}
	}
}

func TestResolveEnglishSubstitution(t *testing.T) {
	model, base, err := whisper.Resolve("s", "en-US", whisper.TaskTranscribe)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if base != "en" {
		t.Fatalf("expected base language en, got %q", base)
	}
	if model != "small.en" {
		t.Fatalf("expected small.en, got %q", model)
	}
}

func TestResolveLargeAndTurboNeverGetEnglishSuffix(t *testing.T) {
	for _, size := range []string{"l3", "large-v3", "large", "l2", "tu", "turbo"} {
		model, _, err := whisper.Resolve(size, "en-US", whisper.TaskTranscribe)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", size, err)
		}
		if got := string(model); len(got) > 3 && got[len(got)-3:] == ".en" {
			t.Fatalf("Resolve(%q): unexpected english-only suffix on %q", size, model)
		}
	}
}

func TestResolveNonEnglishKeepsMultilingualModel(t *testing.T) {
	model, base, err := whisper.Resolve("small", "fr", whisper.TaskTranscribe)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if model != "small" || base != "fr" {
		t.Fatalf("unexpected resolution: %q / %q", model, base)
	}
}

func TestResolveEmptyLanguageSelectsDetection(t *testing.T) {
	model, base, err := whisper.Resolve("tiny", "", whisper.TaskTranscribe)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if model != "tiny" || base != "" {
		t.Fatalf("unexpected resolution: %q / %q", model, base)
	}
}

func TestResolveRejectsInvalidSize(t *testing.T) {
	_, _, err := whisper.Resolve("gigantic", "", whisper.TaskTranscribe)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestResolveRejectsInvalidTask(t *testing.T) {
	_, _, err := whisper.Resolve("tiny", "", whisper.Task("summarize"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestResolveRejectsUnsupportedLanguage(t *testing.T) {
	_, _, err := whisper.Resolve("tiny", "xx", whisper.TaskTranscribe)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
