package language_test

import (
	"testing"

	"scribe/internal/language"
)

func TestNormalizeRegionQualified(t *testing.T) {
	base, region, err := language.Normalize("en-US")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if base != "en" {
		t.Fatalf("expected base en, got %q", base)
	}
	if region != "US" {
		t.Fatalf("expected region US, got %q", region)
	}
}

func TestNormalizeBareCodeHasNoInferredRegion(t *testing.T) {
	base, region, err := language.Normalize("en")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if base != "en" || region != "" {
		t.Fatalf("expected en with no region, got %q/%q", base, region)
	}
}

func TestNormalizeEmptySelectsDetection(t *testing.T) {
	base, region, err := language.Normalize("")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if base != "" || region != "" {
		t.Fatalf("expected empty base and region, got %q/%q", base, region)
	}
}

func TestNormalizeWordForm(t *testing.T) {
	base, _, err := language.Normalize("English")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if base != "en" {
		t.Fatalf("expected en, got %q", base)
	}
}

func TestNormalizeWhisperLegacyCodes(t *testing.T) {
	for _, code := range []string{"jw", "yue", "haw"} {
		base, _, err := language.Normalize(code)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", code, err)
		}
		if base != code {
			t.Fatalf("Normalize(%q): expected passthrough, got %q", code, base)
		}
	}
}

func TestNormalizeRejectsUnsupported(t *testing.T) {
	if _, _, err := language.Normalize("xx"); err == nil {
		t.Fatal("expected error for unsupported language")
	}
	if _, _, err := language.Normalize("not a language"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestSupported(t *testing.T) {
	if !language.Supported("en") {
		t.Fatal("expected en supported")
	}
	if language.Supported("xx") {
		t.Fatal("expected xx unsupported")
	}
}

func TestDisplayName(t *testing.T) {
	if got := language.DisplayName("en"); got != "English" {
		t.Fatalf("unexpected display name: %q", got)
	}
	if got := language.DisplayName(""); got != "Unknown" {
		t.Fatalf("expected Unknown for empty input, got %q", got)
	}
}
