package language

import (
	"fmt"
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// whisperSupported lists the language codes the Whisper tokenizer accepts.
// Mirrors the LANGUAGES table shipped with the model.
var whisperSupported = map[string]struct{}{
	"en": {}, "zh": {}, "de": {}, "es": {}, "ru": {}, "ko": {}, "fr": {},
	"ja": {}, "pt": {}, "tr": {}, "pl": {}, "ca": {}, "nl": {}, "ar": {},
	"sv": {}, "it": {}, "id": {}, "hi": {}, "fi": {}, "vi": {}, "he": {},
	"uk": {}, "el": {}, "ms": {}, "cs": {}, "ro": {}, "da": {}, "hu": {},
	"ta": {}, "no": {}, "th": {}, "ur": {}, "hr": {}, "bg": {}, "lt": {},
	"la": {}, "mi": {}, "ml": {}, "cy": {}, "sk": {}, "te": {}, "fa": {},
	"lv": {}, "bn": {}, "sr": {}, "az": {}, "sl": {}, "kn": {}, "et": {},
	"mk": {}, "br": {}, "eu": {}, "is": {}, "hy": {}, "ne": {}, "mn": {},
	"bs": {}, "kk": {}, "sq": {}, "sw": {}, "gl": {}, "mr": {}, "pa": {},
	"si": {}, "km": {}, "sn": {}, "yo": {}, "so": {}, "af": {}, "oc": {},
	"ka": {}, "be": {}, "tg": {}, "sd": {}, "gu": {}, "am": {}, "yi": {},
	"lo": {}, "uz": {}, "fo": {}, "ht": {}, "ps": {}, "tk": {}, "nn": {},
	"mt": {}, "sa": {}, "lb": {}, "my": {}, "bo": {}, "tl": {}, "mg": {},
	"as": {}, "tt": {}, "haw": {}, "ln": {}, "ha": {}, "ba": {}, "jw": {},
	"su": {}, "yue": {},
}

// words maps full word forms to Whisper codes for the common cases.
var words = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
	"turkish":    "tr",
	"ukrainian":  "uk",
	"vietnamese": "vi",
}

// Supported reports whether Whisper accepts the given base code.
func Supported(code string) bool {
	_, ok := whisperSupported[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// Normalize resolves a requested language into the Whisper base code plus an
// optional region qualifier. Region codes (e.g. "en-US") are accepted for
// recording purposes only; Whisper neither detects nor uses regional dialects.
// An empty input selects language-detection mode and returns empty strings.
// Unsupported languages are rejected here, before model invocation.
func Normalize(code string) (base, region string, err error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "", "", nil
	}

	if mapped, ok := words[trimmed]; ok {
		return mapped, "", nil
	}

	// Whisper's own codes take precedence over BCP 47 canonicalization; the
	// model set includes legacy subtags ("jw") and macrolanguage splits
	// ("yue") that Parse would rewrite.
	primary := trimmed
	if i := strings.IndexAny(trimmed, "-_"); i > 0 {
		primary = trimmed[:i]
	}

	tag, perr := xlang.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if perr != nil {
		if _, ok := whisperSupported[primary]; ok {
			return primary, "", nil
		}
		return "", "", fmt.Errorf("unrecognized language tag %q", code)
	}

	if r, conf := tag.Region(); conf == xlang.Exact {
		region = r.String()
	}

	if _, ok := whisperSupported[primary]; ok {
		return primary, region, nil
	}
	if b, _ := tag.Base(); b.String() != "" {
		if _, ok := whisperSupported[b.String()]; ok {
			return b.String(), region, nil
		}
	}
	return "", "", fmt.Errorf("unsupported language %q", code)
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code when no display
// name is available.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if tag, err := xlang.Parse(trimmed); err == nil {
		if name := display.English.Languages().Name(tag); name != "" {
			return name
		}
	}
	return strings.ToUpper(trimmed)
}
