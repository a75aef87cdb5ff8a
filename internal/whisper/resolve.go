package whisper

import (
	"fmt"
	"strings"

	langpkg "scribe/internal/language"
	"scribe/internal/services"
)

// ModelID is a concrete model identifier, usable as a cache key
// (e.g. "small.en", "large-v3").
type ModelID string

// Task selects the decoding objective.
type Task string

const (
	TaskTranscribe Task = "transcribe"
	TaskTranslate  Task = "translate"
)

// sizeAliases expands abbreviated model size names.
var sizeAliases = map[string]string{
	"t":  "tiny",
	"b":  "base",
	"s":  "small",
	"m":  "medium",
	"l":  "large",
	"l2": "large-v2",
	"l3": "large-v3",
	"tu": "turbo",
}

// modelSizes is the full set of multilingual model tiers.
var modelSizes = map[string]struct{}{
	"tiny":     {},
	"base":     {},
	"small":    {},
	"medium":   {},
	"large":    {},
	"large-v2": {},
	"large-v3": {},
	"turbo":    {},
}

// Sizes returns the accepted size names and aliases, for metadata and the CLI.
func Sizes() []string {
	return []string{
		"tiny", "t", "base", "b", "small", "s", "medium", "m",
		"large", "l", "large-v2", "l2", "large-v3", "l3", "turbo", "tu",
	}
}

// ExpandSize resolves a size alias to the full tier name. Unknown values pass
// through for Resolve to reject.
func ExpandSize(size string) string {
	normalized := strings.ToLower(strings.TrimSpace(size))
	if expanded, ok := sizeAliases[normalized]; ok {
		return expanded
	}
	return normalized
}

// Resolve turns a requested size alias, language code, and task into the
// concrete model identifier used as the cache key. When the language resolves
// to English and the tier is neither large nor turbo, the English-only model
// variant is substituted for speed and accuracy; English-only variants do not
// exist for large and turbo tiers.
func Resolve(size, lang string, task Task) (ModelID, string, error) {
	tier := ExpandSize(size)
	if _, ok := modelSizes[tier]; !ok {
		return "", "", services.Wrap(services.ErrConfiguration, "whisper", "resolve", fmt.Sprintf("invalid model size %q", size), nil)
	}

	switch task {
	case TaskTranscribe, TaskTranslate:
	default:
		return "", "", services.Wrap(services.ErrConfiguration, "whisper", "resolve", fmt.Sprintf("invalid task %q", task), nil)
	}

	base, _, err := langpkg.Normalize(lang)
	if err != nil {
		return "", "", services.Wrap(services.ErrConfiguration, "whisper", "resolve", "language", err)
	}

	if base == "en" && englishOnlyAvailable(tier) {
		return ModelID(tier + ".en"), base, nil
	}
	return ModelID(tier), base, nil
}

func englishOnlyAvailable(tier string) bool {
	return !strings.HasPrefix(tier, "large") && tier != "turbo"
}
