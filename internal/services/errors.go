package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks invalid service configuration (bad model size,
	// unsupported language, malformed option values).
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks request payloads that fail validation before any
	// model work starts (unknown parameters, missing documents).
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks missing or unreadable media locations.
	ErrNotFound = errors.New("not found")
	// ErrExternalTool marks failures from subprocesses (whisper, ffmpeg).
	ErrExternalTool = errors.New("external tool error")
	// ErrDataConsistency marks a mismatch between the model's full text and
	// its per-word output discovered during offset reconstruction.
	ErrDataConsistency = errors.New("data consistency error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{component, operation, message} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ": ")
}
