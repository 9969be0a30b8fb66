package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node IDs accepted from request bodies.
const maxNodeIDLength = 1024

// ValidateNodeID validates a project-relative node ID received from outside
// the scanner (API bodies, saved graph files).
//
// Validation rules:
//   - ID cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No ".." segments
//   - No backslashes (IDs are forward-slash separated)
//
// Dots inside a segment ("v1..2.ts") are allowed; only whole ".." segments
// are rejected.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node ID cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node ID too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNodeID, "node ID contains invalid characters: %q", id)
		}
	}

	if strings.HasPrefix(id, "/") {
		return New(ErrCodeInvalidNodeID, "node ID must be relative: %q", id)
	}

	if strings.Contains(id, "\\") {
		return New(ErrCodeInvalidNodeID, "node ID cannot contain backslashes: %q", id)
	}

	if slices.Contains(strings.Split(id, "/"), "..") {
		return New(ErrCodeInvalidNodeID, "node ID cannot contain '..' segments: %q", id)
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of: %s)", format, strings.Join(allowed, ", "))
}
