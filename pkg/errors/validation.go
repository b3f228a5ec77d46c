package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds contig and dataset names.
const maxNameLength = 256

// ValidateContigName checks that a contig name is printable and reasonably
// short. Contig names end up in SVG attributes and tooltip text.
func ValidateContigName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "contig name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "contig name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "contig name contains invalid control characters")
		}
	}
	return nil
}

// ValidateDatasetName validates a dataset name used as a database key or URL
// path segment. It rejects names that could be used for path traversal or
// query injection.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 256 characters
//   - No control characters
//   - No path separators or traversal sequences
//   - No leading "$" (MongoDB operator prefix)
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "dataset name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "dataset name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "dataset name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "dataset name contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(name, "$") {
		return New(ErrCodeInvalidName, "dataset name cannot start with $")
	}
	return nil
}
