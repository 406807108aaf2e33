package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTaskID validates a task identifier.
// Identifiers travel through URLs, SVG element ids and store keys, so the
// rules are conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators
//   - Maximum length of 256 characters
func ValidateTaskID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTask, "task id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTask, "task id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTask, "task id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidTask, "task id cannot contain path separators: %q", id)
	}

	return nil
}

// hexColorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColorRegex matches CSS named colors and simple functional notations.
var namedColorRegex = regexp.MustCompile(`^([a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

// ValidateColor validates a color passed through to SVG fill/stroke
// attributes. Empty means "not configured" and is accepted.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if hexColorRegex.MatchString(color) || namedColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q", color)
}

// ValidatePath validates a file path received over the network.
// It prevents path traversal and keeps paths relative.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateMongoURI validates a MongoDB connection string scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidInput, "mongo URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidInput, "mongo URI must use mongodb:// or mongodb+srv:// scheme")
	}
	return nil
}
