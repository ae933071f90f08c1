package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxViewportSide is the largest accepted viewport width or height in pixels.
const MaxViewportSide = 1 << 15

// nodeIDRegex matches node IDs: letters, digits, dash, underscore, dot, colon.
var nodeIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateNodeID validates a box node identifier.
//
// IDs appear in cache keys, file names of exported artifacts and URL paths
// of the HTTP API, so the rules are conservative:
//   - Non-empty, at most 128 characters
//   - Starts with a letter or digit
//   - Only letters, digits and ._:- afterwards
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidNodeID, "node id too long (max 128 characters)")
	}
	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "invalid node id: %q", id)
	}
	return nil
}

// ValidateViewport checks that a viewport has finite, positive sides no
// larger than [MaxViewportSide].
func ValidateViewport(width, height float64) error {
	for _, side := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(side.v) || math.IsInf(side.v, 0) {
			return New(ErrCodeInvalidViewport, "viewport %s must be finite", side.name)
		}
		if side.v <= 0 {
			return New(ErrCodeInvalidViewport, "viewport %s must be positive, got %g", side.name, side.v)
		}
		if side.v > MaxViewportSide {
			return New(ErrCodeInvalidViewport, "viewport %s too large (max %d)", side.name, MaxViewportSide)
		}
	}
	return nil
}

// ValidatePath validates a resource path referenced from a document, such as
// an image source. It prevents path traversal and ensures reasonable length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateColor checks a CSS hex color: #rgb, #rgba, #rrggbb or #rrggbbaa.
// The empty string is accepted and means "unset".
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if !strings.HasPrefix(c, "#") {
		return New(ErrCodeInvalidStyle, "color must start with #: %q", c)
	}
	hex := c[1:]
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return New(ErrCodeInvalidStyle, "invalid color length: %q", c)
	}
	for _, r := range hex {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return New(ErrCodeInvalidStyle, "invalid color: %q", c)
		}
	}
	return nil
}
