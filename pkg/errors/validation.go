package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDimensions checks a container size supplied from the outside
// (flags, config). Sizes below the usable threshold are not errors, they
// produce an empty render; only non-finite or negative values are rejected.
func ValidateDimensions(width, height float64) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return New(ErrCodeInvalidInput, "%s must be a finite number", v.name)
		}
		if v.val < 0 {
			return New(ErrCodeInvalidInput, "%s must not be negative, got %g", v.name, v.val)
		}
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
