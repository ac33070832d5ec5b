package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateColumnName validates a dataset column name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidColumn, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColumn, "column name contains invalid control characters")
		}
	}

	return nil
}

// hexColorRegex matches 3-, 6- and 8-digit hex color codes with leading '#'.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColors is the small set of CSS color names the original palettes use.
var namedColors = map[string]bool{
	"white": true, "black": true, "grey": true, "gray": true,
	"red": true, "blue": true, "green": true, "yellow": true,
	"orange": true, "purple": true,
}

// ValidateColor validates a color value. Colors are either hex codes
// ("#ad310f", "#fff") or one of a small set of CSS color names.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}

	if hexColorRegex.MatchString(color) {
		return nil
	}
	if namedColors[strings.ToLower(color)] {
		return nil
	}

	return New(ErrCodeInvalidColor, "invalid color: %q (use hex like #ad310f or a basic CSS name)", color)
}

// ValidateOutputPath validates a figure output path for safety.
// It prevents path traversal and ensures a reasonable length.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidFormat, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidFormat, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidFormat, "output path contains invalid characters")
		}
	}

	return nil
}
