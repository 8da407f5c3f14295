package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a data column name.
//
// Column names come from untrusted panel data and end up in logs and in
// generated DOT and SVG output, so control characters are rejected.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "column name cannot be empty")
	}

	const maxColumnLength = 256
	if len(name) > maxColumnLength {
		return New(ErrCodeInvalidInput, "column name too long (max %d characters)", maxColumnLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed. The comparison is
// exact; callers normalise case first.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
