package errors

import (
	"slices"
	"strings"
)

// ValidateFieldValue checks that value can be stored as a bbgroup field.
// Field values share a line with other fields, so they cannot contain the
// field separator or a line break.
func ValidateFieldValue(key, value string) error {
	if i := strings.IndexAny(value, ";\n\r"); i >= 0 {
		return New(ErrCodeInvalidField, "%s cannot contain %q", key, value[i])
	}
	return nil
}

// ValidateFormats checks every entry of formats against the allowed set.
func ValidateFormats(formats []string, allowed ...string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ValidateMode checks a collapse mode name.
func ValidateMode(mode string) error {
	switch mode {
	case "single", "combined":
		return nil
	case "":
		return New(ErrCodeInvalidMode, "mode cannot be empty")
	default:
		return New(ErrCodeInvalidMode, "unknown mode %q (want single or combined)", mode)
	}
}
