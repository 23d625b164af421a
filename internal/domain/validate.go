package domain

import (
	"strings"
	"unicode/utf8"
)

// Maximum lengths for user-entered text.
const (
	MaxSwimlaneTitleLength = 200
	MaxProjectTitleLength  = 200
	MaxTaskTitleLength     = 500
	MaxColorLength         = 64
)

// validateTitle trims the title and checks it is non-empty and within max runes.
func validateTitle(field, title string, max int) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return NewValidationError(field, "is required", ErrTitleEmpty)
	}
	if utf8.RuneCountInString(trimmed) > max {
		return NewValidationError(field, "is too long", ErrTitleTooLong)
	}
	return nil
}
