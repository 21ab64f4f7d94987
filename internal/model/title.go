package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLen is the maximum length of a folder or bookmark title, in runes.
const MaxTitleLen = 100

// ValidationError reports a title rejected locally, before any host call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ValidateTitle trims the title and checks the 1-100 character bounds.
// Returns the trimmed title on success.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", &ValidationError{Reason: "title cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLen {
		return "", &ValidationError{
			Reason: fmt.Sprintf("title must be %d characters or less", MaxTitleLen),
		}
	}
	return trimmed, nil
}
