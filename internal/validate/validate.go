// Package validate applies the payload rules shared by the chat and contact
// endpoints. Validation errors describe the failing field for the security
// log; callers must map them to a generic HTTP message, never echo them.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Matches the shape of an address, nothing more. Deliverability is the
// webhook consumer's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// BoundedString trims the value and enforces presence and length.
func BoundedString(field, value string, required bool, maxLen int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			return "", &FieldError{Field: field, Reason: "required"}
		}
		return "", nil
	}
	if len(trimmed) > maxLen {
		return "", &FieldError{Field: field, Reason: fmt.Sprintf("exceeds %d chars", maxLen)}
	}
	return trimmed, nil
}

// Email normalizes to lowercase and checks the address shape.
func Email(field, value string, maxLen int) (string, error) {
	trimmed, err := BoundedString(field, value, true, maxLen)
	if err != nil {
		return "", err
	}
	trimmed = strings.ToLower(trimmed)
	if !emailPattern.MatchString(trimmed) {
		return "", &FieldError{Field: field, Reason: "invalid address"}
	}
	return trimmed, nil
}
