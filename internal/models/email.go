package models

import (
	"regexp"
	"strings"

	"github.com/lhajoosten/studdit-api/internal/constants"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeEmail validates an email address and returns its canonical
// lowercase form. Length bound per RFC 5321.
func NormalizeEmail(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalidArgf("email cannot be empty")
	}
	if len(value) > constants.MaxEmailLength {
		return "", invalidArgf("email cannot exceed %d characters", constants.MaxEmailLength)
	}
	if !emailPattern.MatchString(value) {
		return "", invalidArgf("invalid email format: %s", value)
	}
	return strings.ToLower(value), nil
}
