package validator

import (
	"errors"
	"regexp"
	"unicode"
)

// The error texts go straight into API responses, so they read as user
// messages rather than Go error strings.
var (
	ErrInvalidUsername = errors.New("Username at least 5 characters")
	ErrInvalidPassword = errors.New("Password must be at least 8 characters and contain at least 1 number and 1 capital letter")
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{5,30}$`)

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword requires at least 8 characters with at least one digit
// and one capital letter.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	hasDigit := false
	hasUpper := false
	for _, r := range password {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	if !hasDigit || !hasUpper {
		return ErrInvalidPassword
	}
	return nil
}
