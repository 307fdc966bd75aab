package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameLength   = errors.New("username must be between 3 and 50 characters")
	ErrUsernameChars    = errors.New("username may only contain letters, digits, dots, dashes and underscores")

	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long (max 200 characters)")
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)

// ValidateUsername validates a login name
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return ErrUsernameRequired
	}

	n := utf8.RuneCountInString(trimmed)
	if n < 3 || n > 50 {
		return ErrUsernameLength
	}

	if !usernamePattern.MatchString(trimmed) {
		return ErrUsernameChars
	}

	return nil
}

// ValidateName validates a display name such as a product name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ErrNameRequired
	}

	if utf8.RuneCountInString(trimmed) > 200 {
		return ErrNameTooLong
	}

	return nil
}
