package validation

import (
	"errors"
	"strings"
)

const (
	PasswordMinLength = 6
	PasswordMaxLength = 72
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong   = errors.New("password must not exceed 72 characters")
	ErrPasswordTooCommon = errors.New("password is too common, please choose a stronger one")
)

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return ErrPasswordTooShort
	}

	// Maximum length: 72 bytes (bcrypt limitation)
	// bcrypt rejects longer input instead of hashing it
	if len(password) > PasswordMaxLength {
		return ErrPasswordTooLong
	}

	// Check for common/weak patterns
	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "letmein",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return ErrPasswordTooCommon
		}
	}

	return nil
}
