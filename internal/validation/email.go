package validation

import (
	"errors"
	"net/mail"
)

var (
	ErrEmailRequired = errors.New("email address is required")
	ErrEmailTooLong  = errors.New("email address is too long (max 254 characters)")
	ErrEmailFormat   = errors.New("invalid email address format")
)

// ValidateEmail validates email format and length
// Uses Go's built-in net/mail parser which follows RFC 5322
func ValidateEmail(email string) error {
	// Check length (RFC 5321: local part max 64, domain max 255, total max 254 with @)
	if len(email) > 254 {
		return ErrEmailTooLong
	}

	if email == "" {
		return ErrEmailRequired
	}

	// Parse using Go's RFC 5322 compliant parser
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return ErrEmailFormat
	}

	// Reject display-name forms like "Alice <alice@x.com>"
	if addr.Address != email {
		return ErrEmailFormat
	}

	return nil
}
