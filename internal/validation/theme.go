package validation

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidColor          = errors.New("color must be a hex value like #ff6b9d")
	ErrInvalidWhatsAppNumber = errors.New("whatsapp number must contain 6 to 20 digits")
)

var (
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	whatsAppPattern = regexp.MustCompile(`^\+?[0-9]{6,20}$`)
)

// ValidateHexColor accepts #rgb and #rrggbb
func ValidateHexColor(color string) error {
	if !hexColorPattern.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

// ValidateWhatsAppNumber accepts digits with an optional leading +
func ValidateWhatsAppNumber(number string) error {
	if !whatsAppPattern.MatchString(number) {
		return ErrInvalidWhatsAppNumber
	}
	return nil
}
