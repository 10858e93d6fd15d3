// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number contains a plausible amount of digits.
// The raw string is still stored as entered; this only rejects garbage input.
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[0-9]\d{6,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidOrderType reports whether t is one of the accepted order types
func ValidOrderType(t string) bool {
	switch t {
	case "pickup", "call-in", "delivery", "reservation", "other":
		return true
	}
	return false
}
