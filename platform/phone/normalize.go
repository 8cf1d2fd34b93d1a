// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatInternational renders a number in international notation
// ("+52 55 1234 5678"), parsing local numbers against region. Numbers that
// do not parse or are not valid are returned trimmed.
func FormatInternational(input, region string) string {
	return format(input, region, phonenumbers.INTERNATIONAL)
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	return format(input, region, phonenumbers.E164)
}

func format(input, region string, style phonenumbers.PhoneNumberFormat) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, style)
}
