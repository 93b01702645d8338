package utils

import (
	"regexp"
	"strings"
)

// Indonesian mobile numbers: +62, 62, or 0 followed by 8x and 7-11 more digits
var indonesianPhonePattern = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,10}$`)

// ValidateIndonesianPhone reports whether the input looks like a valid
// Indonesian mobile number. Spaces are ignored.
func ValidateIndonesianPhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	return indonesianPhonePattern.MatchString(cleaned)
}

// NormalizeWhatsAppNumber converts a local number to the +62 international
// form used in the Orders sheet and in wa.me links:
//
//	"081234567890"  -> "+6281234567890"
//	"6281234567890" -> "+6281234567890"
//	"+6281234567890" stays unchanged
//
// Numbers with any other shape get a "+62" prefix unless they already
// start with "+".
func NormalizeWhatsAppNumber(whatsapp string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(whatsapp), " ", "")
	if strings.HasPrefix(cleaned, "0") {
		return "+62" + cleaned[1:]
	}
	if strings.HasPrefix(cleaned, "62") && !strings.HasPrefix(cleaned, "+62") {
		return "+" + cleaned
	}
	if strings.HasPrefix(cleaned, "+62") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	return "+62" + cleaned
}
