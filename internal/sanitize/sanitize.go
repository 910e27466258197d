// Package sanitize normalizes caller-supplied text before validation and
// persistence. Values are cleaned, length-capped, and checked for shape;
// rejection happens before any database round-trip.
package sanitize

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTextLength    = 1000
	maxAddressLength = 500
	maxNotesLength   = 2000
	maxPhoneLength   = 20
)

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	scriptProtocol   = regexp.MustCompile(`(?i)javascript:`)
	eventHandler     = regexp.MustCompile(`(?i)on\w+=`)
	nonPhoneChars    = regexp.MustCompile(`[^\d+]`)
)

func clean(input string, limit int) string {
	cleaned := strings.NewReplacer("<", "", ">", "").Replace(input)
	cleaned = scriptProtocol.ReplaceAllString(cleaned, "")
	cleaned = eventHandler.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > limit {
		cleaned = truncate(cleaned, limit)
	}
	return cleaned
}

// truncate caps s at limit bytes without splitting a multi-byte rune.
func truncate(s string, limit int) string {
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Text strips markup-ish characters and caps length for short free-text
// fields such as names and service types.
func Text(input string) string {
	return clean(input, maxTextLength)
}

func Address(input string) string {
	return clean(input, maxAddressLength)
}

func Notes(input string) string {
	return clean(input, maxNotesLength)
}

// Email lowercases and validates an address. Returns false when the input
// does not look like an email at all.
func Email(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if !emailPattern.MatchString(normalized) {
		return "", false
	}
	return normalized, true
}

// Phone keeps digits and a single leading plus, capped at 20 characters.
func Phone(input string) string {
	hasPrefix := strings.HasPrefix(strings.TrimSpace(input), "+")
	digits := nonPhoneChars.ReplaceAllString(input, "")
	digits = strings.ReplaceAll(digits, "+", "")

	if hasPrefix {
		digits = "+" + digits
	}
	if len(digits) > maxPhoneLength {
		digits = digits[:maxPhoneLength]
	}
	return digits
}

// TimeOfDay reports whether input is a valid HH:MM clock time.
func TimeOfDay(input string) bool {
	return timeOfDayPattern.MatchString(input)
}

// Date reports whether input is a valid ISO calendar date.
func Date(input string) bool {
	_, err := time.Parse("2006-01-02", input)
	return err == nil
}
