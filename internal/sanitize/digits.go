// Package sanitize turns raw located substrings into canonical field values:
// digit-only identifiers, DD/MM/YYYY dates, integer amounts, and normalized
// phone numbers. Every function is pure and returns "" when the input cannot
// be repaired into a valid value.
package sanitize

import (
	"regexp"
	"strings"
)

var reDigitRun = regexp.MustCompile(`\d+`)

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(reDigitRun.FindAllString(s, -1), "")
}

var reSpaces = regexp.MustCompile(`\s+`)

// SqueezeSpaces removes all whitespace; IBANs arrive with stray spacing.
func SqueezeSpaces(s string) string {
	return reSpaces.ReplaceAllString(strings.TrimSpace(s), "")
}
