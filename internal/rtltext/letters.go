// Package rtltext repairs text mangled by right-to-left PDF extraction:
// mirrored labels, reversed sentences, and stray directional marks.
package rtltext

import (
	"strings"
	"unicode"
)

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// CountArabic counts Arabic letters (not Arabic-Indic digits or punctuation).
func CountArabic(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) && unicode.Is(unicode.Arabic, r) {
			n++
		}
	}
	return n
}

// CountLatin counts ASCII letters.
func CountLatin(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			n++
		}
	}
	return n
}

// CountDigits counts ASCII digits.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// looksMirrored reports whether reversing s would recover readable Arabic.
// Orientation is judged by the definite article: correctly ordered Arabic is
// dense in "ال" while its mirror image turns every one of them into "لا", so a
// run is mirrored exactly when reversal strictly gains occurrences. The strict
// inequality makes the repair a fixed point: once flipped, flipping back would
// lose occurrences, so the test can never fire twice on the same run.
func looksMirrored(s string) bool {
	return strings.Count(Reverse(s), arabicDefiniteArticle) > strings.Count(s, arabicDefiniteArticle)
}

const arabicDefiniteArticle = "ال"
