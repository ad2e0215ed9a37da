package sanitize

import (
	"regexp"
	"strings"

	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

// DefaultFlipMinArabic is the smallest Arabic run worth flipping; shorter
// values are more likely legitimate tokens than extraction artifacts.
const DefaultFlipMinArabic = 3

// FlipRTL reverses a free-text value whose glyph order arrived mirrored.
// Values containing an email address or any Latin letter pass through
// untouched; only Arabic-dominant runs of at least minArabic letters flip.
func FlipRTL(v string, minArabic int) string {
	if minArabic <= 0 {
		minArabic = DefaultFlipMinArabic
	}
	if strings.Contains(v, "@") || rtltext.CountLatin(v) > 0 {
		return v
	}
	if rtltext.CountArabic(v) >= minArabic {
		return rtltext.Reverse(v)
	}
	return v
}

// reSwapped matches the corrupted two-digit form "zero then a digit"; short
// counts in this template (trial days, leave days, overtime %) never start
// with zero, so "09" can only be a digit-swapped "90".
var reSwapped = regexp.MustCompile(`^0[1-9]$`)

// SwapShortNumber repairs digit-swapped two-digit counts.
func SwapShortNumber(v string) string {
	v = strings.TrimSpace(v)
	if reSwapped.MatchString(v) {
		return rtltext.Reverse(v)
	}
	return v
}
