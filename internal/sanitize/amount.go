package sanitize

import (
	"regexp"
	"strings"

	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

var (
	reNumericRun = regexp.MustCompile(`\d[\d.,]*`)
	reAmount     = regexp.MustCompile(`(\d[\d,]*)(?:\.\d+)?`)
	// Contract amounts always carry a ".00" fraction, so a token whose
	// character order was transposed leads with "00." instead of ending in it.
	reTransposed = regexp.MustCompile(`^00\.`)
)

// AmountToInt extracts a decimal/grouped amount and returns it as an integer
// digit string: "2,000.00" -> "2000". A transposed token such as "00.027,9"
// (mirror image of "9,720.00") is reversed whole before the usual
// strip-grouping / drop-fraction step.
func AmountToInt(s string) string {
	if s == "" {
		return ""
	}
	tok := reNumericRun.FindString(s)
	if tok == "" {
		return ""
	}
	tok = strings.TrimRight(tok, ".,")
	if reTransposed.MatchString(tok) {
		tok = rtltext.Reverse(tok)
	}
	m := reAmount.FindStringSubmatch(tok)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], ",", "")
}
