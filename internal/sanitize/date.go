package sanitize

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

var reDateToken = regexp.MustCompile(`(\d{1,4})[-/](\d{1,2})[-/](\d{1,4})`)

// FormatDate locates the first sep-delimited 3-part date token in s and
// canonicalizes it to DD/MM/YYYY. Year-first vs day-first is decided by which
// outer part is 4 digits long. Implausible years (> 2100) are assumed to be
// digit-reversed extraction artifacts and repaired by reversing the year
// token. Anything that still fails validation yields "" rather than a guess.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	m := reDateToken.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	a, b, c := m[1], m[2], m[3]

	var dayTok, yearTok string
	if len(a) == 4 {
		yearTok, dayTok = a, c
	} else {
		dayTok, yearTok = a, c
	}

	day, _ := strconv.Atoi(dayTok)
	month, _ := strconv.Atoi(b)
	year, _ := strconv.Atoi(yearTok)
	if year < 100 {
		year += 2000
	}
	if year > 2100 {
		// Digit-reversed year, e.g. "4202" for 2024.
		year, _ = strconv.Atoi(rtltext.Reverse(yearTok))
	}

	if year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year)
}
