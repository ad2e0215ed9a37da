package sanitize

import "strings"

// MobileFromLine normalizes a Saudi mobile number out of a label line.
// Handles "966 05xxxxxxxx", "05xxxxxxxx 966", and fused "96605xxxxxxxx"
// forms; the result is one unspaced number with the leading zero dropped
// after the country code.
func MobileFromLine(line string) string {
	if line == "" {
		return ""
	}
	groups := reDigitRun.FindAllString(line, -1)
	if len(groups) == 0 {
		return ""
	}

	has966 := false
	for _, g := range groups {
		if strings.HasPrefix(g, "966") {
			has966 = true
			break
		}
	}

	// Local number is 05xxxxxxxx (10 digits) or 5xxxxxxxx (9 digits).
	local := ""
	for _, g := range groups {
		if len(g) == 10 && strings.HasPrefix(g, "05") {
			local = g
			break
		}
		if len(g) == 9 && strings.HasPrefix(g, "5") {
			local = "0" + g
			break
		}
	}

	if has966 && local != "" {
		return "966" + local[1:]
	}

	joined := strings.Join(groups, "")
	if strings.HasPrefix(joined, "9660") {
		joined = "966" + joined[4:]
	}
	return joined
}
