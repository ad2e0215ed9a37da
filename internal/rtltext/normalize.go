package rtltext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Options tunes the repair heuristics. The defaults were calibrated against the
// Qiwa contract template family and are not assumed to generalize further.
type Options struct {
	// SentenceFlipMinArabic is the minimum number of Arabic letters before a
	// colon-free line is considered for whole-line reversal. Short fragments
	// are left alone to avoid corrupting legitimate tokens.
	SentenceFlipMinArabic int

	// LabelMaxDigits is the digit count at which a colon side stops looking
	// like a label and starts looking like a value.
	LabelMaxDigits int
}

// DefaultOptions returns the thresholds observed to work on the Qiwa template.
func DefaultOptions() Options {
	return Options{
		SentenceFlipMinArabic: 10,
		LabelMaxDigits:        3,
	}
}

// Normalizer canonicalizes raw page text and repairs directional artifacts.
// Normalize is pure and idempotent: running it on its own output is a no-op.
type Normalizer struct {
	opts Options
}

func NewNormalizer(opts Options) *Normalizer {
	if opts.SentenceFlipMinArabic <= 0 {
		opts.SentenceFlipMinArabic = DefaultOptions().SentenceFlipMinArabic
	}
	if opts.LabelMaxDigits <= 0 {
		opts.LabelMaxDigits = DefaultOptions().LabelMaxDigits
	}
	return &Normalizer{opts: opts}
}

// stripBidiMarks removes the invisible directional controls PDF extractors
// leave behind (LRM/RLM, embedding and isolate controls).
func stripBidiMarks(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u200f', // LRM, RLM
			'\u202a', '\u202b', '\u202c', '\u202d', '\u202e', // embeddings/overrides
			'\u2066', '\u2067', '\u2068', '\u2069': // isolates
			return -1
		}
		return r
	}, s)
}

// Normalize applies NFKC, strips directional marks, and repairs per-line
// ordering artifacts. Empty lines are dropped; survivors are joined with \n.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)
	text = stripBidiMarks(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Count(line, ":") == 1 {
			line = n.repairLabelValue(line)
		} else {
			line = n.repairFreeText(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// repairLabelValue fixes lines of the shape "value :mirrored-label" or
// "mirrored-label: value": the mirrored side is reversed to recover the true
// label and the line is reordered to "label: value". The value side is never
// modified here; value-level flips belong to the sanitizers.
func (n *Normalizer) repairLabelValue(line string) string {
	idx := strings.Index(line, ":")
	left := strings.TrimSpace(line[:idx])
	right := strings.TrimSpace(line[idx+1:])

	switch {
	case n.isLabelCandidate(right) && looksMirrored(right):
		return Reverse(right) + ": " + left
	case n.isLabelCandidate(left) && looksMirrored(left):
		return Reverse(left) + ": " + right
	default:
		return line
	}
}

// repairFreeText reverses colon-free lines whose glyph order arrived mirrored.
// Only sentence-length Arabic runs are touched.
func (n *Normalizer) repairFreeText(line string) string {
	arabic := CountArabic(line)
	if arabic >= n.opts.SentenceFlipMinArabic && arabic > CountLatin(line) && looksMirrored(line) {
		return Reverse(line)
	}
	return line
}

// isLabelCandidate reports whether a colon side could be a field label:
// Arabic-only text with at most a couple of stray digits. Sides with Latin
// letters or digit runs are values, not labels.
func (n *Normalizer) isLabelCandidate(side string) bool {
	return CountArabic(side) >= 1 &&
		CountLatin(side) == 0 &&
		CountDigits(side) < n.opts.LabelMaxDigits
}
