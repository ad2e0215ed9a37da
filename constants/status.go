package constants

// DocStatus is the canonical per-document outcome of a batch run.
type DocStatus string

// Stable values (written to the Logs sheet and the run-log store as-is).
const (
	DocStatusOK         DocStatus = "OK"          // parsed, quality at or above threshold
	DocStatusLowQuality DocStatus = "LOW_QUALITY" // parsed, quality below threshold
	DocStatusSkipped    DocStatus = "SKIPPED"     // input empty or too small
	DocStatusError      DocStatus = "ERROR"       // unexpected failure for this document only
)

// DefaultQualityThreshold is the minimum completeness percentage for OK.
const DefaultQualityThreshold = 35.0

// MinInputChars is the smallest raw text considered a real document; anything
// shorter is SKIPPED rather than parsed.
const MinInputChars = 40
