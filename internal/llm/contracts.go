package llm

import (
	"context"
	"errors"

	"github.com/qiwa-tools/contract-extract/constants"
)

// FillRequest asks the model for the schema fields the rule extractor left
// empty. Text is the normalized contract text, already repaired.
type FillRequest struct {
	Text   string
	Fields []constants.Field
}

// FillResult is the normalized shape we want back from the model. Values are
// keyed by the exact schema field names; Evidence and Confidence carry the
// model's per-field source quote and 0..1 self-assessment when provided.
type FillResult struct {
	Values     map[constants.Field]string
	Evidence   map[constants.Field]string
	Confidence map[constants.Field]float64
}

// FieldFiller is the interface the processor depends on.
type FieldFiller interface {
	FillFields(ctx context.Context, req FillRequest) (FillResult, []byte /*rawJSON*/, error)
}

var (
	// ErrMissingAPIKey means the filler was constructed without credentials.
	ErrMissingAPIKey = errors.New("llm: missing API key")
	// ErrBadResponse means the model reply had no usable JSON document.
	ErrBadResponse = errors.New("llm: unusable model response")
)
