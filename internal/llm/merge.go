package llm

import (
	"github.com/qiwa-tools/contract-extract/internal/entity"
)

// MergeFillEmpty copies model values into the record for fields that are still
// empty and reports how many were filled. Rule-extracted values always win;
// the model only ever fills gaps.
func MergeFillEmpty(rec *entity.Record, res FillResult) int {
	filled := 0
	for f, v := range res.Values {
		if v == "" {
			continue
		}
		if rec.SetIfEmpty(f, v) {
			filled++
		}
	}
	return filled
}
