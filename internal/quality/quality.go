// Package quality computes extraction-completeness reports. The report is a
// signal for callers (status labeling, logs); the extractor never consults it.
package quality

import (
	"math"
	"strings"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/entity"
)

// Report summarizes how much of the schema a record filled.
type Report struct {
	Filled  int               `json:"filled"`
	Total   int               `json:"total"`
	Percent float64           `json:"percent"` // one decimal place
	Missing []constants.Field `json:"missing"` // schema order
}

// Score counts fields whose trimmed value is non-empty. Total is always the
// schema size regardless of what the record holds.
func Score(rec *entity.Record) Report {
	fields := constants.ContractFields()
	rep := Report{
		Total:   len(fields),
		Missing: make([]constants.Field, 0, len(fields)),
	}
	for _, f := range fields {
		if strings.TrimSpace(rec.Value(f)) != "" {
			rep.Filled++
		} else {
			rep.Missing = append(rep.Missing, f)
		}
	}
	rep.Percent = math.Round(float64(rep.Filled)/float64(rep.Total)*1000) / 10
	return rep
}

// MissingPreview renders the first n missing field names for log lines,
// with an ellipsis when truncated.
func (r Report) MissingPreview(n int) string {
	names := make([]string, 0, n)
	for i, f := range r.Missing {
		if i == n {
			return strings.Join(names, ", ") + " ..."
		}
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
