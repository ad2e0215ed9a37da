package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qiwa-tools/contract-extract/constants"
)

// ExtractJSONBlock pulls the outermost {...} document out of a model reply
// that may wrap it in prose or markdown fences.
func ExtractJSONBlock(content string) ([]byte, error) {
	s := strings.TrimSpace(content)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in content", ErrBadResponse)
	}
	return []byte(s[start : end+1]), nil
}

// SanitizeFillJSON repairs a near-miss reply so the overall document can still
// validate:
//   - removes keys outside the requested field set (and the side maps)
//   - coerces numeric values to strings for the field keys
//   - replaces null field values with ""
//   - backfills "" for requested fields the model omitted
func SanitizeFillJSON(raw []byte, fields []constants.Field, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	allowed := make(map[string]struct{}, len(fields)+2)
	for _, f := range fields {
		allowed[string(f)] = struct{}{}
	}
	allowed["_evidence"] = struct{}{}
	allowed["_confidence"] = struct{}{}

	dropped := make([]string, 0, 8)
	for k, v := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		if k == "_evidence" || k == "_confidence" {
			if _, ok := v.(map[string]any); !ok {
				delete(m, k)
				dropped = append(dropped, k+"(type)")
			}
			continue
		}
		switch t := v.(type) {
		case string:
			m[k] = strings.TrimSpace(t)
		case float64:
			if t == float64(int64(t)) {
				m[k] = fmt.Sprintf("%d", int64(t))
			} else {
				m[k] = fmt.Sprintf("%g", t)
			}
			dropped = append(dropped, k+"(number)")
		case nil:
			m[k] = ""
			dropped = append(dropped, k+"(null)")
		default:
			m[k] = ""
			dropped = append(dropped, k+"(type)")
		}
	}
	for _, f := range fields {
		if _, ok := m[string(f)]; !ok {
			m[string(f)] = ""
			dropped = append(dropped, string(f)+"(missing)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.fill.lenient_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// ParseFillResult splits a validated document into values and the side maps.
func ParseFillResult(doc []byte, fields []constants.Field) (FillResult, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return FillResult{}, fmt.Errorf("parse fill result: %w", err)
	}
	res := FillResult{
		Values:     make(map[constants.Field]string, len(fields)),
		Evidence:   make(map[constants.Field]string),
		Confidence: make(map[constants.Field]float64),
	}
	for _, f := range fields {
		if s, ok := m[string(f)].(string); ok {
			res.Values[f] = strings.TrimSpace(s)
		}
	}
	if ev, ok := m["_evidence"].(map[string]any); ok {
		for k, v := range ev {
			if s, ok := v.(string); ok {
				res.Evidence[constants.Field(k)] = s
			}
		}
	}
	if cf, ok := m["_confidence"].(map[string]any); ok {
		for k, v := range cf {
			if f, ok := v.(float64); ok {
				res.Confidence[constants.Field(k)] = f
			}
		}
	}
	return res, nil
}
