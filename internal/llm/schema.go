package llm

import "github.com/qiwa-tools/contract-extract/constants"

// BuildFillJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Every requested field is a required string key; the side maps
// "_evidence" and "_confidence" are optional so a terse model reply still
// validates.
func BuildFillJSONSchema(fields []constants.Field) map[string]any {
	props := make(map[string]any, len(fields)+2)
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		props[string(f)] = map[string]any{"type": "string"}
		required = append(required, string(f))
	}
	props["_evidence"] = map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	props["_confidence"] = map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
