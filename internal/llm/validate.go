package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateFillDocument checks a candidate fill document against the response
// schema built for the request. Schema construction problems surface as-is; a
// document that fails to conform comes back wrapped in ErrBadResponse so
// callers can treat it like any other malformed model output.
func ValidateFillDocument(schema map[string]any, doc []byte) error {
	compiled, err := compileFillSchema(schema)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("%w: not valid JSON: %v", ErrBadResponse, err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func compileFillSchema(schema map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal fill schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("fill.schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add fill schema: %w", err)
	}
	return c.Compile("fill.schema.json")
}
