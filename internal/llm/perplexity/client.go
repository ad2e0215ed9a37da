package perplexity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/qiwa-tools/contract-extract/internal/llm"
)

// FillFields implements llm.FieldFiller using text-only chat/completions.
// Temperature is pinned to 0: the task is verbatim copying, not generation.
func (c *Client) FillFields(ctx context.Context, req llm.FillRequest) (llm.FillResult, []byte, error) {
	if c.cfg.APIKey == "" {
		return llm.FillResult{}, nil, llm.ErrMissingAPIKey
	}
	if len(req.Fields) == 0 {
		return llm.FillResult{}, nil, nil
	}

	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.fill.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(req.Text),
		"missing_fields", len(req.Fields),
	)

	schema := llm.BuildFillJSONSchema(req.Fields)
	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": 0,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt(req)},
			{"role": "user", "content": llm.BuildUserPrompt(req.Text, c.cfg.MaxChars)},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	var raw []byte
	err := retry.Do(
		func() error {
			var reqErr error
			raw, _, reqErr = llm.SendJSON(ctx, c.httpClient, endpoint, body, map[string]string{
				"Authorization": "Bearer " + c.cfg.APIKey,
			}, c.log)
			return reqErr
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.Retries)+1),
		retry.Delay(c.cfg.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.log.Error("llm.fill.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FillResult{}, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.fill.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FillResult{}, raw, fmt.Errorf("decode perplexity response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.fill.no_choices",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FillResult{}, raw, fmt.Errorf("%w: no choices", llm.ErrBadResponse)
	}

	doc, err := llm.ExtractJSONBlock(cc.Choices[0].Message.Content)
	if err != nil {
		c.log.Error("llm.fill.no_json",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FillResult{}, raw, err
	}

	// Validate strictly first; on a near miss, sanitize and re-validate.
	if err := llm.ValidateFillDocument(schema, doc); err != nil {
		cleaned, dropped, sErr := llm.SanitizeFillJSON(doc, req.Fields, c.log)
		if sErr != nil {
			c.log.Error("llm.fill.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.FillResult{}, doc, fmt.Errorf("sanitize failed: %w", sErr)
		}
		if vErr := llm.ValidateFillDocument(schema, cleaned); vErr != nil {
			c.log.Error("llm.fill.schema_validation_failed",
				"req_id", rid, "error", vErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return llm.FillResult{}, doc, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.log.Warn("llm.fill.lenient_sanitize_applied",
			"req_id", rid, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		doc = cleaned
	}

	res, err := llm.ParseFillResult(doc, req.Fields)
	if err != nil {
		return llm.FillResult{}, doc, err
	}

	nonEmpty := 0
	for _, v := range res.Values {
		if v != "" {
			nonEmpty++
		}
	}
	c.log.Info("llm.fill.ok",
		"req_id", rid,
		"requested", len(req.Fields),
		"returned_non_empty", nonEmpty,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, doc, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
