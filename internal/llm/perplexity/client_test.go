package perplexity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/llm"
)

func chatResponse(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func testConfig(url string) Config {
	return Config{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "sonar",
		Retries: 2,
		Delay:   time.Millisecond,
		Timeout: 5 * time.Second,
	}
}

func TestFillFields(t *testing.T) {
	fields := []constants.Field{constants.FieldContractNumber, constants.FieldNationality}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Model       string `json:"model"`
			Temperature int    `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "sonar" {
			t.Errorf("model = %q", req.Model)
		}
		if req.Temperature != 0 {
			t.Errorf("temperature = %d, want 0", req.Temperature)
		}
		if len(req.Messages) != 3 {
			t.Errorf("messages = %d, want 3", len(req.Messages))
		}

		chatResponse(t, w, "النتيجة:\n"+`{
			"رقم العقد": "22477445",
			"الجنسية": "سعودي",
			"_evidence": {"رقم العقد": "رقم العقد: 22477445"},
			"_confidence": {"رقم العقد": 0.9}
		}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	res, raw, err := c.FillFields(context.Background(), llm.FillRequest{
		Text:   "نص العقد",
		Fields: fields,
	})
	if err != nil {
		t.Fatalf("FillFields: %v", err)
	}
	if len(raw) == 0 {
		t.Error("raw document empty")
	}
	if got := res.Values[constants.FieldContractNumber]; got != "22477445" {
		t.Errorf("value = %q", got)
	}
	if got := res.Confidence[constants.FieldContractNumber]; got != 0.9 {
		t.Errorf("confidence = %v", got)
	}
}

func TestFillFieldsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream busy", http.StatusBadGateway)
			return
		}
		chatResponse(t, w, `{"الجنسية": "سعودي"}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	res, _, err := c.FillFields(context.Background(), llm.FillRequest{
		Text:   "نص العقد",
		Fields: []constants.Field{constants.FieldNationality},
	})
	if err != nil {
		t.Fatalf("FillFields after retry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
	if got := res.Values[constants.FieldNationality]; got != "سعودي" {
		t.Errorf("value = %q", got)
	}
}

func TestFillFieldsExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	_, _, err := c.FillFields(context.Background(), llm.FillRequest{
		Text:   "نص العقد",
		Fields: []constants.Field{constants.FieldNationality},
	})
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3 (1 attempt + 2 retries)", got)
	}
}

func TestFillFieldsSanitizesNearMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Numeric value and a stray key: invalid strictly, repairable leniently.
		chatResponse(t, w, `{"رقم العقد": 22477445, "note": "from clause 1"}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	res, _, err := c.FillFields(context.Background(), llm.FillRequest{
		Text:   "نص العقد",
		Fields: []constants.Field{constants.FieldContractNumber},
	})
	if err != nil {
		t.Fatalf("FillFields: %v", err)
	}
	if got := res.Values[constants.FieldContractNumber]; got != "22477445" {
		t.Errorf("value = %q", got)
	}
}

func TestFillFieldsNoJSONInReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatResponse(t, w, "لا أستطيع المساعدة في ذلك")
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	_, _, err := c.FillFields(context.Background(), llm.FillRequest{
		Text:   "نص العقد",
		Fields: []constants.Field{constants.FieldNationality},
	})
	if !errors.Is(err, llm.ErrBadResponse) {
		t.Errorf("error = %v, want ErrBadResponse", err)
	}
}

func TestFillFieldsMissingAPIKey(t *testing.T) {
	t.Setenv("PERPLEXITY_API_KEY", "")
	c := NewClient(Config{}, nil)
	_, _, err := c.FillFields(context.Background(), llm.FillRequest{
		Text:   "نص العقد",
		Fields: []constants.Field{constants.FieldNationality},
	})
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestFillFieldsNoMissingFields(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)
	res, raw, err := c.FillFields(context.Background(), llm.FillRequest{Text: "نص"})
	if err != nil {
		t.Fatalf("FillFields: %v", err)
	}
	if raw != nil || len(res.Values) != 0 {
		t.Errorf("expected empty result for empty field list")
	}
}
