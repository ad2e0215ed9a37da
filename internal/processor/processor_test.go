package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/extract"
	"github.com/qiwa-tools/contract-extract/internal/llm"
	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

type stubFiller struct {
	res   llm.FillResult
	err   error
	calls int
}

func (s *stubFiller) FillFields(_ context.Context, _ llm.FillRequest) (llm.FillResult, []byte, error) {
	s.calls++
	return s.res, nil, s.err
}

func newTestProcessor(filler llm.FieldFiller, threshold float64) *Processor {
	normalizer := rtltext.NewNormalizer(rtltext.DefaultOptions())
	extractor := extract.New(constants.ContractFields(), extract.DefaultRules(), extract.Options{}, nil)
	return New(normalizer, extractor, filler, threshold, nil)
}

// sampleText carries enough labeled lines to clear a low threshold and enough
// length to clear the minimum-size gate.
const sampleText = "رقم العقد: 22477445\n" +
	"رقم الهوية: 2468135790\n" +
	"الرقم الوطني الموحد: 7001234567\n" +
	"السجل التجاري: 1010456789\n"

func TestProcessDocumentOK(t *testing.T) {
	p := newTestProcessor(nil, 5.0)
	oc := p.ProcessDocument(context.Background(), "a.pdf", sampleText)

	if oc.Status != constants.DocStatusOK {
		t.Fatalf("status = %s, want OK (percent %v)", oc.Status, oc.Report.Percent)
	}
	if got := oc.Record.Value(constants.FieldContractNumber); got != "22477445" {
		t.Errorf("contract number = %q", got)
	}
	if oc.Report.Filled < 4 {
		t.Errorf("filled = %d, want >= 4", oc.Report.Filled)
	}
}

func TestProcessDocumentLowQuality(t *testing.T) {
	p := newTestProcessor(nil, 99.0)
	oc := p.ProcessDocument(context.Background(), "a.pdf", sampleText)
	if oc.Status != constants.DocStatusLowQuality {
		t.Fatalf("status = %s, want LOW_QUALITY", oc.Status)
	}
}

func TestProcessDocumentSkipped(t *testing.T) {
	p := newTestProcessor(nil, 5.0)
	for _, text := range []string{"", "   ", "too short"} {
		oc := p.ProcessDocument(context.Background(), "tiny.txt", text)
		if oc.Status != constants.DocStatusSkipped {
			t.Errorf("status for %q = %s, want SKIPPED", text, oc.Status)
		}
		if oc.Record == nil || oc.Report.Total != constants.NumFields() {
			t.Errorf("skipped outcome must still carry a complete report")
		}
	}
}

func TestProcessDocumentFallbackFills(t *testing.T) {
	filler := &stubFiller{res: llm.FillResult{Values: map[constants.Field]string{
		constants.FieldNationality:    "سعودي",
		constants.FieldContractNumber: "999",
	}}}
	p := newTestProcessor(filler, 5.0)
	oc := p.ProcessDocument(context.Background(), "a.pdf", sampleText)

	if filler.calls != 1 {
		t.Fatalf("filler calls = %d, want 1", filler.calls)
	}
	if got := oc.Record.Value(constants.FieldNationality); got != "سعودي" {
		t.Errorf("fallback value not merged: %q", got)
	}
	if got := oc.Record.Value(constants.FieldContractNumber); got != "22477445" {
		t.Errorf("extracted value overwritten by fallback: %q", got)
	}
	if !strings.Contains(oc.Note, "fallback filled 1") {
		t.Errorf("note = %q", oc.Note)
	}
}

func TestProcessDocumentFallbackErrorIsNotFatal(t *testing.T) {
	filler := &stubFiller{err: errors.New("api down")}
	p := newTestProcessor(filler, 5.0)
	oc := p.ProcessDocument(context.Background(), "a.pdf", sampleText)

	if oc.Status != constants.DocStatusOK {
		t.Fatalf("status = %s, want OK despite fallback error", oc.Status)
	}
	if got := oc.Record.Value(constants.FieldContractNumber); got != "22477445" {
		t.Errorf("extraction result lost: %q", got)
	}
	if !strings.Contains(oc.Note, "fallback failed") {
		t.Errorf("note = %q", oc.Note)
	}
}

func TestProcessDocumentNoFallbackOnSkip(t *testing.T) {
	filler := &stubFiller{}
	p := newTestProcessor(filler, 5.0)
	p.ProcessDocument(context.Background(), "tiny.txt", "x")
	if filler.calls != 0 {
		t.Errorf("filler called %d times on skipped input", filler.calls)
	}
}

func TestBatchPreservesInputOrder(t *testing.T) {
	p := newTestProcessor(nil, 5.0)
	b := NewBatch(p, 4, nil)

	docs := make([]Document, 9)
	for i := range docs {
		docs[i] = Document{FileName: fmt.Sprintf("doc-%d.pdf", i), Text: sampleText}
	}
	out := b.Run(context.Background(), docs)

	if len(out) != len(docs) {
		t.Fatalf("outcomes = %d, want %d", len(out), len(docs))
	}
	for i, oc := range out {
		if want := fmt.Sprintf("doc-%d.pdf", i); oc.FileName != want {
			t.Errorf("out[%d].FileName = %q, want %q", i, oc.FileName, want)
		}
		if oc.Status != constants.DocStatusOK {
			t.Errorf("out[%d].Status = %s", i, oc.Status)
		}
	}
}

func TestBatchReportsUnreadableDocuments(t *testing.T) {
	p := newTestProcessor(nil, 5.0)
	b := NewBatch(p, 2, nil)

	docs := []Document{
		{FileName: "good.pdf", Text: sampleText},
		{FileName: "broken.pdf", ReadErr: errors.New("open pdf: invalid header")},
		{FileName: "also-good.pdf", Text: sampleText},
	}
	out := b.Run(context.Background(), docs)

	if len(out) != len(docs) {
		t.Fatalf("outcomes = %d, want one per input document", len(out))
	}
	oc := out[1]
	if oc.Status != constants.DocStatusError {
		t.Fatalf("status = %s, want ERROR", oc.Status)
	}
	if oc.FileName != "broken.pdf" {
		t.Errorf("file name = %q", oc.FileName)
	}
	if !strings.Contains(oc.Note, "invalid header") {
		t.Errorf("note = %q, cause lost", oc.Note)
	}
	if oc.Record == nil || oc.Report.Filled != 0 || oc.Report.Total != constants.NumFields() {
		t.Errorf("errored outcome must carry an all-empty scored record: %+v", oc.Report)
	}
	if out[0].Status != constants.DocStatusOK || out[2].Status != constants.DocStatusOK {
		t.Error("neighboring documents affected by the failure")
	}
}

func TestBatchEmptyInput(t *testing.T) {
	p := newTestProcessor(nil, 5.0)
	b := NewBatch(p, 2, nil)
	if out := b.Run(context.Background(), nil); len(out) != 0 {
		t.Errorf("outcomes = %d, want 0", len(out))
	}
}
