// Package processor coordinates repair, extraction, scoring, and the optional
// AI fallback for one document at a time. A failure stays scoped to its
// document: the batch never dies because one PDF was garbage.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/entity"
	"github.com/qiwa-tools/contract-extract/internal/extract"
	"github.com/qiwa-tools/contract-extract/internal/llm"
	"github.com/qiwa-tools/contract-extract/internal/quality"
	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

// Outcome is the per-document result of a run.
type Outcome struct {
	FileName string
	Status   constants.DocStatus
	Record   *entity.Record
	Report   quality.Report
	Note     string
}

// Processor runs one document through repair -> extract -> score -> fallback.
type Processor struct {
	normalizer *rtltext.Normalizer
	extractor  *extract.Extractor
	filler     llm.FieldFiller // nil disables the fallback
	threshold  float64
	logger     *slog.Logger
}

func New(normalizer *rtltext.Normalizer, extractor *extract.Extractor, filler llm.FieldFiller, threshold float64, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if threshold <= 0 {
		threshold = constants.DefaultQualityThreshold
	}
	return &Processor{
		normalizer: normalizer,
		extractor:  extractor,
		filler:     filler,
		threshold:  threshold,
		logger:     logger,
	}
}

// ProcessDocument runs one document end to end. It never returns an error:
// every failure mode maps onto a status so the caller always gets a complete
// outcome row.
func (p *Processor) ProcessDocument(ctx context.Context, fileName, rawText string) (out Outcome) {
	start := time.Now()
	out = Outcome{FileName: fileName, Record: &entity.Record{}}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("process.panic", "file", fileName, "panic", fmt.Sprint(r))
			out.Status = constants.DocStatusError
			out.Note = fmt.Sprintf("panic: %v", r)
		}
	}()

	trimmed := strings.TrimSpace(rawText)
	if utf8.RuneCountInString(trimmed) < constants.MinInputChars {
		p.logger.Warn("process.skipped", "file", fileName, "chars", utf8.RuneCountInString(trimmed))
		out.Status = constants.DocStatusSkipped
		out.Note = "input below minimum size"
		out.Report = quality.Score(out.Record)
		return out
	}

	text := p.normalizer.Normalize(rawText)
	rec := p.extractor.Extract(text)
	rep := quality.Score(rec)

	var note string
	if p.filler != nil && len(rep.Missing) > 0 {
		filled, err := p.fill(ctx, text, rec, rep.Missing)
		switch {
		case err != nil:
			// The fallback is best effort; rule extraction results stand.
			note = "fallback failed: " + err.Error()
			p.logger.Warn("process.fallback_failed", "file", fileName, "error", err)
		case filled > 0:
			rep = quality.Score(rec)
			note = fmt.Sprintf("fallback filled %d fields", filled)
		}
	}

	out.Record = rec
	out.Report = rep
	out.Note = note
	if rep.Percent >= p.threshold {
		out.Status = constants.DocStatusOK
	} else {
		out.Status = constants.DocStatusLowQuality
	}

	p.logger.Info("process.done",
		"file", fileName,
		"status", string(out.Status),
		"filled", rep.Filled,
		"total", rep.Total,
		"percent", rep.Percent,
		"missing_preview", rep.MissingPreview(5),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

// ErrorOutcome records an upstream failure (unreadable PDF, undecodable
// bytes) as a complete outcome: ERROR status, all-empty record, the cause in
// the note. The document still gets its run-log row, workbook row, and report
// line.
func (p *Processor) ErrorOutcome(fileName string, cause error) Outcome {
	p.logger.Error("process.error", "file", fileName, "error", cause)
	rec := &entity.Record{}
	return Outcome{
		FileName: fileName,
		Status:   constants.DocStatusError,
		Record:   rec,
		Report:   quality.Score(rec),
		Note:     cause.Error(),
	}
}

func (p *Processor) fill(ctx context.Context, text string, rec *entity.Record, missing []constants.Field) (int, error) {
	res, _, err := p.filler.FillFields(ctx, llm.FillRequest{Text: text, Fields: missing})
	if err != nil {
		return 0, err
	}
	return llm.MergeFillEmpty(rec, res), nil
}
