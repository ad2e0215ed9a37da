package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/common"
	"github.com/qiwa-tools/contract-extract/internal/entity"
	"github.com/qiwa-tools/contract-extract/internal/export"
	"github.com/qiwa-tools/contract-extract/internal/extract"
	"github.com/qiwa-tools/contract-extract/internal/llm"
	"github.com/qiwa-tools/contract-extract/internal/llm/perplexity"
	"github.com/qiwa-tools/contract-extract/internal/pdftext"
	"github.com/qiwa-tools/contract-extract/internal/processor"
	"github.com/qiwa-tools/contract-extract/internal/runlog"
	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of contract PDFs/TXTs to process (required)")
		out       = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		threshold = flag.Float64("threshold", 0, "quality threshold percent for OK status (overrides QUALITY_THRESHOLD)")
		workers   = flag.Int("workers", 0, "parallel documents (overrides WORKERS)")
		emails    = flag.String("email-strategy", "", "email assignment: sectioned or positional (overrides EMAIL_STRATEGY)")
		keepDB    = flag.Bool("keep-db", false, "keep the run outcome database next to the workbook")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "Employees_Data.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if *threshold > 0 {
		cfg.Batch.QualityThreshold = *threshold
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if *emails != "" {
		cfg.Extract.EmailStrategy = *emails
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	normOpts := rtltext.DefaultOptions()
	normOpts.SentenceFlipMinArabic = cfg.Extract.SentenceFlipMinArabic
	normalizer := rtltext.NewNormalizer(normOpts)

	extractor := extract.New(constants.ContractFields(), extract.DefaultRules(), extract.Options{
		FlipMinArabic: cfg.Extract.ValueFlipMinArabic,
		EmailStrategy: extract.EmailStrategy(cfg.Extract.EmailStrategy),
	}, logger)

	// Fallback filler is optional: without a key, rule extraction stands alone.
	var filler llm.FieldFiller
	if cfg.Fallback.APIKey != "" {
		filler = perplexity.NewClient(perplexity.Config{
			APIKey:   cfg.Fallback.APIKey,
			BaseURL:  cfg.Fallback.BaseURL,
			Model:    cfg.Fallback.Model,
			MaxChars: cfg.Fallback.MaxChars,
			Retries:  cfg.Fallback.Retries,
			Delay:    cfg.Fallback.Delay,
			Timeout:  cfg.Fallback.Timeout,
		}, logger)
		logger.Info("fallback filler initialized", "model", cfg.Fallback.Model)
	} else {
		logger.Warn("PERPLEXITY_API_KEY not configured, fallback filling will be skipped")
	}

	docs, readFailures := loadDocuments(*dir, logger)
	if len(docs) == 0 {
		printError("Error: no .pdf or .txt files found under %s\n", *dir)
		os.Exit(1)
	}
	logger.Info("documents loaded", "dir", *dir, "count", len(docs), "read_failures", readFailures)

	proc := processor.New(normalizer, extractor, filler, cfg.Batch.QualityThreshold, logger)
	batch := processor.NewBatch(proc, cfg.Batch.Workers, logger)
	outcomes := batch.Run(ctx, docs)

	dbPath := *out + ".runlog.db"
	store, err := runlog.Open(dbPath, logger)
	if err != nil {
		logger.Error("failed to open run log", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
		if !*keepDB {
			_ = os.Remove(dbPath)
		}
	}()
	if err := store.Init(ctx); err != nil {
		logger.Error("failed to init run log", "error", err)
		os.Exit(1)
	}

	counts := map[constants.DocStatus]int{}
	for _, oc := range outcomes {
		counts[oc.Status]++
		entry := runlog.Entry{
			FileName: oc.FileName,
			Status:   string(oc.Status),
			Filled:   oc.Report.Filled,
			Total:    oc.Report.Total,
			Percent:  oc.Report.Percent,
			Missing:  oc.Report.MissingPreview(10),
			Note:     oc.Note,
		}
		if err := store.Append(ctx, entry); err != nil {
			logger.Error("failed to append run log entry", "file", oc.FileName, "error", err)
		}
	}
	records := collectRecords(outcomes)

	entries, err := store.List(ctx)
	if err != nil {
		logger.Error("failed to list run log", "error", err)
		os.Exit(1)
	}

	exporter := export.NewService(logger)
	xlsxBytes, err := exporter.BuildWorkbook(records, entries)
	if err != nil {
		logger.Error("failed to build workbook", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "path", *out, "error", err)
		os.Exit(1)
	}

	reportPath := strings.TrimSuffix(*out, filepath.Ext(*out)) + "_report.txt"
	if err := os.WriteFile(reportPath, []byte(buildReport(outcomes, counts)), 0644); err != nil {
		logger.Error("failed to write report file", "path", reportPath, "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"documents", len(outcomes),
		"ok", counts[constants.DocStatusOK],
		"low_quality", counts[constants.DocStatusLowQuality],
		"skipped", counts[constants.DocStatusSkipped],
		"errors", counts[constants.DocStatusError],
		"output_file", *out,
	)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Documents: %d\n", len(outcomes))
	fmt.Printf("- OK: %d\n", counts[constants.DocStatusOK])
	fmt.Printf("- Low quality: %d\n", counts[constants.DocStatusLowQuality])
	fmt.Printf("- Skipped: %d\n", counts[constants.DocStatusSkipped])
	fmt.Printf("- Errors: %d\n", counts[constants.DocStatusError])
	fmt.Printf("- Output: %s\n", *out)
}

// collectRecords returns one record per outcome in batch order. Skipped and
// errored documents contribute their all-empty record so workbook rows stay
// aligned one-per-input.
func collectRecords(outcomes []processor.Outcome) []*entity.Record {
	records := make([]*entity.Record, 0, len(outcomes))
	for _, oc := range outcomes {
		rec := oc.Record
		if rec == nil {
			rec = &entity.Record{}
		}
		records = append(records, rec)
	}
	return records
}

// loadDocuments reads every .pdf and .txt under dir (non-recursive) in name
// order. A file that cannot be read still yields a document carrying the read
// error, so the batch reports it instead of silently dropping it.
func loadDocuments(dir string, logger *slog.Logger) ([]processor.Document, int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("failed to read directory", "dir", dir, "error", err)
		return nil, 1
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]processor.Document, 0, len(names))
	failures := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		var text string
		var err error
		if strings.EqualFold(filepath.Ext(name), ".pdf") {
			text, err = pdftext.ExtractFile(path)
		} else {
			var b []byte
			b, err = os.ReadFile(path)
			text = string(b)
		}
		if err != nil {
			logger.Error("failed to read document", "file", name, "error", err)
			failures++
			docs = append(docs, processor.Document{FileName: name, ReadErr: err})
			continue
		}
		docs = append(docs, processor.Document{FileName: name, Text: text})
	}
	return docs, failures
}

// buildReport renders the plain-text extraction report that accompanies the
// workbook: one line per document plus a totals footer.
func buildReport(outcomes []processor.Outcome, counts map[constants.DocStatus]int) string {
	var b strings.Builder
	b.WriteString("Extraction report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	for _, oc := range outcomes {
		fmt.Fprintf(&b, "%s | %s | %d/%d (%.1f%%)",
			oc.FileName, oc.Status, oc.Report.Filled, oc.Report.Total, oc.Report.Percent)
		if oc.Note != "" {
			fmt.Fprintf(&b, " | %s", oc.Note)
		}
		b.WriteString("\n")
		if len(oc.Report.Missing) > 0 && oc.Status != constants.DocStatusSkipped {
			fmt.Fprintf(&b, "    missing: %s\n", oc.Report.MissingPreview(10))
		}
	}
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "documents=%d ok=%d low_quality=%d skipped=%d errors=%d\n",
		len(outcomes),
		counts[constants.DocStatusOK],
		counts[constants.DocStatusLowQuality],
		counts[constants.DocStatusSkipped],
		counts[constants.DocStatusError],
	)
	return b.String()
}
