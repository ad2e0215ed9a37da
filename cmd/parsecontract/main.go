// parsecontract runs one contract file through repair and extraction and
// prints the record plus its quality report as JSON, for quick inspection
// and template debugging.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/common"
	"github.com/qiwa-tools/contract-extract/internal/extract"
	"github.com/qiwa-tools/contract-extract/internal/pdftext"
	"github.com/qiwa-tools/contract-extract/internal/processor"
	"github.com/qiwa-tools/contract-extract/internal/rtltext"
)

func main() {
	var (
		file   = flag.String("file", "", "contract PDF or TXT to parse (required)")
		emails = flag.String("email-strategy", "", "email assignment: sectioned or positional (overrides EMAIL_STRATEGY)")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *emails != "" {
		cfg.Extract.EmailStrategy = *emails
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var text string
	var err error
	if strings.EqualFold(filepath.Ext(*file), ".pdf") {
		text, err = pdftext.ExtractFile(*file)
	} else {
		var b []byte
		b, err = os.ReadFile(*file)
		text = string(b)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read %s: %v\n", *file, err)
		os.Exit(1)
	}

	normOpts := rtltext.DefaultOptions()
	normOpts.SentenceFlipMinArabic = cfg.Extract.SentenceFlipMinArabic
	normalizer := rtltext.NewNormalizer(normOpts)

	extractor := extract.New(constants.ContractFields(), extract.DefaultRules(), extract.Options{
		FlipMinArabic: cfg.Extract.ValueFlipMinArabic,
		EmailStrategy: extract.EmailStrategy(cfg.Extract.EmailStrategy),
	}, logger)

	proc := processor.New(normalizer, extractor, nil, cfg.Batch.QualityThreshold, logger)
	oc := proc.ProcessDocument(context.Background(), filepath.Base(*file), text)

	out := struct {
		File    string            `json:"file"`
		Status  string            `json:"status"`
		Note    string            `json:"note,omitempty"`
		Quality any               `json:"quality"`
		Record  map[string]string `json:"record"`
	}{
		File:    oc.FileName,
		Status:  string(oc.Status),
		Note:    oc.Note,
		Quality: oc.Report,
		Record:  oc.Record.StringMap(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode output: %v\n", err)
		os.Exit(1)
	}
}
