package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/entity"
	"github.com/qiwa-tools/contract-extract/internal/runlog"
)

func TestBuildWorkbook(t *testing.T) {
	rec := &entity.Record{}
	rec.Set(constants.FieldContractNumber, "22477445")
	rec.Set(constants.FieldEmployeeName, "محمد عبدالله")

	entries := []runlog.Entry{{
		Timestamp: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		FileName:  "a.pdf",
		Status:    "OK",
		Filled:    38,
		Total:     40,
		Percent:   95.0,
	}}

	b, err := NewService(nil).BuildWorkbook([]*entity.Record{rec}, entries)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	// Header row is the schema in canonical order.
	headers := constants.FieldHeaders()
	a1, err := f.GetCellValue(RecordsSheet, "A1")
	if err != nil {
		t.Fatalf("read A1: %v", err)
	}
	if a1 != headers[0] {
		t.Errorf("A1 = %q, want %q", a1, headers[0])
	}
	last, _ := excelize.ColumnNumberToName(constants.NumFields())
	lastHeader, _ := f.GetCellValue(RecordsSheet, last+"1")
	if lastHeader != headers[len(headers)-1] {
		t.Errorf("last header = %q, want %q", lastHeader, headers[len(headers)-1])
	}

	// Record row holds the values in the same columns.
	a2, _ := f.GetCellValue(RecordsSheet, "A2")
	if a2 != "22477445" {
		t.Errorf("A2 = %q, want contract number", a2)
	}

	// Logs sheet exists and carries the outcome row.
	logFile, _ := f.GetCellValue(LogsSheet, "B2")
	if logFile != "a.pdf" {
		t.Errorf("Logs!B2 = %q, want a.pdf", logFile)
	}
	logStatus, _ := f.GetCellValue(LogsSheet, "C2")
	if logStatus != "OK" {
		t.Errorf("Logs!C2 = %q, want OK", logStatus)
	}
}

func TestBuildWorkbookEmpty(t *testing.T) {
	b, err := NewService(nil).BuildWorkbook(nil, nil)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(RecordsSheet); err != nil || idx == -1 {
		t.Errorf("records sheet missing: idx=%d err=%v", idx, err)
	}
	a1, _ := f.GetCellValue(RecordsSheet, "A1")
	if a1 == "" {
		t.Error("headers must be written even with no records")
	}
}
