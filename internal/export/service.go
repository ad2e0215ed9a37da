// Package export renders batch results as an XLSX workbook: one sheet of
// extracted contracts in canonical column order, one Logs sheet with the
// per-document outcome trail.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/qiwa-tools/contract-extract/constants"
	"github.com/qiwa-tools/contract-extract/internal/entity"
	"github.com/qiwa-tools/contract-extract/internal/runlog"
)

// RecordsSheet is the main sheet name, matching the workbook consumers
// already use downstream.
const RecordsSheet = "الموظفين"

// LogsSheet holds one row per processed document.
const LogsSheet = "Logs"

// Service produces XLSX bytes for batch results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildWorkbook returns an XLSX workbook (as bytes) holding the extracted
// records and the outcome log. Records land in schema column order; every
// row has all columns because Record is fixed-shape.
func (s *Service) BuildWorkbook(records []*entity.Record, entries []runlog.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(LogsSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	activeIndex, _ := f.GetSheetIndex(RecordsSheet)
	f.SetActiveSheet(activeIndex)

	if err := s.writeRecords(f, records); err != nil {
		return nil, err
	}
	if err := s.writeLogs(f, entries); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"records", len(records),
		"log_rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeRecords(f *excelize.File, records []*entity.Record) error {
	for i, h := range constants.FieldHeaders() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(RecordsSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for r, rec := range records {
		for c, v := range rec.Row() {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(RecordsSheet, cell, v); err != nil {
				return fmt.Errorf("write record row %d: %w", r+2, err)
			}
		}
	}

	// Arabic text columns read better wide.
	last, _ := excelize.ColumnNumberToName(constants.NumFields())
	_ = f.SetColWidth(RecordsSheet, "A", last, 22)
	return nil
}

func (s *Service) writeLogs(f *excelize.File, entries []runlog.Entry) error {
	headers := []string{
		"timestamp",
		"file_name",
		"status",
		"filled_fields",
		"total_fields",
		"quality_%",
		"missing_fields",
		"note",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(LogsSheet, cell, h); err != nil {
			return fmt.Errorf("write logs header: %w", err)
		}
	}
	for i, e := range entries {
		row := i + 2
		write := func(col int, v any) error {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			return f.SetCellValue(LogsSheet, cell, v)
		}
		for col, v := range []any{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.FileName,
			e.Status,
			e.Filled,
			e.Total,
			e.Percent,
			e.Missing,
			e.Note,
		} {
			if err := write(col+1, v); err != nil {
				return fmt.Errorf("write logs row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(LogsSheet, "A", "A", 20)
	_ = f.SetColWidth(LogsSheet, "B", "B", 36)
	_ = f.SetColWidth(LogsSheet, "C", "F", 12)
	_ = f.SetColWidth(LogsSheet, "G", "G", 60)
	_ = f.SetColWidth(LogsSheet, "H", "H", 40)
	return nil
}
