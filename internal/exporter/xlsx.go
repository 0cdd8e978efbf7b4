package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/tzhang-nrg/simparse/internal/config"
	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// WorkbookWriter writes every report table of one source file into a
// single XLSX workbook, one worksheet per report code.
type WorkbookWriter struct {
	paths *config.Paths
}

// NewWorkbookWriter creates a new workbook writer instance
func NewWorkbookWriter(paths *config.Paths) *WorkbookWriter {
	return &WorkbookWriter{paths: paths}
}

// Write builds the workbook and returns the written path.
func (w *WorkbookWriter) Write(sourceName string, tables []*domain.Table) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		sheet := sheetNameFor(table.Code)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return "", fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, table); err != nil {
			return "", err
		}
	}

	fullPath := w.paths.ReportPath(sourceName, sourceName+".xlsx")
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Debug("Wrote XLSX workbook",
		slog.String("path", fullPath),
		slog.Int("sheet_count", len(tables)))

	return fullPath, nil
}

// writeSheet fills one worksheet with a header row and data rows. Numeric
// cells keep their numeric type; missing cells stay empty.
func writeSheet(f *excelize.File, sheet string, table *domain.Table) error {
	header, _ := Records(table)
	for col, text := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, text); err != nil {
			return err
		}
	}

	for rowIdx, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, row.Label); err != nil {
			return err
		}
		for colIdx, col := range table.Layout.Columns {
			v := row.Cell(col.Name)
			if v.IsMissing() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+2, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v.Num); err != nil {
				return err
			}
		}
	}
	return nil
}
