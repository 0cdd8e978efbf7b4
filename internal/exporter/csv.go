package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tzhang-nrg/simparse/internal/config"
	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality: one file per report table.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes one table as a CSV file under the source file's output
// directory and returns the written path.
func (w *CSVWriter) WriteTable(sourceName string, table *domain.Table, options WriteOptions) (string, error) {
	fullPath := w.paths.ReportPath(sourceName, fileNameFor(table.Code))

	slog.Debug("Writing CSV file",
		slog.String("report_code", table.Code),
		slog.String("path", fullPath),
		slog.Int("row_count", len(table.Rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header, rows := Records(table)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range rows {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return fullPath, writer.Error()
}

// WriteTables writes every table and returns the written paths. A failing
// table is reported but does not stop the rest.
func (w *CSVWriter) WriteTables(sourceName string, tables []*domain.Table, options WriteOptions) ([]string, error) {
	var paths []string
	var firstErr error
	for _, table := range tables {
		path, err := w.WriteTable(sourceName, table, options)
		if err != nil {
			slog.Error("Failed to write report CSV",
				slog.String("report_code", table.Code),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		paths = append(paths, path)
	}
	return paths, firstErr
}
