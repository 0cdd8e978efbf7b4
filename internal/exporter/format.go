package exporter

import (
	"strings"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// Records flattens a table into a CSV-shaped header row and data rows. The
// header starts with the row-label column name, followed by unit-suffixed
// column headers. Missing values serialize as empty fields, never as zero.
func Records(table *domain.Table) ([]string, [][]string) {
	header := make([]string, 0, len(table.Layout.Columns)+1)
	header = append(header, table.Layout.LabelColumn)
	header = append(header, table.Layout.Headers()...)

	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		record := make([]string, 0, len(table.Layout.Columns)+1)
		record = append(record, r.Label)
		for _, col := range table.Layout.Columns {
			record = append(record, r.Cell(col.Name).String())
		}
		rows = append(rows, record)
	}
	return header, rows
}

// fileNameFor returns the CSV file name for a report code.
func fileNameFor(code string) string {
	return sanitizeName(code) + ".csv"
}

// sanitizeName strips characters that are unsafe in file and sheet names.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-", "?", "-",
		"\"", "-", "<", "-", ">", "-", "|", "-", "[", "-", "]", "-",
	)
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		cleaned = "report"
	}
	return cleaned
}

// sheetNameFor returns a valid XLSX worksheet name for a report code.
// Excel caps sheet names at 31 characters.
func sheetNameFor(code string) string {
	name := sanitizeName(code)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
