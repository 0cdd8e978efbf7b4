// Package exporter writes assembled report tables to CSV files and,
// optionally, to a single XLSX workbook with one worksheet per report.
// It consumes immutable tables from the extraction core and owns all
// output-side I/O: directory layout, file naming and encoding.
package exporter
