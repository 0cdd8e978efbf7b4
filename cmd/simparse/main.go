package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"github.com/tzhang-nrg/simparse/internal/config"
	"github.com/tzhang-nrg/simparse/internal/exporter"
	"github.com/tzhang-nrg/simparse/internal/infrastructure"
	"github.com/tzhang-nrg/simparse/internal/simreport"
)

func main() {
	inDir := flag.String("in", "", "input directory for .SIM files (defaults to configured input dir)")
	outDir := flag.String("out", "", "output directory for CSV files (defaults to configured output dir)")
	configFile := flag.String("config", "", "path to YAML config file")
	catalogueFile := flag.String("catalogue", "", "path to YAML report catalogue overriding the built-in entries")
	xlsx := flag.Bool("xlsx", false, "also write one XLSX workbook per input file")
	bom := flag.Bool("bom", false, "prefix CSV files with a UTF-8 BOM for Excel")
	workers := flag.Int("workers", 4, "number of input files processed concurrently")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Command-line flags override configured paths
	if *inDir != "" {
		cfg.Paths.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *catalogueFile != "" {
		cfg.Parse.Catalogue = *catalogueFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry, err := buildRegistry(cfg.Parse.Catalogue)
	if err != nil {
		logger.Error("Failed to load report catalogue",
			slog.String("catalogue", cfg.Parse.Catalogue),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	files, err := discoverSimFiles(paths.InputDir)
	if err != nil {
		logger.Error("Failed to read input directory",
			slog.String("input_dir", paths.InputDir),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting simulation report extraction",
		slog.String("input_dir", paths.InputDir),
		slog.String("output_dir", paths.OutputDir),
		slog.Int("file_count", len(files)),
		slog.Int("workers", *workers))

	if len(files) == 0 {
		logger.Warn("No .SIM files found in input directory",
			slog.String("input_dir", paths.InputDir))
		fmt.Println("No .SIM files to process")
		return
	}

	extractor := simreport.NewExtractor(registry, simreport.Options{
		OverlapThreshold: cfg.Parse.OverlapThreshold,
		MaxHeaderRows:    cfg.Parse.MaxHeaderRows,
		Placeholders:     cfg.Parse.Placeholders,
	})
	csvWriter := exporter.NewCSVWriter(paths)
	workbookWriter := exporter.NewWorkbookWriter(paths)

	var (
		mu        sync.Mutex
		processed int
		tables    int
		skipped   int
	)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			runCtx := infrastructure.WithRunID(ctx, infrastructure.NewRunID())
			tableCount, skipCount, err := processFile(runCtx, logger, extractor, csvWriter, workbookWriter, file, *xlsx, *bom)
			if err != nil {
				logger.ErrorContext(runCtx, "Failed to process file",
					slog.String("file", file),
					slog.String("error", err.Error()))
				return nil
			}
			mu.Lock()
			processed++
			tables += tableCount
			skipped += skipCount
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Extraction aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Extraction complete",
		slog.Int("files_processed", processed),
		slog.Int("tables_written", tables),
		slog.Int("blocks_skipped", skipped))
	fmt.Printf("Processed %d files, wrote %d tables (%d blocks skipped)\n", processed, tables, skipped)
}

// processFile extracts one .SIM file and writes its tables. Skipped blocks
// are logged per diagnostic; only I/O failures are returned.
func processFile(ctx context.Context, logger *slog.Logger, extractor *simreport.Extractor,
	csvWriter *exporter.CSVWriter, workbookWriter *exporter.WorkbookWriter,
	path string, xlsx, bom bool) (int, int, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := decodeLatin1(data)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode file: %w", err)
	}

	sourceName := filepath.Base(path)
	logger.InfoContext(ctx, "Processing file", slog.String("file", sourceName))

	result := extractor.Extract(text)
	for _, diag := range result.Skipped {
		logger.WarnContext(ctx, "Skipped report block",
			slog.String("file", sourceName),
			slog.String("report_code", diag.Code),
			slog.Int("page", diag.Page),
			slog.Int("line", diag.Line),
			slog.String("reason", diag.Reason()))
	}

	if _, err := csvWriter.WriteTables(sourceName, result.Tables, exporter.WriteOptions{BOMPrefix: bom}); err != nil {
		return 0, 0, err
	}
	if xlsx && len(result.Tables) > 0 {
		if _, err := workbookWriter.Write(sourceName, result.Tables); err != nil {
			return 0, 0, err
		}
	}

	logger.InfoContext(ctx, "File processed",
		slog.String("file", sourceName),
		slog.Int("tables", len(result.Tables)),
		slog.Int("skipped_blocks", len(result.Skipped)))

	return len(result.Tables), len(result.Skipped), nil
}

// buildRegistry returns the report registry, overlaying an external YAML
// catalogue over the built-in entries when one is configured.
func buildRegistry(cataloguePath string) (*simreport.Registry, error) {
	entries := simreport.DefaultCatalogue()
	if cataloguePath != "" {
		loaded, err := simreport.LoadCatalogue(cataloguePath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return simreport.NewRegistry(entries), nil
}

// discoverSimFiles lists the .SIM files in a directory, matched
// case-insensitively and sorted by name.
func discoverSimFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".sim") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// decodeLatin1 converts report bytes to UTF-8. Simulation output is
// Latin-1 encoded, so every byte maps to exactly one rune and decoding
// cannot lose data.
func decodeLatin1(data []byte) (string, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
