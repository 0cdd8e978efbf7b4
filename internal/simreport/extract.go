package simreport

import (
	"log/slog"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// Options tunes the extraction engine. Zero values select the defaults.
type Options struct {
	// OverlapThreshold is the minimum span-overlap ratio for multi-row
	// header alignment.
	OverlapThreshold float64
	// MaxHeaderRows caps the physical header rows considered per block.
	MaxHeaderRows int
	// Placeholders are additional tokens treated as the missing marker,
	// merged with the defaults.
	Placeholders []string
	// Locator overrides the block boundary patterns.
	Locator LocatorConfig
}

// Result is the outcome of extracting one file: one table per report code
// that parsed, plus a diagnostic for every block or continuation that was
// excluded. Extraction never aborts wholesale on a single failure.
type Result struct {
	Tables  []*domain.Table
	Skipped []Diagnostic
}

// Table returns the assembled table for a report code, if any.
func (r *Result) Table(code string) (*domain.Table, bool) {
	want := normalizeCode(code)
	for _, t := range r.Tables {
		if normalizeCode(t.Code) == want {
			return t, true
		}
	}
	return nil, false
}

// Extractor is the report extraction engine: a pure, single-pass,
// synchronous transform from report text to assembled tables. It performs
// no I/O; reading the file and any timeout are the caller's concern.
type Extractor struct {
	registry     *Registry
	locator      *Locator
	headers      *HeaderParser
	placeholders []string
	logger       *slog.Logger
}

// NewExtractor creates an Extractor around a registry.
func NewExtractor(registry *Registry, opts Options) *Extractor {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	return &Extractor{
		registry:     registry,
		locator:      NewLocator(opts.Locator),
		headers:      NewHeaderParser(opts.OverlapThreshold, opts.MaxHeaderRows),
		placeholders: opts.Placeholders,
		logger:       slog.Default(),
	}
}

// Extract runs the full pipeline over raw report text.
func (e *Extractor) Extract(text string) *Result {
	return e.ExtractLines(ReadLines(text))
}

// ExtractLines runs the pipeline over pre-split lines: locate blocks, parse
// each block's header, tokenize its rows, and merge same-code blocks across
// pages into one table per report code.
func (e *Extractor) ExtractLines(lines []domain.RawLine) *Result {
	blocks, diagnostics := e.locator.Split(lines)
	result := &Result{Skipped: diagnostics}

	assemblers := make(map[string]*Assembler)
	var order []string

	for _, block := range blocks {
		entry := e.registry.Lookup(block.Code)
		key := normalizeCode(block.Code)

		layout, consumed, err := e.headers.Parse(block.Code, block.Lines, entry.HeaderRows)
		if err != nil {
			result.Skipped = append(result.Skipped, Diagnostic{
				Code: block.Code, Page: block.Page, Line: block.StartLine(), Err: err,
			})
			continue
		}
		layout = designateLabelColumn(layout, entry)

		asm, seen := assemblers[key]
		if seen {
			if err := asm.Continue(layout, block.Page); err != nil {
				result.Skipped = append(result.Skipped, Diagnostic{
					Code: block.Code, Page: block.Page, Line: block.StartLine(), Err: err,
				})
				continue
			}
		}

		rows, err := e.tokenizeBlock(block, layout, entry, consumed)
		if err != nil {
			result.Skipped = append(result.Skipped, Diagnostic{
				Code: block.Code, Page: block.Page, Line: block.StartLine(), Err: err,
			})
			continue
		}

		// The assembler is created only once a block has tokenized cleanly,
		// so a failing first block never registers an empty table.
		if !seen {
			title := entry.Title
			if title == "" {
				title = block.Title
			}
			asm = NewAssembler(block.Code, title, layout)
			assemblers[key] = asm
			order = append(order, key)
		}
		for _, row := range rows {
			asm.Add(row)
		}

		e.logger.Debug("block assembled",
			slog.String("code", block.Code),
			slog.Int("page", block.Page),
			slog.Int("rows", len(rows)))
	}

	for _, key := range order {
		result.Tables = append(result.Tables, assemblers[key].Table())
	}
	return result
}

// designateLabelColumn resolves the row-label column. When the catalogue
// names the label and the first parsed column is that heading (for example
// "METER" under BEPS), the heading describes the labels, not a value
// column, so it is lifted out of the value layout.
func designateLabelColumn(layout domain.HeaderLayout, entry Entry) domain.HeaderLayout {
	layout.LabelColumn = entry.Label
	if entry.Label == "" || len(layout.Columns) < 2 {
		return layout
	}
	if normalizeCode(layout.Columns[0].Name) != normalizeCode(entry.Label) {
		return layout
	}
	layout.Columns = layout.Columns[1:]
	for i := range layout.Columns {
		layout.Columns[i].Index = i
	}
	return layout
}

// tokenizeBlock converts a block's data lines into rows. A tokenizer
// failure skips the whole block so partially parsed rows never leak into
// the table.
func (e *Extractor) tokenizeBlock(block domain.ReportBlock, layout domain.HeaderLayout, entry Entry, consumed int) ([]domain.DataRow, error) {
	tokenizer := NewTokenizer(layout, entry.Strategy, e.placeholders)
	var rows []domain.DataRow
	for _, line := range block.Lines[consumed:] {
		row, ok, err := tokenizer.Row(line)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
