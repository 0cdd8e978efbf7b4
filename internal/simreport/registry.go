package simreport

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

// Entry configures how one report code is parsed: its tokenization
// strategy, header depth, title override and row-label name.
type Entry struct {
	Code       string   `yaml:"code" validate:"required"`
	Title      string   `yaml:"title"`
	Strategy   Strategy `yaml:"strategy" validate:"omitempty,oneof=fixed-width delimited heuristic"`
	HeaderRows int      `yaml:"header_rows" validate:"gte=0,lte=3"`
	Label      string   `yaml:"label"`
}

// Registry is the immutable mapping from report code to parse
// configuration, built once at startup. Lookup normalizes case and
// whitespace; unrecognized codes receive the heuristic default so the
// pipeline stays total for unknown input.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds a registry from a catalogue. Later entries for the
// same code replace earlier ones, so a loaded catalogue can override the
// built-in defaults.
func NewRegistry(entries []Entry) *Registry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.Strategy == "" {
			e.Strategy = StrategyHeuristic
		}
		if e.HeaderRows == 0 {
			e.HeaderRows = 1
		}
		m[normalizeCode(e.Code)] = e
	}
	return &Registry{entries: m}
}

// NewDefaultRegistry builds a registry from the built-in catalogue.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultCatalogue())
}

// Lookup returns the entry for a report code, or the heuristic default for
// codes not in the catalogue.
func (r *Registry) Lookup(code string) Entry {
	if e, ok := r.entries[normalizeCode(code)]; ok {
		return e
	}
	return Entry{
		Code:       strings.TrimSpace(code),
		Strategy:   StrategyHeuristic,
		HeaderRows: 1,
	}
}

// Known reports whether a code is in the catalogue.
func (r *Registry) Known(code string) bool {
	_, ok := r.entries[normalizeCode(code)]
	return ok
}

// Codes returns the catalogued report codes.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.entries))
	for code := range r.entries {
		codes = append(codes, code)
	}
	return codes
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}

// DefaultCatalogue covers the DOE-2/eQUEST report codes the original
// toolchain recognizes. Everything else falls through to the heuristic
// strategy.
func DefaultCatalogue() []Entry {
	return []Entry{
		{Code: "BEPS", Title: "Building Energy Performance", Strategy: StrategyDelimited, HeaderRows: 1, Label: "Meter"},
		{Code: "BEPU", Title: "Building Utility Performance", Strategy: StrategyDelimited, HeaderRows: 1, Label: "Meter"},
		{Code: "LV-D", Title: "Details of Exterior Surfaces", Strategy: StrategyFixedWidth, HeaderRows: 3, Label: "Surface"},
		{Code: "PS-F", Title: "Energy End-Use Summary", Strategy: StrategyDelimited, HeaderRows: 2, Label: "Month"},
		{Code: "PV-A", Title: "Plant Design Parameters", Strategy: StrategyDelimited, HeaderRows: 2, Label: "Equipment"},
		{Code: "SS-A", Title: "System Loads Summary", Strategy: StrategyFixedWidth, HeaderRows: 3, Label: "Month"},
		{Code: "SS-B", Title: "System Loads Summary", Strategy: StrategyFixedWidth, HeaderRows: 3, Label: "Month"},
		{Code: "SV-A", Title: "System Design Parameters", Strategy: StrategyFixedWidth, HeaderRows: 3, Label: "System"},
	}
}

// catalogueFile is the YAML shape of an external report catalogue.
type catalogueFile struct {
	Reports []Entry `yaml:"reports" validate:"required,min=1,dive"`
}

// LoadCatalogue reads report entries from a YAML file and validates them.
// The catalogue is configuration data, swappable without touching the
// extraction algorithms.
func LoadCatalogue(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue: %w", err)
	}

	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("catalogue validation failed: %w", err)
	}

	return file.Reports, nil
}
