package simreport

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// Strategy selects how data lines are split into column tokens. The variant
// is chosen per report code via the registry, never inferred from the data.
type Strategy string

const (
	// StrategyFixedWidth slices each line by the layout's column offsets.
	StrategyFixedWidth Strategy = "fixed-width"
	// StrategyDelimited splits on whitespace runs; the first token is the
	// row label.
	StrategyDelimited Strategy = "delimited"
	// StrategyHeuristic is the safe default for unrecognized report codes:
	// whitespace-delimited with a single-line header.
	StrategyHeuristic Strategy = "heuristic"
)

// DefaultPlaceholders are tokens that mean "no value reported". They map to
// the explicit missing marker, never to zero. Unbroken runs of dashes or
// equals signs, which pad empty cells at whatever width the column has, are
// recognized structurally and need no entry here.
func DefaultPlaceholders() []string {
	return []string{"N/A", "NA", "NONE"}
}

var delimiterPattern = regexp.MustCompile(`\s{2,}`)

// Tokenizer converts one data line into a DataRow using a header layout and
// a per-report strategy.
type Tokenizer struct {
	layout       domain.HeaderLayout
	strategy     Strategy
	placeholders map[string]struct{}
}

// NewTokenizer creates a Tokenizer. Configured placeholders extend the
// default set; the defaults always apply.
func NewTokenizer(layout domain.HeaderLayout, strategy Strategy, placeholders []string) *Tokenizer {
	defaults := DefaultPlaceholders()
	set := make(map[string]struct{}, len(defaults)+len(placeholders))
	for _, p := range defaults {
		set[strings.ToUpper(p)] = struct{}{}
	}
	for _, p := range placeholders {
		set[strings.ToUpper(p)] = struct{}{}
	}
	return &Tokenizer{layout: layout, strategy: strategy, placeholders: set}
}

// Row tokenizes one line. The second return is false for separator lines
// (all tokens blank), which never produce a DataRow. Rows shorter than the
// layout are padded with missing markers rather than rejected.
func (t *Tokenizer) Row(line domain.RawLine) (domain.DataRow, bool, error) {
	var label string
	var tokens []string

	switch t.strategy {
	case StrategyFixedWidth:
		label, tokens = t.sliceFixed(line.Text)
	default:
		label, tokens = t.splitDelimited(line.Text)
	}

	if label == "" && allBlank(tokens) {
		return domain.DataRow{}, false, nil
	}

	row := domain.DataRow{
		Label: label,
		Cells: make(map[string]domain.Value, len(t.layout.Columns)),
		Line:  line.Number,
	}
	for i, col := range t.layout.Columns {
		if i >= len(tokens) {
			row.Cells[col.Name] = domain.Missing()
			continue
		}
		v, err := t.coerce(tokens[i])
		if err != nil {
			return domain.DataRow{}, false, NewUnrecognizedTokenError(tokens[i], col.Name, line.Number)
		}
		row.Cells[col.Name] = v
	}
	return row, true, nil
}

// sliceFixed cuts the line at each column descriptor's span. Text before
// the first column is the row label.
func (t *Tokenizer) sliceFixed(text string) (string, []string) {
	cols := t.layout.Columns
	tokens := make([]string, len(cols))
	labelEnd := len(text)
	if len(cols) > 0 && cols[0].Start < labelEnd {
		labelEnd = cols[0].Start
	}
	label := strings.TrimSpace(text[:labelEnd])
	for i, col := range cols {
		lo := col.Start
		hi := col.End()
		// The last column runs to end of line; widths drift right.
		if i == len(cols)-1 {
			hi = len(text)
		}
		if lo > len(text) {
			lo = len(text)
		}
		if hi > len(text) {
			hi = len(text)
		}
		tokens[i] = strings.TrimSpace(text[lo:hi])
	}
	return label, tokens
}

// splitDelimited splits on runs of two or more spaces so multi-word labels
// and tokens like "MAX KW" survive, falling back to single-space fields for
// tightly packed lines. The first token is the row label; when more value
// tokens remain than columns, the trailing ones are kept since label text
// is what varies in width.
func (t *Tokenizer) splitDelimited(text string) (string, []string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}
	fields := delimiterPattern.Split(trimmed, -1)
	if len(fields) < len(t.layout.Columns)+1 {
		if loose := strings.Fields(trimmed); len(loose) > len(fields) {
			fields = loose
		}
	}
	label := fields[0]
	tokens := fields[1:]
	if n := len(t.layout.Columns); len(tokens) > n {
		tokens = tokens[len(tokens)-n:]
	}
	return label, tokens
}

// coerce converts one token to a numeric value or the missing marker.
// Recognized forms: optional sign, decimal point, thousands commas, and the
// parenthesized-negative convention.
func (t *Tokenizer) coerce(token string) (domain.Value, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Missing(), nil
	}
	if _, ok := t.placeholders[strings.ToUpper(token)]; ok {
		return domain.Missing(), nil
	}
	if placeholderRun(token) {
		return domain.Missing(), nil
	}

	neg := false
	if strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")") {
		neg = true
		token = strings.TrimSpace(token[1 : len(token)-1])
	}
	token = strings.ReplaceAll(token, ",", "")

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return domain.Value{}, err
	}
	if neg {
		f = -f
	}
	return domain.Number(f), nil
}

// placeholderRun reports whether a token is an unbroken run of dashes or
// equals signs, of any length.
func placeholderRun(token string) bool {
	if token == "" {
		return false
	}
	c := token[0]
	if c != '-' && c != '=' {
		return false
	}
	for i := 1; i < len(token); i++ {
		if token[i] != c {
			return false
		}
	}
	return true
}

func allBlank(tokens []string) bool {
	for _, tok := range tokens {
		if strings.TrimSpace(tok) != "" {
			return false
		}
	}
	return true
}
