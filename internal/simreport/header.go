package simreport

import (
	"sort"
	"strings"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

const (
	// DefaultOverlapThreshold is the minimum span-overlap ratio for a header
	// fragment to be aligned with a column. Source layouts drift between
	// report-generator versions, so this is tunable rather than fixed.
	DefaultOverlapThreshold = 0.3

	// MaxHeaderRows is the largest number of physical header rows a report
	// uses: category, subcategory and unit.
	MaxHeaderRows = 3
)

// HeaderParser derives an ordered column layout from a block's leading
// lines. Rows are aligned by column-span overlap, not exact offsets, which
// tolerates minor width drift between report instances.
type HeaderParser struct {
	overlap float64
	maxRows int
}

// NewHeaderParser creates a HeaderParser. A non-positive threshold or row
// limit selects the default.
func NewHeaderParser(overlap float64, maxRows int) *HeaderParser {
	if overlap <= 0 {
		overlap = DefaultOverlapThreshold
	}
	if maxRows <= 0 {
		maxRows = MaxHeaderRows
	}
	return &HeaderParser{overlap: overlap, maxRows: maxRows}
}

// span is a contiguous header fragment and the character range it covers.
type span struct {
	start int
	end   int
	text  string
}

func (s span) width() int { return s.end - s.start }

// overlapRatio is the intersection length relative to the narrower span.
func overlapRatio(a, b span) float64 {
	lo := max(a.start, b.start)
	hi := min(a.end, b.end)
	if hi <= lo {
		return 0
	}
	w := min(a.width(), b.width())
	if w == 0 {
		return 0
	}
	return float64(hi-lo) / float64(w)
}

// Parse derives a HeaderLayout from the first rows physical header lines of
// the block. It returns the layout and the number of block lines consumed.
// Zero derivable columns is a HeaderLayoutError.
func (p *HeaderParser) Parse(code string, lines []domain.RawLine, rows int) (domain.HeaderLayout, int, error) {
	if rows <= 0 {
		rows = 1
	}
	if rows > p.maxRows {
		rows = p.maxRows
	}
	if rows > len(lines) {
		rows = len(lines)
	}
	if rows == 0 {
		return domain.HeaderLayout{}, 0, NewHeaderLayoutError(code, 0, "no header lines")
	}

	headerRows := make([][]span, rows)
	for i := 0; i < rows; i++ {
		headerRows[i] = segments(lines[i].Text)
	}

	base := baseRow(headerRows)
	if len(headerRows[base]) == 0 {
		return domain.HeaderLayout{}, rows, NewHeaderLayoutError(code, lines[0].Number, "no columns derivable from header rows")
	}

	type column struct {
		start, end int
		names      []string
		unit       string
	}
	columns := make([]column, len(headerRows[base]))
	for i, s := range headerRows[base] {
		columns[i] = column{start: s.start, end: s.end}
	}

	// Assign every fragment to the base span it overlaps best; fragments
	// below the threshold for every span are drift noise and dropped.
	for _, row := range headerRows {
		for _, frag := range row {
			best, bestRatio := -1, 0.0
			for ci := range columns {
				r := overlapRatio(frag, span{start: columns[ci].start, end: columns[ci].end, text: ""})
				if r > bestRatio {
					best, bestRatio = ci, r
				}
			}
			if best < 0 || bestRatio < p.overlap {
				continue
			}
			col := &columns[best]
			if frag.start < col.start {
				col.start = frag.start
			}
			if frag.end > col.end {
				col.end = frag.end
			}
			name, unit := splitUnit(frag.text)
			if unit != "" {
				col.unit = unit
			}
			if name != "" {
				col.names = append(col.names, name)
			}
		}
	}

	layout := domain.HeaderLayout{}
	for _, col := range columns {
		name := strings.Join(col.names, " ")
		if name == "" {
			// A span that is pure unit text still names a column.
			name = col.unit
			col.unit = ""
		}
		if name == "" {
			continue
		}
		layout.Columns = append(layout.Columns, domain.ColumnDescriptor{
			Name:  name,
			Unit:  col.unit,
			Start: col.start,
			Width: col.end - col.start,
		})
	}
	if len(layout.Columns) == 0 {
		return domain.HeaderLayout{}, rows, NewHeaderLayoutError(code, lines[0].Number, "no columns derivable from header rows")
	}

	sort.SliceStable(layout.Columns, func(i, j int) bool {
		return layout.Columns[i].Start < layout.Columns[j].Start
	})
	// Enforce strictly increasing, non-overlapping spans.
	for i := range layout.Columns {
		layout.Columns[i].Index = i
		if i > 0 {
			prev := &layout.Columns[i-1]
			if layout.Columns[i].Start < prev.End() {
				prev.Width = layout.Columns[i].Start - prev.Start
			}
		}
	}

	return layout, rows, nil
}

// segments splits a header line into fragments separated by two or more
// spaces, so multi-word names like "MAX KW" stay whole.
func segments(text string) []span {
	var spans []span
	i := 0
	for i < len(text) {
		if text[i] == ' ' || text[i] == '\t' {
			i++
			continue
		}
		start := i
		end := i
		for i < len(text) {
			if text[i] != ' ' && text[i] != '\t' {
				end = i + 1
				i++
				continue
			}
			// A single interior space does not end the fragment.
			if i+1 < len(text) && text[i] == ' ' && text[i+1] != ' ' && text[i+1] != '\t' {
				i++
				continue
			}
			break
		}
		spans = append(spans, span{start: start, end: end, text: strings.TrimSpace(text[start:end])})
	}
	return spans
}

// splitUnit separates a trailing or isolated parenthesized unit from a
// fragment: "Electricity (kWh)" -> ("Electricity", "kWh"), "(MBTU)" ->
// ("", "MBTU").
func splitUnit(text string) (name, unit string) {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ")") {
		if open := strings.LastIndex(text, "("); open >= 0 {
			unit = strings.TrimSpace(text[open+1 : len(text)-1])
			name = strings.TrimSpace(text[:open])
			return name, unit
		}
	}
	return text, ""
}

// baseRow picks the header row with the most fragments as the alignment
// base, preferring the earliest on ties so name rows beat unit rows.
func baseRow(rows [][]span) int {
	best, count := 0, -1
	for i, row := range rows {
		if len(row) > count {
			best, count = i, len(row)
		}
	}
	return best
}
