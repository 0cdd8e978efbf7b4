package simreport

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// LocatorConfig holds the line patterns that bound report blocks in a
// simulation output file.
type LocatorConfig struct {
	// Start matches a report start marker. Group 1 captures the report
	// code, group 2 the raw title text.
	Start *regexp.Regexp
	// End matches an explicit end-of-report marker.
	End *regexp.Regexp
	// PageHeader matches recurring page header/footer lines. Lines with an
	// explicit "PAGE n" also update the block's page number.
	PageHeader *regexp.Regexp
	// Separator matches ruler lines that only separate header from data.
	Separator *regexp.Regexp
	// TitleTrim is removed from the end of a captured title.
	TitleTrim *regexp.Regexp
}

var pageNumberPattern = regexp.MustCompile(`\bPAGE\s+(\d+)\b`)

// DefaultLocatorConfig returns the patterns for DOE-2/eQUEST SIM output.
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		Start:      regexp.MustCompile(`^\s*REPORT-\s+(\S+)\s+(.*?)\s*$`),
		End:        regexp.MustCompile(`END OF REPORT`),
		PageHeader: regexp.MustCompile(`\bPAGE\s+(\d+)\b|\bDOE-2\.|\bBDL RUN\b`),
		Separator:  regexp.MustCompile(`^\s*-{3,}[-\s]*$`),
		TitleTrim:  regexp.MustCompile(`\s+WEATHER FILE.*$`),
	}
}

// Locator partitions an ordered line stream into report blocks. Blocks with
// codes unknown to the registry are preserved untyped rather than dropped;
// relevance is decided downstream.
type Locator struct {
	cfg LocatorConfig
}

// NewLocator creates a Locator with the given configuration. Zero-valued
// patterns fall back to the defaults.
func NewLocator(cfg LocatorConfig) *Locator {
	def := DefaultLocatorConfig()
	if cfg.Start == nil {
		cfg.Start = def.Start
	}
	if cfg.End == nil {
		cfg.End = def.End
	}
	if cfg.PageHeader == nil {
		cfg.PageHeader = def.PageHeader
	}
	if cfg.Separator == nil {
		cfg.Separator = def.Separator
	}
	if cfg.TitleTrim == nil {
		cfg.TitleTrim = def.TitleTrim
	}
	return &Locator{cfg: cfg}
}

// ReadLines splits raw report text into RawLines, tracking page numbers
// from form feeds. Carriage returns are stripped.
func ReadLines(text string) []domain.RawLine {
	page := 1
	raw := strings.Split(text, "\n")
	lines := make([]domain.RawLine, 0, len(raw))
	for i, s := range raw {
		s = strings.TrimRight(s, "\r")
		if strings.HasPrefix(s, "\f") {
			page++
			s = strings.TrimPrefix(s, "\f")
		}
		lines = append(lines, domain.RawLine{Text: s, Number: i + 1, Page: page})
	}
	return lines
}

// Split partitions the line stream into report blocks. A block starts at a
// start marker and ends at the next marker, an end-of-report marker, a page
// break, or end-of-file. Blank lines around the body and recurring page
// headers are discarded. A start marker with no following body line yields
// a MalformedReportError diagnostic for that block only.
func (l *Locator) Split(lines []domain.RawLine) ([]domain.ReportBlock, []Diagnostic) {
	var (
		blocks      []domain.ReportBlock
		diagnostics []Diagnostic
		current     *domain.ReportBlock
		startLine   int
		startPage   int
	)

	finish := func() {
		if current == nil {
			return
		}
		trimTrailingBlanks(current)
		if len(current.Lines) == 0 {
			diagnostics = append(diagnostics, Diagnostic{
				Code: current.Code,
				Page: current.Page,
				Line: startLine,
				Err:  NewMalformedReportError(current.Code, startLine),
			})
		} else {
			blocks = append(blocks, *current)
		}
		current = nil
	}

	for _, line := range lines {
		if m := l.cfg.Start.FindStringSubmatch(line.Text); m != nil {
			finish()
			current = &domain.ReportBlock{
				Code:  strings.TrimSpace(m[1]),
				Title: l.title(m[2]),
				Page:  line.Page,
			}
			startLine = line.Number
			startPage = line.Page
			continue
		}
		if current == nil {
			continue
		}
		// Report pages restart with their own marker, so a form feed ends
		// the current block.
		if line.Page != startPage {
			finish()
			continue
		}
		if l.cfg.End.MatchString(line.Text) {
			finish()
			continue
		}
		if l.cfg.PageHeader.MatchString(line.Text) {
			// An explicit page number beats the form-feed count.
			if pm := pageNumberPattern.FindStringSubmatch(line.Text); pm != nil {
				if n, err := strconv.Atoi(pm[1]); err == nil {
					current.Page = n
				}
			}
			continue
		}
		if l.cfg.Separator.MatchString(line.Text) {
			continue
		}
		if line.IsBlank() && len(current.Lines) == 0 {
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	finish()

	return blocks, diagnostics
}

func (l *Locator) title(raw string) string {
	title := l.cfg.TitleTrim.ReplaceAllString(raw, "")
	return strings.TrimSpace(title)
}

func trimTrailingBlanks(b *domain.ReportBlock) {
	n := len(b.Lines)
	for n > 0 && b.Lines[n-1].IsBlank() {
		n--
	}
	b.Lines = b.Lines[:n]
}
