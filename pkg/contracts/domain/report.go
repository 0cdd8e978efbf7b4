package domain

// RawLine is one physical line of a simulation output file, annotated with
// its position in the file and the report page it appeared on.
type RawLine struct {
	Text   string `json:"text"`
	Number int    `json:"number"`
	Page   int    `json:"page"`
}

// IsBlank reports whether the line contains no visible characters.
func (l RawLine) IsBlank() bool {
	for _, r := range l.Text {
		if r != ' ' && r != '\t' && r != '\r' && r != '\f' {
			return false
		}
	}
	return true
}

// ReportBlock is a contiguous region of the source file bounded by a report
// start marker and the next marker, an end-of-report marker, or end-of-file.
// Lines holds the block body in file order with surrounding blanks removed.
type ReportBlock struct {
	Code  string    `json:"code"`
	Title string    `json:"title"`
	Lines []RawLine `json:"lines"`
	Page  int       `json:"page"`
}

// StartLine returns the file line number of the first body line, or 0 when
// the block has no body.
func (b ReportBlock) StartLine() int {
	if len(b.Lines) == 0 {
		return 0
	}
	return b.Lines[0].Number
}
