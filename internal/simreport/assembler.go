package simreport

import (
	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

// Assembler merges every block sharing one report code, in file order, into
// a single table. Page continuations must carry a structurally compatible
// layout; a mismatch is fatal for that report code only. Rows merged before
// the mismatch are kept.
type Assembler struct {
	code   string
	title  string
	layout domain.HeaderLayout
	rows   []domain.DataRow
	index  map[string]int
	failed bool
}

// NewAssembler starts a table from the first occurrence of a report code.
// The first block's layout becomes the reference for all continuations.
func NewAssembler(code, title string, layout domain.HeaderLayout) *Assembler {
	return &Assembler{
		code:   code,
		title:  title,
		layout: layout,
		index:  make(map[string]int),
	}
}

// Continue validates a later occurrence against the reference layout.
// Incompatibility returns a LayoutMismatchError and drops every later page
// for this code; prior rows remain in the table.
func (a *Assembler) Continue(layout domain.HeaderLayout, page int) error {
	if a.failed {
		return NewLayoutMismatchError(a.code, page, a.layout.ColumnNames(), layout.ColumnNames())
	}
	if !a.layout.Compatible(layout) {
		a.failed = true
		return NewLayoutMismatchError(a.code, page, a.layout.ColumnNames(), layout.ColumnNames())
	}
	return nil
}

// Failed reports whether a layout mismatch has poisoned this report code.
func (a *Assembler) Failed() bool {
	return a.failed
}

// Add merges one row. A label repeated verbatim across pages is a
// continuation restatement: the later occurrence overwrites the earlier
// value. New labels are appended in encountered order.
func (a *Assembler) Add(row domain.DataRow) {
	if a.failed {
		return
	}
	if i, ok := a.index[row.Label]; ok {
		a.rows[i] = row
		return
	}
	a.index[row.Label] = len(a.rows)
	a.rows = append(a.rows, row)
}

// Table returns the assembled, immutable table.
func (a *Assembler) Table() *domain.Table {
	rows := make([]domain.DataRow, len(a.rows))
	copy(rows, a.rows)
	return &domain.Table{
		Code:   a.code,
		Title:  a.title,
		Layout: a.layout,
		Rows:   rows,
	}
}
