package simreport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

func row(label string, electricity, gas domain.Value) domain.DataRow {
	return domain.DataRow{
		Label: label,
		Cells: map[string]domain.Value{"Electricity": electricity, "Gas": gas},
	}
}

func TestAssembler_MergeAcrossPages(t *testing.T) {
	layout := monthlyLayout()
	asm := NewAssembler("EM-1", "Monthly Energy", layout)

	// Page 1.
	asm.Add(row("Nov", domain.Number(100), domain.Number(200)))
	asm.Add(row("Dec", domain.Number(300), domain.Number(400)))

	// Page 2 restates Dec then adds Jan (Scenario C).
	require.NoError(t, asm.Continue(layout, 2))
	asm.Add(row("Dec", domain.Number(111), domain.Number(222)))
	asm.Add(row("Jan", domain.Number(500), domain.Number(600)))

	table := asm.Table()
	assert.Equal(t, []string{"Nov", "Dec", "Jan"}, table.Labels(),
		"unique labels in encountered order, restatement keeps position")

	dec, ok := table.Row("Dec")
	require.True(t, ok)
	assert.Equal(t, domain.Number(111), dec.Cell("Electricity"), "later page wins on label collision")
	assert.Equal(t, domain.Number(222), dec.Cell("Gas"))
}

func TestAssembler_DistinctLabelCount(t *testing.T) {
	asm := NewAssembler("EM-1", "Monthly Energy", monthlyLayout())

	labels := []string{"Jan", "Feb", "Jan", "Mar", "Feb", "Jan"}
	for _, l := range labels {
		asm.Add(row(l, domain.Number(1), domain.Number(2)))
	}

	assert.Len(t, asm.Table().Rows, 3, "row count equals unique label count")
}

func TestAssembler_LayoutMismatch(t *testing.T) {
	layout := monthlyLayout()
	asm := NewAssembler("EM-1", "Monthly Energy", layout)
	asm.Add(row("Jan", domain.Number(1), domain.Number(2)))

	other := domain.HeaderLayout{
		Columns: []domain.ColumnDescriptor{
			{Name: "Electricity", Index: 0},
			{Name: "Steam", Index: 1},
		},
	}
	err := asm.Continue(other, 2)

	var mismatch *LayoutMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "EM-1", mismatch.Code)
	assert.Equal(t, 2, mismatch.Page)
	assert.True(t, asm.Failed())

	// Rows already merged are preserved, later pages are dropped.
	asm.Add(row("Feb", domain.Number(9), domain.Number(9)))
	table := asm.Table()
	assert.Equal(t, []string{"Jan"}, table.Labels())
}

func TestAssembler_UnitFormattingTolerated(t *testing.T) {
	layout := monthlyLayout()
	asm := NewAssembler("EM-1", "Monthly Energy", layout)

	// Same column names, different unit text: a compatible continuation.
	reformatted := domain.HeaderLayout{
		Columns: []domain.ColumnDescriptor{
			{Name: "Electricity", Unit: "KWH", Index: 0},
			{Name: "Gas", Unit: "mj", Index: 1},
		},
	}
	assert.NoError(t, asm.Continue(reformatted, 2))
}

func TestAssembler_TableIsCopy(t *testing.T) {
	asm := NewAssembler("EM-1", "Monthly Energy", monthlyLayout())
	asm.Add(row("Jan", domain.Number(1), domain.Number(2)))

	table := asm.Table()
	asm.Add(row("Feb", domain.Number(3), domain.Number(4)))

	assert.Len(t, table.Rows, 1, "a handed-out table never changes")
}
