package simreport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

func headerLines(texts ...string) []domain.RawLine {
	lines := make([]domain.RawLine, len(texts))
	for i, s := range texts {
		lines[i] = domain.RawLine{Text: s, Number: i + 1, Page: 1}
	}
	return lines
}

func TestHeaderParser_Parse_SingleRowWithUnits(t *testing.T) {
	parser := NewHeaderParser(0, 0)

	layout, consumed, err := parser.Parse("EM-1", headerLines("Electricity (kWh)   Gas (MJ)"), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, consumed)
	require.Len(t, layout.Columns, 2)

	assert.Equal(t, "Electricity", layout.Columns[0].Name)
	assert.Equal(t, "kWh", layout.Columns[0].Unit)
	assert.Equal(t, "Gas", layout.Columns[1].Name)
	assert.Equal(t, "MJ", layout.Columns[1].Unit)
	assert.Equal(t, []string{"Electricity(kWh)", "Gas(MJ)"}, layout.Headers())
}

func TestHeaderParser_Parse_ThreeRowsWithUnitRow(t *testing.T) {
	parser := NewHeaderParser(0, 0)

	lines := headerLines(
		"            COOLING    HEATING",
		"             ENERGY     ENERGY",
		"             (MBTU)     (MBTU)",
	)
	layout, consumed, err := parser.Parse("SS-A", lines, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, consumed)
	require.Len(t, layout.Columns, 2)

	assert.Equal(t, "COOLING ENERGY", layout.Columns[0].Name)
	assert.Equal(t, "MBTU", layout.Columns[0].Unit)
	assert.Equal(t, "HEATING ENERGY", layout.Columns[1].Name)
	assert.Equal(t, "MBTU", layout.Columns[1].Unit)
}

func TestHeaderParser_Parse_WidthDriftAcrossRows(t *testing.T) {
	parser := NewHeaderParser(0, 0)

	// Subcategory fragments are shifted a few characters relative to the
	// category row; overlap matching must still align them.
	lines := headerLines(
		"          SUPPLY        RETURN",
		"            FLOW (CFM)    FLOW (CFM)",
	)
	layout, _, err := parser.Parse("SV-A", lines, 2)

	require.NoError(t, err)
	require.Len(t, layout.Columns, 2)
	assert.Equal(t, "SUPPLY FLOW", layout.Columns[0].Name)
	assert.Equal(t, "CFM", layout.Columns[0].Unit)
	assert.Equal(t, "RETURN FLOW", layout.Columns[1].Name)
}

func TestHeaderParser_Parse_ColumnSpansInvariant(t *testing.T) {
	parser := NewHeaderParser(0, 0)

	layout, _, err := parser.Parse("EM-1", headerLines("Aaa   Bbb   Ccc"), 1)
	require.NoError(t, err)

	for i := 1; i < len(layout.Columns); i++ {
		prev, cur := layout.Columns[i-1], layout.Columns[i]
		assert.Greater(t, cur.Start, prev.Start, "starts strictly increasing")
		assert.GreaterOrEqual(t, cur.Start, prev.End(), "spans non-overlapping")
		assert.Equal(t, i, cur.Index)
	}
}

func TestHeaderParser_Parse_NoColumns(t *testing.T) {
	parser := NewHeaderParser(0, 0)

	_, _, err := parser.Parse("EM-1", headerLines("          "), 1)

	var layoutErr *HeaderLayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, "EM-1", layoutErr.Code)
}

func TestHeaderParser_Parse_NoLines(t *testing.T) {
	parser := NewHeaderParser(0, 0)

	_, _, err := parser.Parse("EM-1", nil, 1)

	var layoutErr *HeaderLayoutError
	require.True(t, errors.As(err, &layoutErr))
}

func TestSplitUnit(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantUnit string
	}{
		{"Electricity (kWh)", "Electricity", "kWh"},
		{"(MBTU)", "", "MBTU"},
		{"COOLING ENERGY", "COOLING ENERGY", ""},
		{"Loop Flow (GPM)", "Loop Flow", "GPM"},
	}
	for _, tt := range tests {
		name, unit := splitUnit(tt.in)
		assert.Equal(t, tt.wantName, name, tt.in)
		assert.Equal(t, tt.wantUnit, unit, tt.in)
	}
}
