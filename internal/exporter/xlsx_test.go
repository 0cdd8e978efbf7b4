package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tzhang-nrg/simparse/pkg/contracts/domain"
)

func TestWorkbookWriter_Write(t *testing.T) {
	paths := testPaths(t)
	writer := NewWorkbookWriter(paths)

	second := monthlyTable(t)
	second.Code = "SS-A"
	path, err := writer.Write("building.SIM", []*domain.Table{monthlyTable(t), second})
	require.NoError(t, err)
	assert.Equal(t, paths.ReportPath("building.SIM", "building.SIM.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"PS-F", "SS-A"}, f.GetSheetList())

	header, err := f.GetCellValue("PS-F", "B1")
	require.NoError(t, err)
	assert.Equal(t, "COOLING ENERGY(MBTU)", header)

	label, err := f.GetCellValue("PS-F", "A2")
	require.NoError(t, err)
	assert.Equal(t, "JAN", label)

	value, err := f.GetCellValue("PS-F", "C3")
	require.NoError(t, err)
	assert.Equal(t, "-4.7", value)

	// Missing cell stays empty rather than zero.
	missing, err := f.GetCellValue("PS-F", "B3")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestWorkbookWriter_NoTables(t *testing.T) {
	writer := NewWorkbookWriter(testPaths(t))

	_, err := writer.Write("building.SIM", nil)
	assert.Error(t, err)
}
