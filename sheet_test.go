package spreadsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunv/go-spreadsheet/position"
)

func TestSetCellInvalidPosition(t *testing.T) {
	sheet := CreateSheet()
	err := sheet.SetCell(position.Position{Row: -1, Col: 0}, "1")
	require.Error(t, err)

	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, CodeInvalidPosition, sheetErr.Code)
}

func TestSetCellRejectsDirectCycle(t *testing.T) {
	sheet := CreateSheet()
	err := sheet.SetCell(a1(t, "A1"), "=A1")
	require.Error(t, err)

	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, CodeCircularDependency, sheetErr.Code)
	assert.Nil(t, sheet.GetCell(a1(t, "A1")))
}

func TestSetCellRejectsIndirectCycleLeavesSheetUnchanged(t *testing.T) {
	sheet := CreateSheet()
	require.NoError(t, sheet.SetCell(a1(t, "A1"), "=A2"))
	require.NoError(t, sheet.SetCell(a1(t, "A2"), "=A3"))

	// A3 was never set directly, but wiring A2's "=A3" must have installed
	// an Empty placeholder at A3 so it can carry A2 in its parents set.
	before := sheet.GetCell(a1(t, "A3"))
	require.NotNil(t, before)
	assert.True(t, before.IsEmpty())

	err := sheet.SetCell(a1(t, "A3"), "=A1")
	require.Error(t, err)

	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, CodeCircularDependency, sheetErr.Code)

	// The rejected edit must not have changed A3: still the same Empty
	// placeholder as before the attempt.
	after := sheet.GetCell(a1(t, "A3"))
	require.NotNil(t, after)
	assert.True(t, after.IsEmpty())
	// And A1/A2 must still evaluate exactly as before the rejected edit:
	// A2 references empty A3, which coerces to 0.
	v := sheet.GetCell(a1(t, "A1")).GetValue()
	require.True(t, v.IsNumber())
	assert.Equal(t, float64(0), v.Number())
}

func TestGetTextSetCellRoundTripIsNoOp(t *testing.T) {
	sheet := CreateSheet()
	require.NoError(t, sheet.SetCell(a1(t, "B2"), "3"))
	require.NoError(t, sheet.SetCell(a1(t, "A3"), "=a1+b2"))

	text := sheet.GetCell(a1(t, "A3")).GetText()
	assert.Equal(t, "=A1+B2", text)

	require.NoError(t, sheet.SetCell(a1(t, "A3"), text))
	assert.Equal(t, text, sheet.GetCell(a1(t, "A3")).GetText())
}

func TestClearCellDeletesUnreferencedCell(t *testing.T) {
	sheet := CreateSheet()
	require.NoError(t, sheet.SetCell(a1(t, "A1"), "1"))
	require.NoError(t, sheet.ClearCell(a1(t, "A1")))

	assert.Nil(t, sheet.GetCell(a1(t, "A1")))
}

func TestClearCellKeepsPlaceholderWhenReferenced(t *testing.T) {
	sheet := CreateSheet()
	require.NoError(t, sheet.SetCell(a1(t, "A1"), "1"))
	require.NoError(t, sheet.SetCell(a1(t, "A2"), "=A1+1"))

	require.NoError(t, sheet.ClearCell(a1(t, "A1")))

	placeholder := sheet.GetCell(a1(t, "A1"))
	require.NotNil(t, placeholder)
	assert.True(t, placeholder.IsEmpty())

	dependent := sheet.GetCell(a1(t, "A2"))
	assert.Equal(t, float64(1), dependent.GetValue().Number())
}

func TestGetPrintableSizeTransitions(t *testing.T) {
	sheet := CreateSheet()
	assert.True(t, sheet.GetPrintableSize().IsZero())

	require.NoError(t, sheet.SetCell(a1(t, "B3"), "x"))
	size := sheet.GetPrintableSize()
	assert.Equal(t, 3, size.Rows)
	assert.Equal(t, 2, size.Cols)

	require.NoError(t, sheet.ClearCell(a1(t, "B3")))
	assert.True(t, sheet.GetPrintableSize().IsZero())
}

func TestPrintValuesAndTexts(t *testing.T) {
	sheet := CreateSheet()
	require.NoError(t, sheet.SetCell(a1(t, "A1"), "2"))
	require.NoError(t, sheet.SetCell(a1(t, "B1"), "=A1*3"))

	var values, texts strings.Builder
	require.NoError(t, sheet.PrintValues(&values))
	require.NoError(t, sheet.PrintTexts(&texts))

	assert.Equal(t, "2\t6\n", values.String())
	assert.Equal(t, "2\t=A1*3\n", texts.String())
}
