package workbook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGrid_Cell(t *testing.T) {
	grid := NewGrid("Sheet1", [][]string{
		{"Event ID:", "17"},
		{},
		{"a", "b", "c"},
	})

	tests := []struct {
		ref      string
		expected string
	}{
		{"A1", "Event ID:"},
		{"B1", "17"},
		// C1 is beyond the row, A2 sits in an empty row and A99 is
		// beyond the sheet; all read as empty.
		{"C1", ""},
		{"A2", ""},
		{"C3", "c"},
		{"A99", ""},
	}

	for _, tt := range tests {
		value, err := grid.Cell(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.expected, value, tt.ref)
	}
}

func TestGrid_Cell_InvalidReference(t *testing.T) {
	grid := NewGrid("Sheet1", nil)
	_, err := grid.Cell("not-a-ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cell reference")
}

func TestGrid_At(t *testing.T) {
	grid := NewGrid("Data", [][]string{{"0", "1.5"}})

	assert.Equal(t, "0", grid.At(1, 1))
	assert.Equal(t, "1.5", grid.At(2, 1))
	assert.Equal(t, "", grid.At(3, 1))
	assert.Equal(t, "", grid.At(1, 2))
	assert.Equal(t, "", grid.At(0, 0))
	assert.Equal(t, "Data", grid.Name())
	assert.Equal(t, 1, grid.NumRows())
}

func TestRef(t *testing.T) {
	assert.Equal(t, "A1", Ref(1, 1))
	assert.Equal(t, "D7", Ref(4, 7))
	assert.Equal(t, "AA10", Ref(27, 10))
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Event ID:"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", 17))
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Second", "A1", "other"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	grids, err := Open(path)
	require.NoError(t, err)
	require.Len(t, grids, 2)

	assert.Equal(t, "Sheet1", grids[0].Name())
	value, err := grids[0].Cell("A1")
	require.NoError(t, err)
	assert.Equal(t, "Event ID:", value)
	value, err = grids[0].Cell("B1")
	require.NoError(t, err)
	assert.Equal(t, "17", value)

	assert.Equal(t, "Second", grids[1].Name())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)

	var accessErr *FileAccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Contains(t, accessErr.Path, "nope.xlsx")
}

func TestOpen_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip container"), 0o644))

	_, err := Open(path)
	require.Error(t, err)

	var accessErr *FileAccessError
	assert.True(t, errors.As(err, &accessErr))
}
