package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// FileAccessError indicates that an input file could not be opened or read
// as the expected container format. It is fatal for that file only.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Grid is a read-only snapshot of one sheet's cells. Missing cells read as
// the empty string, matching how excelize reports sparse sheets.
type Grid struct {
	name string
	rows [][]string
}

// NewGrid builds a grid from raw rows. Exposed for tests that assemble
// sheets without a backing file.
func NewGrid(name string, rows [][]string) *Grid {
	return &Grid{name: name, rows: rows}
}

// Name returns the sheet name.
func (g *Grid) Name() string {
	return g.name
}

// NumRows returns the number of rows the sheet reports.
func (g *Grid) NumRows() int {
	return len(g.rows)
}

// Cell returns the cell value at an A1-style reference. Out-of-range
// references read as empty, like an empty cell.
func (g *Grid) Cell(ref string) (string, error) {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return "", fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return g.at(col, row), nil
}

// At returns the cell value at 1-based column and row coordinates.
func (g *Grid) At(col, row int) string {
	return g.at(col, row)
}

func (g *Grid) at(col, row int) string {
	if row < 1 || row > len(g.rows) {
		return ""
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// Ref returns the A1-style reference for 1-based column and row
// coordinates, for use in error messages.
func Ref(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col)
	}
	return name
}

// Open reads every sheet of a workbook into memory and releases the file
// handle before returning, so at most one file is held open at a time.
func Open(path string) ([]*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	return readSheets(f)
}

// ReadFile extracts the sheets of an already-open excelize file. Exposed
// for tests that build workbooks in memory.
func ReadFile(f *excelize.File) ([]*Grid, error) {
	return readSheets(f)
}

func readSheets(f *excelize.File) ([]*Grid, error) {
	var grids []*Grid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		grids = append(grids, &Grid{name: name, rows: rows})
	}
	return grids, nil
}
