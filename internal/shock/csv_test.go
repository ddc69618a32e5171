package shock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msrcli/internal/workbook"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "drop_test.csv",
		"Time (msec),X (g),Y (g),Z (g)\n"+
			"0,0,0,0\n"+
			"0.5,3,4,0\n"+
			"1,0,0,0\n"+
			"1.5,0,0,0\n")

	event, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "drop_test", event.EventID)
	assert.True(t, event.Timestamp.IsZero())
	assert.Equal(t, 0.5, event.SamplingPeriodMs)
	assert.Equal(t, 4, event.N())
	assert.Equal(t, []float64{0, 3, 0, 0}, event.XG)
	assert.Equal(t, []float64{0, 4, 0, 0}, event.YG)
	assert.Equal(t, []float64{0, 0, 0, 0}, event.ZG)
	assert.Equal(t, 5.0, event.MaxG)
	assert.Len(t, event.Spectrum.FreqHz, 2)
}

func TestReadCSV_QuotedAndPaddedFields(t *testing.T) {
	path := writeCSV(t, "padded.csv",
		"t,x,y,z\n"+
			"\"0\", 1.5 ,0,0\n"+
			"\"2\",0, -1.5 ,0\n")

	event, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, event.SamplingPeriodMs)
	assert.Equal(t, []float64{1.5, 0}, event.XG)
	assert.Equal(t, []float64{0, -1.5}, event.YG)
}

func TestReadCSV_FirstTimeNotZero(t *testing.T) {
	path := writeCSV(t, "bad_start.csv",
		"t,x,y,z\n"+
			"0.5,0,0,0\n"+
			"1,0,0,0\n")

	_, err := ReadCSV(path)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "row 2 col 1", ferr.Cell)
	assert.Contains(t, ferr.Message, "the first time must be 0")
}

func TestReadCSV_InconsistentDelta(t *testing.T) {
	path := writeCSV(t, "jitter.csv",
		"t,x,y,z\n"+
			"0,0,0,0\n"+
			"1,0,0,0\n"+
			"2,0,0,0\n"+
			"3.5,0,0,0\n")

	_, err := ReadCSV(path)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "row 5 col 1", ferr.Cell)
	assert.Contains(t, ferr.Message, "must be 1.00000 ms")
	assert.Contains(t, ferr.Message, "was 1.50000 ms")
}

func TestReadCSV_NonNumericColumn(t *testing.T) {
	path := writeCSV(t, "text.csv",
		"t,x,y,z\n"+
			"0,0,0,0\n"+
			"1,oops,0,0\n")

	_, err := ReadCSV(path)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "row 3 col 2", ferr.Cell)
	assert.Contains(t, ferr.Message, `"oops"`)
}

func TestReadCSV_TooFewColumns(t *testing.T) {
	path := writeCSV(t, "narrow.csv",
		"t,x,y\n"+
			"0,0,0\n")

	_, err := ReadCSV(path)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Message, "expected 4 columns")
}

func TestReadCSV_TooFewRows(t *testing.T) {
	path := writeCSV(t, "short.csv",
		"t,x,y,z\n"+
			"0,1,2,3\n")

	_, err := ReadCSV(path)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Message, "at least two sample rows")
}

func TestReadCSV_EmptyFile(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")

	_, err := ReadCSV(path)

	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Message, "expected a header line")
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	var accessErr *workbook.FileAccessError
	assert.True(t, errors.As(err, &accessErr))
}
