package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msrcli/internal/config"
	"msrcli/internal/signal"
	"msrcli/pkg/contracts/domain"
)

func setupWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()

	tempDir := t.TempDir()
	writer := NewCSVWriter(&config.Paths{
		DataDir:    filepath.Join(tempDir, "data"),
		ReportsDir: filepath.Join(tempDir, "reports"),
		LogsDir:    filepath.Join(tempDir, "logs"),
	})
	return writer, tempDir
}

func testEvent(t *testing.T) *domain.ShockEvent {
	t.Helper()

	event, err := signal.Derive("17", time.Date(2022, 1, 31, 12, 34, 56, 0, time.UTC), 1,
		[]float64{0, 5, 0, 0},
		[]float64{0, 0, 0, 0},
		[]float64{0, 0, 0, 0})
	require.NoError(t, err)
	return event
}

func TestWriteEventSamples(t *testing.T) {
	writer, tempDir := setupWriter(t)

	name, err := writer.WriteEventSamples(testEvent(t))
	require.NoError(t, err)
	assert.Equal(t, "event_17_samples.csv", name)

	content, err := os.ReadFile(filepath.Join(tempDir, "reports", name))
	require.NoError(t, err)

	// BOM then header then one line per sample.
	assert.True(t, strings.HasPrefix(string(content), "\xef\xbb\xbf"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(content), "\xef\xbb\xbf")), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Time (msec),X (g),Y (g),Z (g),Total (g)", lines[0])
	assert.Equal(t, "0,0,0,0,0", lines[1])
	assert.Equal(t, "1,5,0,0,5", lines[2])
	assert.Equal(t, "3,0,0,0,0", lines[4])
}

func TestWriteSummary(t *testing.T) {
	writer, tempDir := setupWriter(t)

	require.NoError(t, writer.WriteSummary("summary.csv", []*domain.ShockEvent{testEvent(t)}))

	content, err := os.ReadFile(filepath.Join(tempDir, "reports", "summary.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(content), "\xef\xbb\xbf")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "EventID,Timestamp,Samples,SamplingPeriodMs,SamplingFrequencyHz,DurationMs,MaxG", lines[0])
	assert.Equal(t, "17,2022-01-31 12:34:56,4,1,1000,4,5.000", lines[1])
}

func TestWriteSummary_ZeroTimestampLeftBlank(t *testing.T) {
	writer, tempDir := setupWriter(t)

	event, err := signal.Derive("csv_export", time.Time{}, 2,
		[]float64{0, 1}, []float64{0, 0}, []float64{0, 0})
	require.NoError(t, err)

	require.NoError(t, writer.WriteSummary("summary.csv", []*domain.ShockEvent{event}))

	content, err := os.ReadFile(filepath.Join(tempDir, "reports", "summary.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(content), "\xef\xbb\xbf")), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "csv_export,,2,"))
}

func TestWriteCSV_AbsolutePathBypassesReportsDir(t *testing.T) {
	writer, tempDir := setupWriter(t)

	target := filepath.Join(tempDir, "elsewhere", "out.csv")
	err := writer.WriteCSV(target, WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	})
	require.NoError(t, err)

	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"17", "17"},
		{"a b", "a_b"},
		{"x/y\\z", "x_y_z"},
		{"  ", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, sanitizeID(tt.in), tt.in)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in  float64
		out string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{100, "100"},
		{0.000001, "0.000001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, formatFloat(tt.in))
	}
}
