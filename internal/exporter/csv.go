package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"msrcli/internal/config"
	"msrcli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality for shock events.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file under the reports directory unless
// the path is absolute.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Debug("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteEventSamples writes the sample table of one event: time, the three
// axes and the resultant magnitude. Returns the written file name.
func (w *CSVWriter) WriteEventSamples(event *domain.ShockEvent) (string, error) {
	records := make([][]string, event.N())
	for i := 0; i < event.N(); i++ {
		records[i] = []string{
			formatFloat(event.TMs[i]),
			formatFloat(event.XG[i]),
			formatFloat(event.YG[i]),
			formatFloat(event.ZG[i]),
			formatFloat(event.TotalG[i]),
		}
	}

	filename := fmt.Sprintf("event_%s_samples.csv", sanitizeID(event.EventID))
	err := w.WriteCSV(filename, WriteOptions{
		Headers:   []string{"Time (msec)", "X (g)", "Y (g)", "Z (g)", "Total (g)"},
		Records:   records,
		BOMPrefix: true,
	})
	if err != nil {
		return "", err
	}
	return filename, nil
}

// WriteSummary writes one row per event with its metadata and headline
// derived quantities.
func (w *CSVWriter) WriteSummary(filename string, events []*domain.ShockEvent) error {
	records := make([][]string, 0, len(events))
	for _, event := range events {
		timestamp := ""
		if !event.Timestamp.IsZero() {
			timestamp = event.Timestamp.Format("2006-01-02 15:04:05")
		}
		records = append(records, []string{
			event.EventID,
			timestamp,
			fmt.Sprintf("%d", event.N()),
			formatFloat(event.SamplingPeriodMs),
			formatFloat(event.SamplingFrequencyHz()),
			formatFloat(event.DurationMs()),
			fmt.Sprintf("%.3f", event.MaxG),
		})
	}

	return w.WriteCSV(filename, WriteOptions{
		Headers: []string{
			"EventID", "Timestamp", "Samples", "SamplingPeriodMs",
			"SamplingFrequencyHz", "DurationMs", "MaxG",
		},
		Records:   records,
		BOMPrefix: true,
	})
}

func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}

// sanitizeID makes an event id safe for use in a file name.
func sanitizeID(id string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")
	s := replacer.Replace(strings.TrimSpace(id))
	if s == "" {
		return "unknown"
	}
	return s
}

func formatFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
