package shock

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"msrcli/internal/signal"
	"msrcli/internal/workbook"
	"msrcli/pkg/contracts/domain"
)

// csvRef renders a position in a delimited file for error messages.
// CSV rows are addressed 1-based including the header line, so the first
// sample row is row 2.
func csvRef(row, col int) string {
	return fmt.Sprintf("row %d col %d", row, col)
}

// ReadCSV parses an MSR175 CSV export: one header line followed by rows of
// four numeric columns (time in msec, x, y, z in g). The same zero-start
// and constant-period contracts as the worksheet parser apply. The event id
// is taken from the file name; CSV exports carry no timestamp.
func ReadCSV(path string) (*domain.ShockEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &workbook.FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	eventID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	event, err := parseCSV(f, eventID)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func parseCSV(r io.Reader, eventID string) (*domain.ShockEvent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Header line is skipped without validation; the logger's CSV export
	// writes free-form column titles.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, formatErrorf(csvRef(1, 1), "file is empty, expected a header line")
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	var (
		samplingPeriodMs float64
		periodKnown      bool
		prevTMs          float64
		x, y, z          []float64
	)

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", row, err)
		}
		if len(record) < 4 {
			return nil, formatErrorf(csvRef(row, len(record)+1), "expected 4 columns (time, x, y, z), but found %d", len(record))
		}

		values := make([]float64, 4)
		for col := 0; col < 4; col++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
			if err != nil {
				return nil, formatErrorf(csvRef(row, col+1), "expected a number, but it was %q", record[col])
			}
			values[col] = v
		}
		tMs := values[0]

		switch {
		case len(x) == 0:
			if tMs != 0 {
				return nil, formatErrorf(csvRef(row, 1), "the first time must be 0, but was %.5f ms", tMs)
			}
		case !periodKnown:
			samplingPeriodMs = roundDelta(tMs - prevTMs)
			periodKnown = true
		default:
			dtMs := roundDelta(tMs - prevTMs)
			if dtMs != samplingPeriodMs {
				return nil, formatErrorf(csvRef(row, 1),
					"the time difference from the previous time must be %.5f ms, but was %.5f ms", samplingPeriodMs, dtMs)
			}
		}

		x = append(x, values[1])
		y = append(y, values[2])
		z = append(z, values[3])
		prevTMs = tMs
	}

	if !periodKnown {
		return nil, formatErrorf(csvRef(2, 1), "at least two sample rows are required, but found %d", len(x))
	}

	return signal.Derive(eventID, time.Time{}, samplingPeriodMs, x, y, z)
}
