package shock

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"time"

	"msrcli/internal/signal"
	"msrcli/internal/workbook"
	"msrcli/pkg/contracts/domain"
)

// Fixed header layout of an MSR175 shock-event worksheet.
const (
	cellEventIDLabel = "A1"
	cellEventID      = "B1"
	cellDateLabel    = "D1"
	cellDate         = "E1"
	cellTimeLabel    = "D2"
	cellTime         = "E2"
	cellTimeHeader   = "A6"
	cellXHeader      = "B6"
	cellYHeader      = "C6"
	cellZHeader      = "D6"

	firstSampleRow = 7

	dateLayout = "06-01-02"
)

// Time-of-day layouts the logger export has been seen to use.
var timeLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}

// Time deltas are compared after rounding to 6 decimal digits, matching the
// precision the logger writes.
func roundDelta(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// validateCell checks that a header cell holds the expected literal.
// Returns a FormatError value rather than failing hard; header mismatches
// are an expected condition in batch mode.
func validateCell(g *workbook.Grid, ref, expected string) *FormatError {
	value, err := g.Cell(ref)
	if err != nil {
		return formatErrorf(ref, "%v", err)
	}
	if value != expected {
		return formatErrorf(ref, "expected value was %q, but it was %q", expected, value)
	}
	return nil
}

func parseDate(g *workbook.Grid, ref string) (time.Time, *FormatError) {
	value, err := g.Cell(ref)
	if err != nil {
		return time.Time{}, formatErrorf(ref, "%v", err)
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, formatErrorf(ref, "expected format was %q (e.g. 22-01-31), but it was %q: %v", dateLayout, value, err)
	}
	return d, nil
}

func parseTimeOfDay(g *workbook.Grid, ref string) (time.Time, *FormatError) {
	value, err := g.Cell(ref)
	if err != nil {
		return time.Time{}, formatErrorf(ref, "%v", err)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, formatErrorf(ref, "expected a time of day (e.g. 12:34:56), but it was %q", value)
}

func parseSampleFloat(g *workbook.Grid, col, row int) (float64, *FormatError) {
	ref := workbook.Ref(col, row)
	value := g.At(col, row)
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, formatErrorf(ref, "expected a number, but it was %q", value)
	}
	return v, nil
}

// ParseSheet transforms one worksheet into a validated ShockEvent with all
// derived fields computed. Any layout or consistency violation is reported
// as a FormatError carrying the offending cell address.
func ParseSheet(g *workbook.Grid) (*domain.ShockEvent, error) {
	if ferr := validateCell(g, cellEventIDLabel, "Event ID:"); ferr != nil {
		return nil, ferr
	}
	if ferr := validateCell(g, cellDateLabel, "Start Date:"); ferr != nil {
		return nil, ferr
	}
	if ferr := validateCell(g, cellTimeLabel, "Start Time:"); ferr != nil {
		return nil, ferr
	}

	eventID, err := g.Cell(cellEventID)
	if err != nil {
		return nil, formatErrorf(cellEventID, "%v", err)
	}

	date, ferr := parseDate(g, cellDate)
	if ferr != nil {
		return nil, ferr
	}
	tod, ferr := parseTimeOfDay(g, cellTime)
	if ferr != nil {
		return nil, ferr
	}
	timestamp := time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)

	if ferr := validateCell(g, cellTimeHeader, "Time (msec)"); ferr != nil {
		return nil, ferr
	}
	if ferr := validateCell(g, cellXHeader, "X (g)"); ferr != nil {
		return nil, ferr
	}
	if ferr := validateCell(g, cellYHeader, "Y (g)"); ferr != nil {
		return nil, ferr
	}
	if ferr := validateCell(g, cellZHeader, "Z (g)"); ferr != nil {
		return nil, ferr
	}

	var (
		samplingPeriodMs float64
		periodKnown      bool
		prevTMs          float64
		x, y, z          []float64
	)

	for row := firstSampleRow; ; row++ {
		if g.At(1, row) == "" {
			break
		}

		tMs, ferr := parseSampleFloat(g, 1, row)
		if ferr != nil {
			return nil, ferr
		}
		xv, ferr := parseSampleFloat(g, 2, row)
		if ferr != nil {
			return nil, ferr
		}
		yv, ferr := parseSampleFloat(g, 3, row)
		if ferr != nil {
			return nil, ferr
		}
		zv, ferr := parseSampleFloat(g, 4, row)
		if ferr != nil {
			return nil, ferr
		}

		switch {
		case len(x) == 0:
			if tMs != 0 {
				return nil, formatErrorf(workbook.Ref(1, row), "the first time must be 0, but was %.5f ms", tMs)
			}
		case !periodKnown:
			samplingPeriodMs = roundDelta(tMs - prevTMs)
			periodKnown = true
		default:
			dtMs := roundDelta(tMs - prevTMs)
			if dtMs != samplingPeriodMs {
				return nil, formatErrorf(workbook.Ref(1, row),
					"the time difference from the previous time must be %.5f ms, but was %.5f ms", samplingPeriodMs, dtMs)
			}
		}

		x = append(x, xv)
		y = append(y, yv)
		z = append(z, zv)
		prevTMs = tMs
	}

	if !periodKnown {
		return nil, formatErrorf(workbook.Ref(1, firstSampleRow),
			"at least two sample rows are required, but found %d", len(x))
	}

	return signal.Derive(eventID, timestamp, samplingPeriodMs, x, y, z)
}

// LoadWorkbook parses every sheet of an Excel workbook. With skipInvalid
// set, sheets that fail validation are logged as warnings and excluded from
// the result; otherwise the first failure aborts the whole workbook with a
// WorkbookError naming the file, sheet and cell.
func LoadWorkbook(path string, skipInvalid bool, logger *slog.Logger) ([]*domain.ShockEvent, error) {
	if logger == nil {
		logger = slog.Default()
	}

	grids, err := workbook.Open(path)
	if err != nil {
		return nil, err
	}

	var events []*domain.ShockEvent
	for _, grid := range grids {
		event, err := ParseSheet(grid)
		if err != nil {
			var ferr *FormatError
			if errors.As(err, &ferr) {
				if skipInvalid {
					logger.Warn("skipping invalid sheet",
						slog.String("file", path),
						slog.String("sheet", grid.Name()),
						slog.String("cell", ferr.Cell),
						slog.String("reason", ferr.Message))
					continue
				}
				return nil, &WorkbookError{Path: path, Sheet: grid.Name(), Err: ferr}
			}
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
