// Command plotter renders MSR175 shock-event data (Excel workbooks or CSV
// exports) into a single interactive HTML report with time-series and
// power-spectrum charts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"msrcli/internal/config"
	"msrcli/internal/infrastructure"
	"msrcli/internal/report"
	"msrcli/internal/shock"
	"msrcli/internal/workbook"
	"msrcli/pkg/contracts/domain"
)

func main() {
	output := flag.String("output", "shock_report.html", "output HTML file path (relative paths land in the reports directory)")
	skipInvalid := flag.Bool("skip-invalid-sheets", false, "skip sheets with invalid format/value and continue with the remaining sheets")
	hideTotal := flag.Bool("hide-total", false, "hide total acceleration in the time series charts")
	hideMax := flag.Bool("hide-max", false, "hide maximum acceleration in the chart titles")
	noSpectrum := flag.Bool("no-power-spectrum", false, "omit the power spectrum charts")
	accMin := flag.Float64("min-acc", math.NaN(), "minimum acceleration in g for the time series charts, NaN for auto scale")
	accMax := flag.Float64("max-acc", math.NaN(), "maximum acceleration in g for the time series charts, NaN for auto scale")
	tMin := flag.Float64("min-time", math.NaN(), "minimum time in milliseconds for the time series charts, NaN for auto scale")
	tMax := flag.Float64("max-time", math.NaN(), "maximum time in milliseconds for the time series charts, NaN for auto scale")
	psMin := flag.Float64("min-ps", math.NaN(), "minimum power spectrum in g^2, NaN for auto scale")
	psMax := flag.Float64("max-ps", math.NaN(), "maximum power spectrum in g^2, NaN for auto scale")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: plotter [flags] file.xlsx|file.csv ...")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	skip := cfg.Processing.SkipInvalidSheets || *skipInvalid
	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	var events []*domain.ShockEvent
	for _, path := range flag.Args() {
		loaded, err := loadFile(path, skip, logger)
		if err != nil {
			var accessErr *workbook.FileAccessError
			if errors.As(err, &accessErr) {
				logger.ErrorContext(ctx, "cannot read input file",
					slog.String("file", path), slog.String("error", err.Error()))
				continue
			}
			logger.ErrorContext(ctx, "failed to load input file",
				slog.String("file", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.InfoContext(ctx, "loaded shock events",
			slog.String("file", path), slog.Int("events", len(loaded)))
		events = append(events, loaded...)
	}

	if len(events) == 0 {
		logger.ErrorContext(ctx, "no valid shock events loaded")
		os.Exit(1)
	}

	opts := report.Options{
		ShowTotal:    !*hideTotal,
		ShowMax:      !*hideMax,
		PlotSpectrum: !*noSpectrum,
		AccMinG:      bound(*accMin),
		AccMaxG:      bound(*accMax),
		TMinMs:       bound(*tMin),
		TMaxMs:       bound(*tMax),
		PSMinG2:      bound(*psMin),
		PSMaxG2:      bound(*psMax),
	}

	outPath := *output
	if !filepath.IsAbs(outPath) {
		outPath = paths.GetReportPath(outPath)
	}

	if err := report.NewGenerator(opts).WriteHTML(outPath, events); err != nil {
		logger.ErrorContext(ctx, "failed to write report", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "report generated",
		slog.String("path", outPath), slog.Int("events", len(events)))
	fmt.Printf("Generated the report as %s\n", outPath)
}

// loadFile dispatches on the file extension: workbooks may carry several
// events, a CSV export carries exactly one.
func loadFile(path string, skipInvalid bool, logger *slog.Logger) ([]*domain.ShockEvent, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		event, err := shock.ReadCSV(path)
		if err != nil {
			return nil, err
		}
		return []*domain.ShockEvent{event}, nil
	}
	return shock.LoadWorkbook(path, skipInvalid, logger)
}

// bound converts a NaN-means-auto flag value into an optional axis bound.
func bound(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
