// Command processor converts MSR175 shock-event workbooks into CSV files:
// one sample table per event plus a batch summary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"msrcli/internal/config"
	"msrcli/internal/exporter"
	"msrcli/internal/infrastructure"
	"msrcli/internal/shock"
	"msrcli/internal/workbook"
	"msrcli/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory scanned for .xlsx files when no files are given")
	outDir := flag.String("out", "", "output directory for CSV files (defaults to the configured reports directory)")
	skipInvalid := flag.Bool("skip-invalid-sheets", false, "skip sheets with invalid format/value and continue with the remaining sheets")
	summaryName := flag.String("summary", "shock_events_summary.csv", "file name of the batch summary CSV")
	flag.Parse()

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

	if *outDir != "" {
		paths.ReportsDir = *outDir
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	skip := cfg.Processing.SkipInvalidSheets || *skipInvalid

	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "starting shock event processing",
		slog.String("reports_dir", paths.ReportsDir),
		slog.Bool("skip_invalid_sheets", skip))

	files := flag.Args()
	if len(files) == 0 {
		files, err = discoverWorkbooks(*inDir, paths)
		if err != nil {
			logger.ErrorContext(ctx, "failed to scan input directory", "error", err)
			os.Exit(1)
		}
	}
	if len(files) == 0 {
		logger.WarnContext(ctx, "no workbook files to process")
		os.Exit(0)
	}

	writer := exporter.NewCSVWriter(paths)

	var allEvents []*domain.ShockEvent
	failedFiles := 0
	for _, path := range files {
		events, err := shock.LoadWorkbook(path, skip, logger)
		if err != nil {
			var accessErr *workbook.FileAccessError
			if errors.As(err, &accessErr) {
				// A broken file must not abort its siblings.
				logger.ErrorContext(ctx, "cannot read workbook",
					slog.String("file", path), slog.String("error", err.Error()))
				failedFiles++
				continue
			}
			var wbErr *shock.WorkbookError
			if errors.As(err, &wbErr) {
				logger.ErrorContext(ctx, "workbook validation failed, aborting batch",
					slog.String("file", wbErr.Path),
					slog.String("sheet", wbErr.Sheet),
					slog.String("cell", wbErr.Err.Cell),
					slog.String("reason", wbErr.Err.Message))
				os.Exit(1)
			}
			logger.ErrorContext(ctx, "failed to load workbook",
				slog.String("file", path), slog.String("error", err.Error()))
			os.Exit(1)
		}

		for _, event := range events {
			logger.InfoContext(ctx, "parsed shock event",
				slog.String("file", filepath.Base(path)),
				slog.String("event_id", event.EventID),
				slog.Time("timestamp", event.Timestamp),
				slog.Float64("sampling_frequency_hz", event.SamplingFrequencyHz()),
				slog.Float64("duration_ms", event.DurationMs()),
				slog.Float64("max_g", event.MaxG))
		}
		allEvents = append(allEvents, events...)
	}

	for _, event := range allEvents {
		name, err := writer.WriteEventSamples(event)
		if err != nil {
			logger.ErrorContext(ctx, "failed to write event CSV",
				slog.String("event_id", event.EventID), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.DebugContext(ctx, "wrote event CSV", slog.String("file", name))
	}

	if err := writer.WriteSummary(*summaryName, allEvents); err != nil {
		logger.ErrorContext(ctx, "failed to write summary CSV", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "processing complete",
		slog.Int("files", len(files)),
		slog.Int("failed_files", failedFiles),
		slog.Int("events", len(allEvents)))
	fmt.Printf("Processed %d events from %d files\n", len(allEvents), len(files))
}

// discoverWorkbooks lists the .xlsx files of a directory in name order,
// skipping Excel lock files.
func discoverWorkbooks(dir string, paths *config.Paths) ([]string, error) {
	if dir == "" {
		dir = paths.DataDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
