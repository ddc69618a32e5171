// Package exporter writes parsed shock events to CSV files: one
// per-event sample table and a batch summary. Files are written with an
// optional UTF-8 BOM so Excel opens them cleanly.
package exporter
