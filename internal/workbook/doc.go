// Package workbook provides structural access to spreadsheet files. It
// opens a workbook, enumerates its sheets and exposes each one as an
// immutable cell grid addressable by A1-style references. It performs no
// validation of cell contents; that belongs to the shock parser.
package workbook
