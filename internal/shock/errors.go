package shock

import (
	"fmt"
	"path/filepath"
)

// FormatError indicates that a single sheet or row violates the expected
// MSR175 layout or numeric-consistency contract. Cell carries the address
// of the offending cell and Message the expected-vs-actual detail.
type FormatError struct {
	Cell    string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cell %s: %s", e.Cell, e.Message)
}

func formatErrorf(cell, format string, args ...any) *FormatError {
	return &FormatError{Cell: cell, Message: fmt.Sprintf(format, args...)}
}

// WorkbookError wraps a FormatError with the source file and sheet when
// abort-on-error policy is selected for a batch load.
type WorkbookError struct {
	Path  string
	Sheet string
	Err   *FormatError
}

func (e *WorkbookError) Error() string {
	return fmt.Sprintf("[%s]'%s'!%s: %s", filepath.Base(e.Path), e.Sheet, e.Err.Cell, e.Err.Message)
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}
