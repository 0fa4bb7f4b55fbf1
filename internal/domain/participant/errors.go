package participant

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for ingest. Callers distinguish them with errors.Is.
var (
	ErrFileNotFound    = errors.New("participant file not found")
	ErrMalformedFile   = errors.New("participant file malformed")
	ErrMissingColumn   = errors.New("missing column")
	ErrNonNumericValue = errors.New("non-numeric value")
	ErrEmptyTable      = errors.New("empty table")
)

// CellError describes a cell that could not be converted to a number.
type CellError struct {
	Column string
	Row    int // 1-based data row, header excluded
	Value  string
}

func (e *CellError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: column %q row %d is blank", ErrNonNumericValue, e.Column, e.Row)
	}
	return fmt.Sprintf("%s: column %q row %d has %q", ErrNonNumericValue, e.Column, e.Row, e.Value)
}

// Unwrap lets errors.Is match ErrNonNumericValue.
func (e *CellError) Unwrap() error { return ErrNonNumericValue }

func missingColumn(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, name)
}
