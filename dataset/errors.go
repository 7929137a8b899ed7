package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when the workbook, sheet or table does not exist.
	ErrSourceNotFound = errors.New("sales source not found")
	// ErrUnreadableSource is returned when the source exists but cannot be decoded.
	ErrUnreadableSource = errors.New("sales source unreadable")
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("required column missing")
)

// ParseError reports a cell that could not be converted to its column type.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d, column %q: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("column %q: cannot parse %q: %v", e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
