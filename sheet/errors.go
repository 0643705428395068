package sheet

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrEmptyFormula is returned for a field holding only the formula marker.
	ErrEmptyFormula = errors.New("empty expression")
	// ErrEmptyInput is returned when the input holds no cells at all.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidPosition indicates a malformed A1 cell address.
	ErrInvalidPosition = errors.New("invalid cell position")
	// ErrUnsupportedCellKind is returned by consumers that meet a cell kind
	// they do not handle.
	ErrUnsupportedCellKind = errors.New("unsupported cell kind")
)

// CellError ties an error to the cell it was raised for.
type CellError struct {
	Position Position
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %s: %v", e.Position, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
