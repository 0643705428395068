package gridsheet

import "errors"

// Common errors used by the configuration layer and the command line
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrInputFileNotExist indicates the input sheet file could not be found.
	ErrInputFileNotExist = errors.New("input file does not exist")
	// ErrCheckFailed indicates a sheet failed to parse or holds formula
	// cells with lexer errors.
	ErrCheckFailed = errors.New("sheet check failed")
	// ErrCellNotFound indicates a requested cell position holds no cell.
	ErrCellNotFound = errors.New("cell not found")
)
