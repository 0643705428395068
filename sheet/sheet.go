package sheet

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Sheet is an addressable table of classified cells. It is built once by
// Parse and never modified afterwards.
type Sheet struct {
	cells  map[Position]Cell
	width  int
	height int
}

// Parse builds a sheet from delimited text.
//
// Lines end at "\n" or "\r\n"; a final line terminator does not start an
// extra row. Every field of every line becomes a cell, including empty ones,
// and rows shorter than others are not padded. The first field that fails
// classification fails the whole parse with a *CellError.
func Parse(input string, options ...Options) (*Sheet, error) {
	opts := resolveOptions(options)
	cells := make(map[Position]Cell)

	row := 0
	for line := range strings.Lines(input) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		for column, field := range strings.Split(line, opts.Delimiter) {
			pos := Position{Column: column, Row: row}

			cell, err := ClassifyCell(strings.TrimSpace(field), opts)
			if err != nil {
				return nil, &CellError{Position: pos, Err: err}
			}
			cells[pos] = cell
		}
		row++
	}

	width, height, err := dimensions(cells)
	if err != nil {
		return nil, err
	}

	return &Sheet{
		cells:  cells,
		width:  width,
		height: height,
	}, nil
}

// dimensions reduces the keys to one plus the largest column and row index.
func dimensions(cells map[Position]Cell) (width, height int, err error) {
	if len(cells) == 0 {
		return 0, 0, ErrEmptyInput
	}

	for pos := range cells {
		width = max(width, pos.Column+1)
		height = max(height, pos.Row+1)
	}

	return width, height, nil
}

// Width is one plus the largest column index holding a cell.
func (s *Sheet) Width() int {
	return s.width
}

// Height is one plus the largest row index holding a cell.
func (s *Sheet) Height() int {
	return s.height
}

// Len returns the number of cells.
func (s *Sheet) Len() int {
	return len(s.cells)
}

// Cell looks up the cell at pos.
func (s *Sheet) Cell(pos Position) (Cell, bool) {
	cell, ok := s.cells[pos]
	return cell, ok
}

// Positions returns all occupied positions in row-major order.
func (s *Sheet) Positions() []Position {
	return slices.SortedFunc(maps.Keys(s.cells), Position.Compare)
}

// All iterates over the cells in row-major order.
func (s *Sheet) All() iter.Seq2[Position, Cell] {
	return func(yield func(Position, Cell) bool) {
		for _, pos := range s.Positions() {
			if !yield(pos, s.cells[pos]) {
				return
			}
		}
	}
}

// FormulaErrors returns the lexer errors kept in formula cells, in row-major
// order.
func (s *Sheet) FormulaErrors() []*CellError {
	var errs []*CellError

	for pos, cell := range s.All() {
		if cell.Kind == FormulaCell && cell.Formula.Err != nil {
			errs = append(errs, &CellError{Position: pos, Err: cell.Formula.Err})
		}
	}

	return errs
}
