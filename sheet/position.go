package sheet

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/shibukawa/gridsheet/formula"
)

// Position is a zero based (column, row) coordinate. It is comparable and
// used as the map key of a Sheet.
type Position struct {
	Column int
	Row    int
}

// String returns the A1 notation of the position.
func (p Position) String() string {
	return formula.ColumnLabel(p.Column) + strconv.Itoa(p.Row+1)
}

// Compare orders positions row by row, then by column.
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Row, other.Row); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

// ParsePosition parses an A1 address such as "B3" (case insensitive).
func ParsePosition(address string) (Position, error) {
	ref, err := formula.ParseReference(address)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, address)
	}

	return Position{Column: ref.Column, Row: ref.Row}, nil
}
