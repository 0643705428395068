package sheet

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/gridsheet/formula"
)

// CellKind selects the active variant of a Cell
type CellKind int

const (
	TextCell CellKind = iota
	NumberCell
	FormulaCell
)

// String returns the string representation of CellKind
func (k CellKind) String() string {
	switch k {
	case TextCell:
		return "text"
	case NumberCell:
		return "number"
	case FormulaCell:
		return "formula"
	default:
		return "unknown"
	}
}

// Cell is a classified field. Only the member matching Kind is meaningful.
type Cell struct {
	Kind    CellKind
	Text    string
	Number  float64
	Formula Formula
}

// Formula is the content of a formula cell: the text after the marker and
// either its complete token sequence or the first lexer error.
type Formula struct {
	Source string
	Tokens []formula.Token
	Err    error
}

// OK reports whether the formula was tokenized without error.
func (f Formula) OK() bool {
	return f.Err == nil
}

// References lists the A1 references of a tokenized formula.
func (f Formula) References() []formula.Reference {
	if f.Err != nil {
		return nil
	}
	return formula.References(f.Tokens)
}

// Text creates a text cell.
func Text(s string) Cell {
	return Cell{Kind: TextCell, Text: s}
}

// Number creates a number cell.
func Number(v float64) Cell {
	return Cell{Kind: NumberCell, Number: v}
}

// String returns the display value of the cell. Formula cells show their
// source prefixed with "=".
func (c Cell) String() string {
	switch c.Kind {
	case TextCell:
		return c.Text
	case NumberCell:
		return FormatNumber(c.Number)
	case FormulaCell:
		return "=" + c.Formula.Source
	default:
		return "#" + c.Kind.String()
	}
}

// FormatNumber renders v as the shortest plain decimal that parses back to
// the same float64. NaN and infinities use strconv spelling.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}
