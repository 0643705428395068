package sheet

import (
	"strconv"
	"strings"

	"github.com/shibukawa/gridsheet/formula"
)

// Options control how input is split and classified
type Options struct {
	// Delimiter separates fields within a line.
	Delimiter string
	// FormulaMarker is the prefix that turns a field into a formula.
	FormulaMarker string
	// Lexer is passed to the formula lexer of every formula cell.
	Lexer formula.Options
}

// DefaultOptions returns the options of the plain ";" separated format.
func DefaultOptions() Options {
	return Options{
		Delimiter:     ";",
		FormulaMarker: "=",
		Lexer: formula.Options{
			StrictCharacters: false,
		},
	}
}

func resolveOptions(options []Options) Options {
	opts := DefaultOptions()
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.Delimiter == "" {
		opts.Delimiter = ";"
	}
	if opts.FormulaMarker == "" {
		opts.FormulaMarker = "="
	}
	return opts
}

// ClassifyCell turns one trimmed field into a cell.
//
// A field that parses completely as a float is a number, a field starting
// with the formula marker is a formula, anything else is text. Lexer errors
// are kept inside the formula cell; the only failure is ErrEmptyFormula.
func ClassifyCell(field string, options ...Options) (Cell, error) {
	opts := resolveOptions(options)

	// out of range and malformed numbers fall through to text
	if v, err := strconv.ParseFloat(field, 64); err == nil {
		return Number(v), nil
	}

	if !strings.HasPrefix(field, opts.FormulaMarker) {
		return Text(field), nil
	}

	start := len(opts.FormulaMarker)
	if strings.TrimSpace(field[start:]) == "" {
		return Cell{}, ErrEmptyFormula
	}

	lexer := formula.NewLexerRange(field, start, len(field), opts.Lexer)
	tokens, err := lexer.All()

	cell := Cell{
		Kind: FormulaCell,
		Formula: Formula{
			Source: field[start:],
		},
	}
	if err != nil {
		cell.Formula.Err = err
	} else {
		cell.Formula.Tokens = tokens
	}

	return cell, nil
}
