package formula

import (
	"errors"
	"strconv"
)

// Sentinel errors
var (
	ErrUnbalancedParenthesis = errors.New("unbalanced parenthesis")
	ErrUnexpectedCharacter   = errors.New("unexpected character")
	ErrInvalidNumber         = errors.New("invalid number format")
	ErrNotReference          = errors.New("not a cell reference")
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF TokenType = iota
	NUMBER        // unsigned integer literal
	PLUS          // +
	MINUS         // -
	MULTIPLY      // *
	DIVIDE        // /
	OPENED_PARENS // (
	CLOSED_PARENS // )
	IDENTIFIER    // letter run, usually the column part of a cell reference
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case IDENTIFIER:
		return "IDENTIFIER"
	default:
		return "UNKNOWN"
	}
}

// Token represents a token
type Token struct {
	Type  TokenType
	Value string
	// Number holds the parsed value of NUMBER tokens.
	Number int64
	// Offset is the byte offset of the token inside the formula text.
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Value)
}

// String returns the string representation of Token
func (t Token) String() string {
	if t.Type == NUMBER {
		return t.Type.String() + ": " + strconv.FormatInt(t.Number, 10)
	}
	return t.Type.String() + ": " + t.Value
}
