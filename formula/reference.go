package formula

import (
	"fmt"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
)

// maxColumnLetters bounds column labels so the index stays well inside int.
const maxColumnLetters = 7

// Reference is an A1 shaped cell reference found in a formula.
type Reference struct {
	Column int    // zero based
	Row    int    // zero based
	Text   string // source text, e.g. "B12"
	Offset int
}

var (
	// columnPart matches an identifier made of ASCII letters only.
	columnPart = primitive("column", func(token Token) bool {
		if token.Type != IDENTIFIER || len(token.Value) > maxColumnLetters {
			return false
		}
		_, ok := ColumnIndex(token.Value)
		return ok
	})
	// rowPart matches a 1-based row number.
	rowPart = primitive("row", func(token Token) bool {
		return token.Type == NUMBER && token.Number >= 1
	})

	referenceParts = pc.Seq(columnPart, rowPart)

	cellReference = pc.Trace("cell-reference", func(pctx *pc.ParseContext[Token], tokens []pc.Token[Token]) (int, []pc.Token[Token], error) {
		consumed, _, err := referenceParts(pctx, tokens)
		if err != nil {
			return 0, nil, err
		}
		// whitespace between the parts makes two separate operands
		if consumed != 2 || tokens[0].Val.End() != tokens[1].Val.Offset {
			return 0, nil, pc.ErrNotMatch
		}
		return consumed, tokens[:consumed], nil
	})
)

// References returns the A1 references of a realized token sequence in
// source order. Identifiers that are not followed directly by a row number
// are not references and are skipped.
func References(tokens []Token) []Reference {
	pctx := pc.NewParseContext[Token]()
	pTokens := toParserTokens(tokens)

	var results []Reference

	for i := 0; i < len(pTokens); {
		consumed, _, err := cellReference(pctx, pTokens[i:])
		if err != nil || consumed == 0 {
			i++
			continue
		}

		match := pTokens[i : i+consumed]
		column, _ := ColumnIndex(match[0].Val.Value)
		results = append(results, Reference{
			Column: column,
			Row:    int(match[1].Val.Number) - 1,
			Text:   match[0].Raw + match[1].Raw,
			Offset: match[0].Val.Offset,
		})
		i += consumed
	}

	return results
}

// ParseReference parses a whole string such as "AB12" as one reference.
func ParseReference(text string) (Reference, error) {
	tokens, err := Lex(text, Options{StrictCharacters: true})
	if err != nil {
		return Reference{}, err
	}

	refs := References(tokens)
	if len(refs) != 1 || len(tokens) != 2 || refs[0].Offset != 0 || tokens[1].End() != len(text) {
		return Reference{}, fmt.Errorf("%w: %q", ErrNotReference, text)
	}

	return refs[0], nil
}

// ColumnLabel converts a zero based column index to its letter label:
// 0 -> A, 25 -> Z, 26 -> AA.
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}

	var buf [16]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}

	return string(buf[i:])
}

// ColumnIndex converts a letter label (case insensitive) to a zero based
// column index. It reports false for anything but ASCII letters.
func ColumnIndex(label string) (int, bool) {
	if label == "" || len(label) > maxColumnLetters {
		return 0, false
	}

	n := 0
	for _, r := range strings.ToUpper(label) {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		n = n*26 + int(r-'A') + 1
	}

	return n - 1, true
}

func primitive(typeName string, accept func(Token) bool) pc.Parser[Token] {
	return func(pctx *pc.ParseContext[Token], tokens []pc.Token[Token]) (int, []pc.Token[Token], error) {
		if len(tokens) > 0 && accept(tokens[0].Val) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func toParserTokens(tokens []Token) []pc.Token[Token] {
	results := make([]pc.Token[Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  1,
				Col:   token.Offset + 1,
				Index: token.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}
