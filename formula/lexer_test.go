package formula

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, token := range tokens {
		types = append(types, token.Type)
	}
	return types
}

func TestLexArithmetic(t *testing.T) {
	tokens, err := Lex("1 + 2 * 3")
	assert.NoError(t, err)

	expected := []Token{
		{Type: NUMBER, Value: "1", Number: 1, Offset: 0},
		{Type: PLUS, Value: "+", Offset: 2},
		{Type: NUMBER, Value: "2", Number: 2, Offset: 4},
		{Type: MULTIPLY, Value: "*", Offset: 6},
		{Type: NUMBER, Value: "3", Number: 3, Offset: 8},
	}
	assert.Equal(t, expected, tokens)
}

func TestLexIdentifiers(t *testing.T) {
	tokens, err := Lex("a + b * c")
	assert.NoError(t, err)

	expected := []Token{
		{Type: IDENTIFIER, Value: "a", Offset: 0},
		{Type: PLUS, Value: "+", Offset: 2},
		{Type: IDENTIFIER, Value: "b", Offset: 4},
		{Type: MULTIPLY, Value: "*", Offset: 6},
		{Type: IDENTIFIER, Value: "c", Offset: 8},
	}
	assert.Equal(t, expected, tokens)
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "empty",
			input:    "",
			expected: []TokenType{},
		},
		{
			name:     "whitespace only",
			input:    " \t ",
			expected: []TokenType{},
		},
		{
			name:     "all operators",
			input:    "+-*/",
			expected: []TokenType{PLUS, MINUS, MULTIPLY, DIVIDE},
		},
		{
			name:     "parentheses",
			input:    "(1+2)*3",
			expected: []TokenType{OPENED_PARENS, NUMBER, PLUS, NUMBER, CLOSED_PARENS, MULTIPLY, NUMBER},
		},
		{
			name:     "nested parentheses",
			input:    "((a))",
			expected: []TokenType{OPENED_PARENS, OPENED_PARENS, IDENTIFIER, CLOSED_PARENS, CLOSED_PARENS},
		},
		{
			name:     "cell reference splits into identifier and number",
			input:    "A1",
			expected: []TokenType{IDENTIFIER, NUMBER},
		},
		{
			name:     "minus is never part of a number",
			input:    "-12",
			expected: []TokenType{MINUS, NUMBER},
		},
		{
			name:     "decimal point ends the stream",
			input:    "1.5",
			expected: []TokenType{NUMBER},
		},
		{
			name:     "unicode letters",
			input:    "größe*2",
			expected: []TokenType{IDENTIFIER, MULTIPLY, NUMBER},
		},
		{
			name:     "unclosed parenthesis is accepted",
			input:    "(1+2",
			expected: []TokenType{OPENED_PARENS, NUMBER, PLUS, NUMBER},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tokenTypes(tokens))
		})
	}
}

func TestIdentifierValueIsVerbatim(t *testing.T) {
	tokens, err := Lex("Total+sum")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, "Total", tokens[0].Value)
	assert.Equal(t, "sum", tokens[2].Value)
}

func TestUnbalancedParenthesis(t *testing.T) {
	t.Run("single closing parenthesis", func(t *testing.T) {
		tokens, err := Lex(")")
		assert.True(t, errors.Is(err, ErrUnbalancedParenthesis))
		assert.Equal(t, 0, len(tokens))
		assert.Contains(t, err.Error(), "offset 0")
	})

	t.Run("no tokens after the failure", func(t *testing.T) {
		lexer := NewLexer("1) + 2")

		var types []TokenType
		var errs []error
		for token, err := range lexer.Tokens() {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			types = append(types, token.Type)
		}

		assert.Equal(t, []TokenType{NUMBER}, types)
		assert.Equal(t, 1, len(errs))
		assert.True(t, errors.Is(errs[0], ErrUnbalancedParenthesis))

		// exhausted: the remaining "+ 2" is never produced
		token, err := lexer.Next()
		assert.NoError(t, err)
		assert.Equal(t, EOF, token.Type)
	})

	t.Run("balanced then extra", func(t *testing.T) {
		_, err := Lex("(1))")
		assert.True(t, errors.Is(err, ErrUnbalancedParenthesis))
		assert.Contains(t, err.Error(), "offset 3")
	})
}

func TestDepth(t *testing.T) {
	lexer := NewLexer("((1)")
	_, err := lexer.All()
	assert.NoError(t, err)
	assert.Equal(t, 1, lexer.Depth())
}

// Unrecognized characters end the stream without an error unless
// StrictCharacters is set. This is a known gap of the default mode.
func TestUnrecognizedCharacter(t *testing.T) {
	t.Run("silently ends the stream", func(t *testing.T) {
		tokens, err := Lex("1 + $ 2")
		assert.NoError(t, err)
		assert.Equal(t, []TokenType{NUMBER, PLUS}, tokenTypes(tokens))
	})

	t.Run("strict mode reports it", func(t *testing.T) {
		tokens, err := Lex("1 + $ 2", Options{StrictCharacters: true})
		assert.True(t, errors.Is(err, ErrUnexpectedCharacter))
		assert.Contains(t, err.Error(), "offset 4")
		assert.Equal(t, []TokenType{NUMBER, PLUS}, tokenTypes(tokens))
	})
}

func TestNumberOverflow(t *testing.T) {
	_, err := Lex("99999999999999999999")
	assert.True(t, errors.Is(err, ErrInvalidNumber))
}

func TestLexerRange(t *testing.T) {
	src := "=SUM+(B2*10)"
	lexer := NewLexerRange(src, 1, len(src))

	tokens, err := lexer.All()
	assert.NoError(t, err)
	assert.Equal(t, []TokenType{IDENTIFIER, PLUS, OPENED_PARENS, IDENTIFIER, NUMBER, MULTIPLY, NUMBER, CLOSED_PARENS}, tokenTypes(tokens))
	assert.Equal(t, 0, tokens[0].Offset)
	assert.Equal(t, "SUM", tokens[0].Value)
	assert.Equal(t, int64(10), tokens[6].Number)
}

func TestLexerIsNotRestartable(t *testing.T) {
	lexer := NewLexer("1+2")

	first, err := lexer.All()
	assert.NoError(t, err)
	assert.Equal(t, 3, len(first))

	second, err := lexer.All()
	assert.NoError(t, err)
	assert.Equal(t, 0, len(second))
}

func TestIteratorEarlyTermination(t *testing.T) {
	lexer := NewLexer("1 + 2 + 3 + 4")

	count := 0
	for _, err := range lexer.Tokens() {
		assert.NoError(t, err)
		count++
		if count >= 3 {
			break
		}
	}
	assert.Equal(t, 3, count)

	// the cursor stays where the consumer stopped
	token, err := lexer.Next()
	assert.NoError(t, err)
	assert.Equal(t, PLUS, token.Type)
	assert.Equal(t, 6, token.Offset)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "NUMBER: 42", Token{Type: NUMBER, Value: "42", Number: 42}.String())
	assert.Equal(t, "IDENTIFIER: A", Token{Type: IDENTIFIER, Value: "A"}.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
}
