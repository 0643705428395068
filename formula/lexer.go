package formula

import (
	"fmt"
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// Options are options for the lexer
type Options struct {
	// StrictCharacters reports characters outside the formula alphabet as
	// ErrUnexpectedCharacter. When false they silently end the token stream.
	StrictCharacters bool
}

// Lexer scans the text of one formula (everything after the marker).
//
// It is a single pass state machine: the cursor only moves forward, and once
// the end of input or an error is reached every further call to Next returns
// EOF. A Lexer is not safe to share between formulas.
type Lexer struct {
	src     string
	start   int
	end     int
	cursor  int
	depth   int
	done    bool
	options Options
}

// NewLexer creates a lexer over the whole src.
func NewLexer(src string, options ...Options) *Lexer {
	return NewLexerRange(src, 0, len(src), options...)
}

// NewLexerRange creates a lexer over src[start:end] without copying it.
// Token offsets are relative to start. Out of range bounds are clamped.
func NewLexerRange(src string, start, end int, options ...Options) *Lexer {
	opts := Options{
		StrictCharacters: false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	end = min(max(end, 0), len(src))
	start = min(max(start, 0), end)

	return &Lexer{
		src:     src,
		start:   start,
		end:     end,
		cursor:  start,
		options: opts,
	}
}

// Depth returns the number of opened parentheses not closed yet.
func (l *Lexer) Depth() int {
	return l.depth
}

// Offset returns the cursor position relative to the start of the formula text.
func (l *Lexer) Offset() int {
	return l.cursor - l.start
}

// Next returns the next token. At the end of the stream it returns a token of
// type EOF. After an error the lexer is exhausted.
func (l *Lexer) Next() (Token, error) {
	for !l.done && l.cursor < l.end {
		r, size := utf8.DecodeRuneInString(l.src[l.cursor:l.end])

		switch r {
		case '+':
			return l.single(PLUS, size), nil
		case '-':
			return l.single(MINUS, size), nil
		case '*':
			return l.single(MULTIPLY, size), nil
		case '/':
			return l.single(DIVIDE, size), nil
		case '(':
			l.depth++
			return l.single(OPENED_PARENS, size), nil
		case ')':
			if l.depth == 0 {
				l.done = true
				return Token{}, fmt.Errorf("%w: ')' at offset %d", ErrUnbalancedParenthesis, l.Offset())
			}
			l.depth--
			return l.single(CLOSED_PARENS, size), nil
		}

		switch {
		case unicode.IsSpace(r):
			l.skipWhitespace()
		case isDigit(r):
			return l.readNumber()
		case unicode.IsLetter(r):
			return l.readIdentifier(), nil
		default:
			l.done = true
			if l.options.StrictCharacters {
				return Token{}, fmt.Errorf("%w: %q at offset %d", ErrUnexpectedCharacter, r, l.Offset())
			}
		}
	}

	l.done = true

	return Token{Type: EOF, Offset: l.Offset()}, nil
}

// Tokens returns an iterator of tokens. The EOF token is not yielded; an
// error is yielded once and ends the sequence.
func (l *Lexer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		for {
			token, err := l.Next()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				return
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// All drains the lexer. On error it returns the tokens scanned before the
// failure together with the error.
func (l *Lexer) All() ([]Token, error) {
	tokens := make([]Token, 0, 16)

	for token, err := range l.Tokens() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Lex is a shortcut for NewLexer(src, options...).All().
func Lex(src string, options ...Options) ([]Token, error) {
	return NewLexer(src, options...).All()
}

func (l *Lexer) single(tokenType TokenType, size int) Token {
	token := Token{
		Type:   tokenType,
		Value:  l.src[l.cursor : l.cursor+size],
		Offset: l.Offset(),
	}
	l.cursor += size

	return token
}

func (l *Lexer) skipWhitespace() {
	for l.cursor < l.end {
		r, size := utf8.DecodeRuneInString(l.src[l.cursor:l.end])
		if !unicode.IsSpace(r) {
			return
		}
		l.cursor += size
	}
}

// readNumber reads an unsigned decimal digit run
func (l *Lexer) readNumber() (Token, error) {
	begin := l.cursor
	for l.cursor < l.end && isDigit(rune(l.src[l.cursor])) {
		l.cursor++
	}

	text := l.src[begin:l.cursor]
	offset := begin - l.start

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.done = true
		return Token{}, fmt.Errorf("%w: %s at offset %d", ErrInvalidNumber, text, offset)
	}

	return Token{
		Type:   NUMBER,
		Value:  text,
		Number: value,
		Offset: offset,
	}, nil
}

// readIdentifier reads a letter run. Digits end the run, so "A1" is an
// identifier followed by a number.
func (l *Lexer) readIdentifier() Token {
	begin := l.cursor
	for l.cursor < l.end {
		r, size := utf8.DecodeRuneInString(l.src[l.cursor:l.end])
		if !unicode.IsLetter(r) {
			break
		}
		l.cursor += size
	}

	return Token{
		Type:   IDENTIFIER,
		Value:  l.src[begin:l.cursor],
		Offset: begin - l.start,
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
