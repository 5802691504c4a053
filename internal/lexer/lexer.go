package lexer

import (
	"fmt"

	"toycheck/internal/diag"
)

const (
	// Special
	EOF = "EOF"

	// Type keywords
	INT    = "INT"
	BOOL   = "BOOL"
	FLOAT  = "FLOAT"
	CHAR   = "CHAR"
	STRING = "STRING"

	// Statement keywords
	PRINT = "PRINT"
	READ  = "READ"

	// Literals
	ID             = "ID"             // identifiers: x, total, _tmp1
	NUMBER         = "NUMBER"         // integer literals: 0, 42
	FLOAT_LITERAL  = "FLOAT_LITERAL"  // 3.14, 0.5
	CHAR_LITERAL   = "CHAR_LITERAL"   // 'a', '\n'
	STRING_LITERAL = "STRING_LITERAL" // "hello"
	TRUE           = "TRUE"
	FALSE          = "FALSE"

	// Delimiters
	ASSIGN    = "ASSIGN"    // =
	SEMICOLON = "SEMICOLON" // ;
	LPAREN    = "LPAREN"    // (
	RPAREN    = "RPAREN"    // )
	LBRACE    = "LBRACE"    // {
	RBRACE    = "RBRACE"    // }
	COMMA     = "COMMA"     // ,

	// Operators
	BOOLOP   = "BOOLOP"   // && ||
	OPERATOR = "OPERATOR" // + - * / % < > <= >= == != ! & |

	// Array shape marker: [3][4]
	ARRSHAPE = "ARRSHAPE"
)

// keywords maps reserved words to their token types. Identifiers are scanned
// as whole words first and then looked up here, so "integer" stays an ID.
var keywords = map[string]string{
	"int":    INT,
	"bool":   BOOL,
	"float":  FLOAT,
	"char":   CHAR,
	"string": STRING,
	"print":  PRINT,
	"read":   READ,
	"true":   TRUE,
	"false":  FALSE,
}

// IsTypeKeyword reports whether typ names one of the declarable types.
func IsTypeKeyword(typ string) bool {
	switch typ {
	case INT, BOOL, FLOAT, CHAR, STRING:
		return true
	}
	return false
}

// Token represents a single lexical token produced by the lexer.
type Token struct {
	Type   string
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

// Options tunes the lexer.
type Options struct {
	// SkipUnknown drops characters no rule recognises instead of failing.
	SkipUnknown bool
}

// Lexer converts source text into tokens one at a time. It is single pass:
// once a token has been returned it cannot be produced again.
type Lexer struct {
	input string
	opts  Options
	pos   int
	line  int
	col   int
}

// New returns a lexer positioned at the start of src.
func New(src string, opts Options) *Lexer {
	return &Lexer{input: src, opts: opts, line: 1, col: 1}
}

/**
* Lexes the whole input eagerly. Stops at the first lexical error.
* @param input The source code to lex.
* @return The tokens up to and including EOF, or the first error.
 */
func Lex(input string, opts Options) ([]Token, error) {
	lx := New(input, opts)
	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// Next scans and returns the next token. After the input is exhausted it
// keeps returning EOF.
func (l *Lexer) Next() (Token, error) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		if isWhitespace(ch) {
			l.skip(1)
			continue
		}

		// Single-line comment: // …
		if ch == '/' && l.peekByte(1) == '/' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.skip(1)
			}
			continue
		}

		switch {
		case ch == '"':
			return l.lexQuoted('"', STRING_LITERAL)
		case ch == '\'':
			return l.lexQuoted('\'', CHAR_LITERAL)
		case isDigit(ch):
			return l.lexNumber(), nil
		case isIdentStart(ch):
			return l.lexIdentifier(), nil
		case ch == '[':
			if tok, ok := l.lexShape(); ok {
				return tok, nil
			}
		default:
			if tok, width := l.lexOperatorOrDelimiter(); width > 0 {
				l.skip(width)
				return tok, nil
			}
		}

		// Unknown characters
		if l.opts.SkipUnknown {
			l.skip(1)
			continue
		}
		return Token{}, diag.Errorf(diag.IllegalCharacter, l.line, l.col, "unexpected character %q", string(ch))
	}
	return Token{EOF, "", l.line, l.col}, nil
}

// skip advances n bytes, keeping line and column current.
func (l *Lexer) skip(n int) {
	for ; n > 0 && l.pos < len(l.input); n-- {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else if l.input[l.pos] != '\r' {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) token(typ string, width int) Token {
	tok := Token{typ, l.input[l.pos : l.pos+width], l.line, l.col}
	l.skip(width)
	return tok
}

// lexQuoted scans a string or char literal. The lexeme keeps its quotes.
// A char literal must hold exactly one character or escape.
func (l *Lexer) lexQuoted(quote byte, typ string) (Token, error) {
	i := l.pos + 1
	chars := 0
	for i < len(l.input) {
		ch := l.input[i]
		if ch == '\n' || ch == '\r' {
			break
		}
		if ch == '\\' {
			if i+1 >= len(l.input) || !isValidEscape(l.input[i+1]) {
				return Token{}, diag.Errorf(diag.IllegalCharacter, l.line, l.col+(i-l.pos), "invalid escape sequence in %s", describe(typ))
			}
			i += 2
			chars++
			continue
		}
		if ch == quote {
			if typ == CHAR_LITERAL && chars != 1 {
				return Token{}, diag.Errorf(diag.IllegalCharacter, l.line, l.col, "char literal must hold exactly one character, got %s", l.input[l.pos:i+1])
			}
			return l.token(typ, i+1-l.pos), nil
		}
		i++
		chars++
	}
	return Token{}, diag.Errorf(diag.IllegalCharacter, l.line, l.col, "unterminated %s", describe(typ))
}

// lexNumber scans an integer or a float literal. The dot is only taken as
// part of a float when a digit follows it.
func (l *Lexer) lexNumber() Token {
	i := l.pos
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	if i+1 < len(l.input) && l.input[i] == '.' && isDigit(l.input[i+1]) {
		i++
		for i < len(l.input) && isDigit(l.input[i]) {
			i++
		}
		return l.token(FLOAT_LITERAL, i-l.pos)
	}
	return l.token(NUMBER, i-l.pos)
}

func (l *Lexer) lexIdentifier() Token {
	i := l.pos
	for i < len(l.input) && isIdentPart(l.input[i]) {
		i++
	}
	word := l.input[l.pos:i]
	typ := ID
	if kw, ok := keywords[word]; ok {
		typ = kw
	}
	return l.token(typ, i-l.pos)
}

// lexShape scans one or more adjacent "[digits]" groups as a single ARRSHAPE
// token. It reports false if the text at the cursor is not a complete group.
func (l *Lexer) lexShape() (Token, bool) {
	i := l.pos
	for i < len(l.input) && l.input[i] == '[' {
		j := i + 1
		for j < len(l.input) && isDigit(l.input[j]) {
			j++
		}
		if j == i+1 || j >= len(l.input) || l.input[j] != ']' {
			break
		}
		i = j + 1
	}
	if i == l.pos {
		return Token{}, false
	}
	return l.token(ARRSHAPE, i-l.pos), true
}

// lexOperatorOrDelimiter tries to match a 1- or 2-character operator or
// delimiter at the cursor. Returns the token and the number of characters
// consumed (0 if nothing matched). The cursor is not moved.
func (l *Lexer) lexOperatorOrDelimiter() (Token, int) {
	ch := l.input[l.pos]
	next := l.peekByte(1)
	mk := func(typ string, width int) (Token, int) {
		return Token{typ, l.input[l.pos : l.pos+width], l.line, l.col}, width
	}

	// Two-character tokens
	switch ch {
	case '=':
		if next == '=' {
			return mk(OPERATOR, 2)
		}
		return mk(ASSIGN, 1)
	case '!', '<', '>':
		if next == '=' {
			return mk(OPERATOR, 2)
		}
		return mk(OPERATOR, 1)
	case '&':
		if next == '&' {
			return mk(BOOLOP, 2)
		}
		return mk(OPERATOR, 1)
	case '|':
		if next == '|' {
			return mk(BOOLOP, 2)
		}
		return mk(OPERATOR, 1)
	}

	// Single-character tokens
	switch ch {
	case ';':
		return mk(SEMICOLON, 1)
	case '(':
		return mk(LPAREN, 1)
	case ')':
		return mk(RPAREN, 1)
	case '{':
		return mk(LBRACE, 1)
	case '}':
		return mk(RBRACE, 1)
	case ',':
		return mk(COMMA, 1)
	case '+', '-', '*', '/', '%':
		return mk(OPERATOR, 1)
	}

	return Token{}, 0
}

func describe(typ string) string {
	if typ == CHAR_LITERAL {
		return "char literal"
	}
	return "string literal"
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isValidEscape(ch byte) bool {
	switch ch {
	case 'n', 'r', 't', '\\', '\'', '"', '0':
		return true
	default:
		return false
	}
}
