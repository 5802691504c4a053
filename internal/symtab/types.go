package symtab

import (
	"fmt"
	"strconv"
	"strings"

	"toycheck/internal/lexer"
)

// ---------------------------------------------------------------------------
// Declared types
// ---------------------------------------------------------------------------

// Type is the base type given to a variable at declaration.
type Type int

const (
	Invalid Type = iota
	Int
	Bool
	Float
	Char
	String
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Float:
		return "float"
	case Char:
		return "char"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// TypeFromToken maps a type-keyword token type (lexer.INT, …) to a Type.
func TypeFromToken(typ string) Type {
	switch typ {
	case lexer.INT:
		return Int
	case lexer.BOOL:
		return Bool
	case lexer.FLOAT:
		return Float
	case lexer.CHAR:
		return Char
	case lexer.STRING:
		return String
	}
	return Invalid
}

// LiteralType returns the type implied by a literal token, or Invalid if the
// token is not a literal.
func LiteralType(typ string) Type {
	switch typ {
	case lexer.NUMBER:
		return Int
	case lexer.TRUE, lexer.FALSE:
		return Bool
	case lexer.FLOAT_LITERAL:
		return Float
	case lexer.CHAR_LITERAL:
		return Char
	case lexer.STRING_LITERAL:
		return String
	}
	return Invalid
}

// ---------------------------------------------------------------------------
// Array shapes
// ---------------------------------------------------------------------------

// Shape lists the size of each array dimension. An empty shape is a scalar.
type Shape []int

func (s Shape) IsScalar() bool { return len(s) == 0 }

// Equal reports whether s and o have the same dimensions.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Sub drops the outermost dimension.
func (s Shape) Sub() Shape {
	if len(s) == 0 {
		return nil
	}
	return s[1:]
}

func (s Shape) String() string {
	var sb strings.Builder
	for _, d := range s {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	return sb.String()
}

// ParseShape decodes an ARRSHAPE lexeme such as "[3][4]". Dimensions must be
// positive.
func ParseShape(lexeme string) (Shape, error) {
	if !strings.HasPrefix(lexeme, "[") || !strings.HasSuffix(lexeme, "]") {
		return nil, fmt.Errorf("malformed array shape %q", lexeme)
	}
	parts := strings.Split(lexeme[1:len(lexeme)-1], "][")
	shape := make(Shape, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("malformed array dimension %q in %s", p, lexeme)
		}
		if n < 1 {
			return nil, fmt.Errorf("array dimension must be positive, got %d in %s", n, lexeme)
		}
		shape = append(shape, n)
	}
	return shape, nil
}
