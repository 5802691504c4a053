package diag

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Error kinds
// ---------------------------------------------------------------------------

// Kind classifies the first problem found in a source program.
type Kind int

const (
	None Kind = iota
	FileUnreadable
	IllegalCharacter
	UnexpectedStartToken
	UnexpectedToken
	UndeclaredVariable
	CombinedDeclareAssign
	TypeMismatch
	ArrayShapeMismatch
	ArrayTypeMismatch
	InvalidOperator
	InvalidOperand
	MissingSemicolon
	MissingLParen
	MissingRParen
	Redeclaration
)

var kindNames = map[Kind]string{
	None:                  "None",
	FileUnreadable:        "FileUnreadable",
	IllegalCharacter:      "IllegalCharacter",
	UnexpectedStartToken:  "UnexpectedStartToken",
	UnexpectedToken:       "UnexpectedToken",
	UndeclaredVariable:    "UndeclaredVariable",
	CombinedDeclareAssign: "CombinedDeclareAssign",
	TypeMismatch:          "TypeMismatch",
	ArrayShapeMismatch:    "ArrayShapeMismatch",
	ArrayTypeMismatch:     "ArrayTypeMismatch",
	InvalidOperator:       "InvalidOperator",
	InvalidOperand:        "InvalidOperand",
	MissingSemicolon:      "MissingSemicolon",
	MissingLParen:         "MissingLParen",
	MissingRParen:         "MissingRParen",
	Redeclaration:         "Redeclaration",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind name as printed by String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return None, false
}

// ExitCode returns the process exit status used by the CLI for this kind.
// A valid program exits 0; each kind maps to its own non-zero code.
func (k Kind) ExitCode() int {
	if k == None {
		return 0
	}
	return int(k) + 1
}

// ---------------------------------------------------------------------------
// Error
// ---------------------------------------------------------------------------

// Error is the single fatal diagnostic of a checker run.
type Error struct {
	Kind      Kind
	Message   string
	Statement int // 1-based statement ordinal, 0 when not inside a statement
	Line      int
	Column    int
}

func (e *Error) Error() string {
	switch {
	case e.Statement > 0 && e.Line > 0:
		return fmt.Sprintf("statement %d (line %d, col %d): %s", e.Statement, e.Line, e.Column, e.Message)
	case e.Statement > 0:
		return fmt.Sprintf("statement %d: %s", e.Statement, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Message)
	default:
		return e.Message
	}
}

// Errorf builds an Error at the given position.
func Errorf(kind Kind, line, col int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  col,
	}
}

// KindOf reports the kind of err, or None if err is nil or not an *Error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return None
}
