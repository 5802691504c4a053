// Package checker parses and type checks a toy-language program in a single
// pass. Statements are validated as they are read; nothing is kept of a
// statement once it has been accepted except its effect on the symbol table.
package checker

import (
	"errors"
	"fmt"

	"toycheck/internal/diag"
	"toycheck/internal/lexer"
	"toycheck/internal/symtab"
)

// Policy holds the choices the language leaves open.
type Policy struct {
	// PrintRequiresDeclaration rejects print(x) when x was never declared.
	PrintRequiresDeclaration bool
	// RedeclareIsError rejects a second declaration of the same identifier
	// instead of silently replacing its type and shape.
	RedeclareIsError bool
}

// Options configures one checker session.
type Options struct {
	Lexer  lexer.Options
	Policy Policy
	// Tracef, when set, receives a line for every dispatched statement and
	// every consumed token.
	Tracef func(format string, args ...any)
}

// State is the program-level state of a session.
type State int

const (
	ExpectStatementStart State = iota
	Done
	Rejected
)

func (s State) String() string {
	switch s {
	case ExpectStatementStart:
		return "ExpectStatementStart"
	case Done:
		return "Done"
	case Rejected:
		return "Rejected"
	default:
		return "unknown"
	}
}

// Checker holds the state of a single check of one source text. Each
// Checker owns its own symbol table.
type Checker struct {
	stream *lexer.Stream
	table  *symtab.Table
	opts   Options
	stmt   int
	state  State
	err    error
}

// New prepares a session over src. Nothing is lexed until Run.
func New(src string, opts Options) *Checker {
	return &Checker{
		stream: lexer.NewStream(lexer.New(src, opts.Lexer)),
		table:  symtab.New(),
		opts:   opts,
	}
}

// Check runs a fresh session over src and returns the first error, or nil
// if the program is valid.
func Check(src string, opts Options) error {
	return New(src, opts).Run()
}

// Symbols exposes the session's table.
func (c *Checker) Symbols() *symtab.Table { return c.table }

// Statements reports how many statements were started.
func (c *Checker) Statements() int { return c.stmt }

// State reports where the session stopped.
func (c *Checker) State() State { return c.state }

// Run validates the whole program. Once the session reaches Done or
// Rejected, further calls return the same result.
func (c *Checker) Run() error {
	for c.state == ExpectStatementStart {
		c.step()
	}
	return c.err
}

// step dispatches one statement on its leading token.
func (c *Checker) step() {
	c.stmt++
	tok, err := c.stream.Peek(0)
	if err != nil {
		c.reject(err)
		return
	}
	if tok.Type == lexer.EOF {
		c.stmt--
		c.state = Done
		return
	}

	lead, err := c.next()
	if err != nil {
		c.reject(err)
		return
	}
	c.tracef("statement %d: %s", c.stmt, lead.Type)

	switch {
	case lexer.IsTypeKeyword(lead.Type):
		err = c.parseDeclaration(lead)
	case lead.Type == lexer.ID:
		err = c.parseAssignment(lead)
	case lead.Type == lexer.PRINT:
		err = c.parsePrint(lead)
	case lead.Type == lexer.READ:
		err = c.parseRead(lead)
	default:
		err = c.fail(diag.UnexpectedStartToken, lead, "unexpected start token: %s", lead)
	}
	if err != nil {
		c.reject(err)
	}
}

func (c *Checker) reject(err error) {
	c.state = Rejected
	c.err = c.locate(err)
}

// ---------------------------------------------------------------------------
// Token helpers
// ---------------------------------------------------------------------------

// next consumes one token.
func (c *Checker) next() (lexer.Token, error) {
	tok, err := c.stream.Advance()
	if err != nil {
		return tok, err
	}
	c.tracef("  token %s at %d:%d", tok, tok.Line, tok.Column)
	return tok, nil
}

// peek inspects the next token without consuming it.
func (c *Checker) peek() (lexer.Token, error) {
	return c.stream.Peek(0)
}

// expect consumes one token and fails with kind unless it has type typ.
func (c *Checker) expect(typ string, kind diag.Kind, what string) (lexer.Token, error) {
	tok, err := c.next()
	if err != nil {
		return tok, err
	}
	if tok.Type != typ {
		return tok, c.fail(kind, tok, "expected %s, got %s", what, tok)
	}
	return tok, nil
}

// expectSemicolon closes a statement.
func (c *Checker) expectSemicolon(what string) error {
	tok, err := c.next()
	if err != nil {
		return err
	}
	if tok.Type != lexer.SEMICOLON {
		return c.fail(diag.MissingSemicolon, tok, "%s need to end with ';', got %s", what, tok)
	}
	return nil
}

// fail builds the diagnostic for the current statement at tok.
func (c *Checker) fail(kind diag.Kind, tok lexer.Token, format string, args ...any) error {
	return &diag.Error{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Statement: c.stmt,
		Line:      tok.Line,
		Column:    tok.Column,
	}
}

// locate stamps lexer errors with the statement they interrupted.
func (c *Checker) locate(err error) error {
	var de *diag.Error
	if errors.As(err, &de) && de.Statement == 0 {
		cp := *de
		cp.Statement = c.stmt
		return &cp
	}
	return err
}

func (c *Checker) tracef(format string, args ...any) {
	if c.opts.Tracef != nil {
		c.opts.Tracef(format, args...)
	}
}
