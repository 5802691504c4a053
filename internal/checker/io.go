package checker

import (
	"toycheck/internal/diag"
	"toycheck/internal/lexer"
)

// parsePrint parses: print '(' (IDENT | STRING_LITERAL) ')' ';'
func (c *Checker) parsePrint(kw lexer.Token) error {
	if _, err := c.expect(lexer.LPAREN, diag.MissingLParen, "'(' after keyword 'print'"); err != nil {
		return err
	}

	arg, err := c.next()
	if err != nil {
		return err
	}
	switch arg.Type {
	case lexer.STRING_LITERAL:
	case lexer.ID:
		if c.opts.Policy.PrintRequiresDeclaration {
			if _, ok := c.table.Lookup(arg.Value); !ok {
				return c.fail(diag.UndeclaredVariable, arg, "variable %s is not declared", arg.Value)
			}
		}
	default:
		return c.fail(diag.UnexpectedToken, arg, "%s expects an identifier or a string literal, got %s", kw.Value, arg)
	}

	if _, err := c.expect(lexer.RPAREN, diag.MissingRParen, "')' to end print statement"); err != nil {
		return err
	}
	return c.expectSemicolon("statements")
}

// parseRead parses: read '(' IDENT ')' ';'
func (c *Checker) parseRead(kw lexer.Token) error {
	if _, err := c.expect(lexer.LPAREN, diag.MissingLParen, "'(' after keyword 'read'"); err != nil {
		return err
	}

	arg, err := c.next()
	if err != nil {
		return err
	}
	if arg.Type != lexer.ID {
		return c.fail(diag.UnexpectedToken, arg, "%s expects an identifier, got %s", kw.Value, arg)
	}
	if _, ok := c.table.Lookup(arg.Value); !ok {
		return c.fail(diag.UndeclaredVariable, arg, "variable %s is not declared", arg.Value)
	}

	if _, err := c.expect(lexer.RPAREN, diag.MissingRParen, "')' to end read statement"); err != nil {
		return err
	}
	return c.expectSemicolon("statements")
}
