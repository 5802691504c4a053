package checker

import (
	"toycheck/internal/diag"
	"toycheck/internal/lexer"
	"toycheck/internal/symtab"
)

// parseDeclaration parses: TYPE IDENT ARRSHAPE? (',' IDENT)* ';'
// The type keyword has already been consumed. Each identifier is entered
// into the table as soon as it is read, before the token after it is looked
// at.
func (c *Checker) parseDeclaration(typeTok lexer.Token) error {
	typ := symtab.TypeFromToken(typeTok.Type)

	name, err := c.expect(lexer.ID, diag.UnexpectedToken, "an identifier after '"+typeTok.Value+"'")
	if err != nil {
		return err
	}

	// Optional array shape on the first identifier.
	var shape symtab.Shape
	after, err := c.peek()
	if err != nil {
		return err
	}
	if after.Type == lexer.ARRSHAPE {
		if _, err := c.next(); err != nil {
			return err
		}
		if shape, err = symtab.ParseShape(after.Value); err != nil {
			return c.fail(diag.ArrayShapeMismatch, after, "%v", err)
		}
	}
	if err := c.declare(name, typ, shape); err != nil {
		return err
	}

	for {
		tok, err := c.next()
		if err != nil {
			return err
		}
		switch tok.Type {
		case lexer.SEMICOLON:
			return nil
		case lexer.ASSIGN:
			return c.fail(diag.CombinedDeclareAssign, tok,
				"declaration and assignment at the same time: declare %s first, then assign it in a separate statement", name.Value)
		case lexer.COMMA:
			name, err = c.expect(lexer.ID, diag.UnexpectedToken, "an identifier after ','")
			if err != nil {
				return err
			}
			if err := c.declare(name, typ, nil); err != nil {
				return err
			}
		default:
			return c.fail(diag.MissingSemicolon, tok, "declarations need to end with ';', got %s", tok)
		}
	}
}

func (c *Checker) declare(name lexer.Token, typ symtab.Type, shape symtab.Shape) error {
	if c.opts.Policy.RedeclareIsError {
		if prev, ok := c.table.Lookup(name.Value); ok {
			return c.fail(diag.Redeclaration, name, "%s is already declared as %s", name.Value, prev.Describe())
		}
	}
	if c.table.Declare(name.Value, typ, shape) {
		c.tracef("  redeclared %s as %s%s", name.Value, typ, shape)
	} else {
		c.tracef("  declared %s as %s%s", name.Value, typ, shape)
	}
	return nil
}
