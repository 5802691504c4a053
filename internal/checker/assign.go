package checker

import (
	"toycheck/internal/diag"
	"toycheck/internal/lexer"
	"toycheck/internal/symtab"
)

// arithmeticOps are the operators allowed between two int literals.
var arithmeticOps = map[string]bool{
	"+": true,
	"-": true,
	"*": true,
	"/": true,
	"%": true,
}

// parseAssignment parses: IDENT '=' <expr> ';'
// The target identifier has already been consumed.
func (c *Checker) parseAssignment(target lexer.Token) error {
	entry, ok := c.table.Lookup(target.Value)
	if !ok {
		return c.fail(diag.UndeclaredVariable, target, "variable %s is not declared", target.Value)
	}
	if _, err := c.expect(lexer.ASSIGN, diag.UnexpectedToken, "'=' after "+target.Value); err != nil {
		return err
	}
	if err := c.checkExpression(target.Value, entry); err != nil {
		return err
	}
	return c.expectSemicolon("statements")
}

// checkExpression validates the right-hand side against the declared entry
// of the assignment target.
func (c *Checker) checkExpression(name string, entry symtab.Entry) error {
	tok, err := c.next()
	if err != nil {
		return err
	}

	switch tok.Type {
	case lexer.LBRACE:
		if entry.Shape.IsScalar() {
			return c.fail(diag.ArrayShapeMismatch, tok, "cannot assign an array initializer to scalar %s (%s)", name, entry.Describe())
		}
		return c.checkInitializer(entry.Type, entry.Shape)

	case lexer.ID:
		src, ok := c.table.Lookup(tok.Value)
		if !ok {
			return c.fail(diag.UndeclaredVariable, tok, "variable %s is not declared", tok.Value)
		}
		if src.Type != entry.Type || !src.Shape.Equal(entry.Shape) {
			return c.fail(diag.TypeMismatch, tok, "inconsistent type assignment: %s is %s but %s is %s",
				name, entry.Describe(), tok.Value, src.Describe())
		}
		return nil
	}

	lit := symtab.LiteralType(tok.Type)
	if lit == symtab.Invalid {
		return c.fail(diag.UnexpectedToken, tok, "expected an expression after '=', got %s", tok)
	}
	if !entry.Shape.IsScalar() {
		return c.fail(diag.ArrayShapeMismatch, tok, "cannot assign a single %s value to array %s (%s)", lit, name, entry.Describe())
	}
	if lit != entry.Type {
		return c.fail(diag.TypeMismatch, tok, "inconsistent type assignment: %s is %s but %s is a %s literal",
			name, entry.Describe(), tok.Value, lit)
	}

	switch lit {
	case symtab.Int:
		return c.checkArithmetic(tok)
	case symtab.Bool:
		return c.checkBoolean(tok)
	}
	return nil
}

// checkArithmetic handles the optional "OPERATOR NUMBER" tail after an int
// literal. Only a single operand-operator-operand form is accepted.
func (c *Checker) checkArithmetic(lhs lexer.Token) error {
	op, err := c.peek()
	if err != nil {
		return err
	}
	switch op.Type {
	case lexer.OPERATOR:
		if _, err := c.next(); err != nil {
			return err
		}
		if !arithmeticOps[op.Value] {
			return c.fail(diag.InvalidOperator, op, "invalid operator %s in int expression", op.Value)
		}
		rhs, err := c.next()
		if err != nil {
			return err
		}
		if rhs.Type != lexer.NUMBER {
			return c.fail(diag.InvalidOperand, rhs, "invalid second operand %s for %s %s", rhs, lhs.Value, op.Value)
		}
	case lexer.BOOLOP:
		if _, err := c.next(); err != nil {
			return err
		}
		return c.fail(diag.InvalidOperator, op, "boolean operator %s cannot combine int operands", op.Value)
	}
	return nil
}

// checkBoolean handles the optional "BOOLOP (true|false)" tail after a
// boolean literal.
func (c *Checker) checkBoolean(lhs lexer.Token) error {
	op, err := c.peek()
	if err != nil {
		return err
	}
	switch op.Type {
	case lexer.BOOLOP:
		if _, err := c.next(); err != nil {
			return err
		}
		rhs, err := c.next()
		if err != nil {
			return err
		}
		if rhs.Type != lexer.TRUE && rhs.Type != lexer.FALSE {
			return c.fail(diag.InvalidOperand, rhs, "inconsistent operands %s and %s in boolean expression", lhs.Value, rhs)
		}
	case lexer.OPERATOR:
		if _, err := c.next(); err != nil {
			return err
		}
		return c.fail(diag.InvalidOperator, op, "no valid operator in boolean expression: %s", op.Value)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Array initializers
// ---------------------------------------------------------------------------

// checkInitializer validates a brace list for shape after its '{' has been
// consumed:
//
//	init(s) := '{' elem(s) (',' elem(s))* '}'
//
// with exactly s[0] elements. Elements are nested initializers for s[1:],
// or literals of elem when s has one dimension left.
func (c *Checker) checkInitializer(elem symtab.Type, shape symtab.Shape) error {
	want := shape[0]
	count := 0
	for {
		if err := c.checkElement(elem, shape.Sub()); err != nil {
			return err
		}
		count++

		tok, err := c.next()
		if err != nil {
			return err
		}
		switch tok.Type {
		case lexer.COMMA:
			if count < want {
				continue
			}
			after, err := c.peek()
			if err != nil {
				return err
			}
			if after.Type == lexer.RBRACE {
				return c.fail(diag.ArrayShapeMismatch, tok, "trailing ',' in array initializer")
			}
			return c.fail(diag.ArrayShapeMismatch, after, "too many elements in array initializer: expected %d", want)
		case lexer.RBRACE:
			if count != want {
				return c.fail(diag.ArrayShapeMismatch, tok, "array initializer has %d elements, expected %d", count, want)
			}
			return nil
		default:
			return c.fail(diag.ArrayShapeMismatch, tok, "expected ',' or '}' in array initializer, got %s", tok)
		}
	}
}

// checkElement validates one element of an initializer whose remaining
// dimensions are sub.
func (c *Checker) checkElement(elem symtab.Type, sub symtab.Shape) error {
	tok, err := c.next()
	if err != nil {
		return err
	}

	if !sub.IsScalar() {
		if tok.Type != lexer.LBRACE {
			return c.fail(diag.ArrayShapeMismatch, tok, "expected '{' to open a nested %s initializer, got %s", sub, tok)
		}
		return c.checkInitializer(elem, sub)
	}

	switch tok.Type {
	case lexer.LBRACE:
		return c.fail(diag.ArrayShapeMismatch, tok, "array initializer nested deeper than its declared shape")
	case lexer.COMMA, lexer.RBRACE, lexer.SEMICOLON, lexer.EOF:
		return c.fail(diag.ArrayShapeMismatch, tok, "missing element in array initializer, got %s", tok)
	}
	if symtab.LiteralType(tok.Type) != elem {
		return c.fail(diag.ArrayTypeMismatch, tok, "%s array cannot hold %s", elem, tok)
	}
	return nil
}
