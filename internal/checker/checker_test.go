package checker_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"toycheck/internal/checker"
	"toycheck/internal/diag"
	"toycheck/internal/lexer"
	"toycheck/internal/symtab"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func expectValid(t *testing.T, src string) {
	t.Helper()
	expectValidWith(t, src, checker.Options{})
}

func expectValidWith(t *testing.T, src string, opts checker.Options) {
	t.Helper()
	if err := checker.Check(src, opts); err != nil {
		t.Errorf("expected valid program, got %v\nsource:\n%s", err, src)
	}
}

func expectKind(t *testing.T, src string, want diag.Kind) *diag.Error {
	t.Helper()
	return expectKindWith(t, src, want, checker.Options{})
}

func expectKindWith(t *testing.T, src string, want diag.Kind, opts checker.Options) *diag.Error {
	t.Helper()
	err := checker.Check(src, opts)
	if err == nil {
		t.Errorf("expected %s, program was accepted\nsource:\n%s", want, src)
		return nil
	}
	de, ok := err.(*diag.Error)
	if !ok {
		t.Errorf("expected *diag.Error, got %T: %v", err, err)
		return nil
	}
	if de.Kind != want {
		t.Errorf("expected %s, got %s: %v\nsource:\n%s", want, de.Kind, de, src)
	}
	return de
}

// ---------------------------------------------------------------------------
// Dispatcher and state machine
// ---------------------------------------------------------------------------

func TestEmptyProgramIsValid(t *testing.T) {
	expectValid(t, "")
	expectValid(t, "  \n\t// only a comment\n")
}

func TestUnexpectedStartToken(t *testing.T) {
	for _, src := range []string{"= 5;", "5;", "; int x;", "{ }", "true;"} {
		expectKind(t, src, diag.UnexpectedStartToken)
	}
}

func TestStatementsInSourceOrder(t *testing.T) {
	src := `
int x;
bool b;
x = 4 * 5;
b = true || false;
print(x);
read(b);
print("done");
`
	c := checker.New(src, checker.Options{})
	if err := c.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != checker.Done {
		t.Errorf("state: got %s, want Done", c.State())
	}
	if c.Statements() != 7 {
		t.Errorf("statements: got %d, want 7", c.Statements())
	}
}

func TestRejectedStateIsTerminal(t *testing.T) {
	c := checker.New("x = 5; int x;", checker.Options{})
	first := c.Run()
	if diag.KindOf(first) != diag.UndeclaredVariable {
		t.Fatalf("expected UndeclaredVariable, got %v", first)
	}
	if c.State() != checker.Rejected {
		t.Errorf("state: got %s, want Rejected", c.State())
	}
	if second := c.Run(); second != first {
		t.Errorf("second Run: got %v, want the same error", second)
	}
	// The declaration after the failure is never reached.
	if c.Symbols().Len() != 0 {
		t.Errorf("expected no symbols, got %d", c.Symbols().Len())
	}
}

func TestFirstErrorWins(t *testing.T) {
	de := expectKind(t, "int x;\nx = true;\ny = 1;", diag.TypeMismatch)
	if de == nil {
		return
	}
	if de.Statement != 2 || de.Line != 2 {
		t.Errorf("position: got statement %d line %d, want statement 2 line 2", de.Statement, de.Line)
	}
}

func TestErrorMessageCarriesOrdinal(t *testing.T) {
	err := checker.Check("int x;\nint y;\nread(z);", checker.Options{})
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "statement 3 (line 3, col 6): variable z is not declared"
	if err.Error() != want {
		t.Errorf("message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestLexErrorInsideStatement(t *testing.T) {
	de := expectKind(t, "int x;\nx = 5 $ 3;", diag.IllegalCharacter)
	if de != nil && de.Statement != 2 {
		t.Errorf("statement: got %d, want 2", de.Statement)
	}
}

func TestSkipUnknownCharacters(t *testing.T) {
	src := "int x; x = 5; $"
	expectKind(t, src, diag.IllegalCharacter)
	expectValidWith(t, src, checker.Options{Lexer: lexer.Options{SkipUnknown: true}})
}

// ---------------------------------------------------------------------------
// Properties
// ---------------------------------------------------------------------------

var literalFor = map[string]string{
	"int":    "42",
	"bool":   "false",
	"float":  "2.5",
	"char":   "'z'",
	"string": `"text"`,
}

func TestMatchingLiteralIsValid(t *testing.T) {
	for typ, lit := range literalFor {
		expectValid(t, fmt.Sprintf("%s x; x = %s;", typ, lit))
	}
}

func TestMismatchedVariablesAreRejected(t *testing.T) {
	for t1 := range literalFor {
		for t2 := range literalFor {
			if t1 == t2 {
				continue
			}
			expectKind(t, fmt.Sprintf("%s x; %s y; x = y;", t1, t2), diag.TypeMismatch)
		}
	}
}

func TestMismatchedLiteralsAreRejected(t *testing.T) {
	for t1 := range literalFor {
		for t2, lit := range literalFor {
			if t1 == t2 {
				continue
			}
			expectKind(t, fmt.Sprintf("%s x; x = %s;", t1, lit), diag.TypeMismatch)
		}
	}
}

func TestMissingSemicolonOnEveryStatementKind(t *testing.T) {
	for _, src := range []string{
		"int x",
		"int x; x = 5",
		"bool b; b = true && false",
		"int a[2]; a = {1, 2}",
		`print("hello")`,
		"int y; read(y)",
	} {
		expectKind(t, src, diag.MissingSemicolon)
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	for _, src := range []string{
		"int x; x = 5;",
		"int x; x = 5; y = 1;",
		"int a[2][2]; a = {{1,2},{3}};",
	} {
		first := checker.Check(src, checker.Options{})
		second := checker.Check(src, checker.Options{})
		if fmt.Sprint(first) != fmt.Sprint(second) {
			t.Errorf("%q: first %v, second %v", src, first, second)
		}
	}
}

func TestParallelSessionsAreIsolated(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("v%d", i)
			src := fmt.Sprintf("int %s; %s = %d;", name, name, i)
			if i%2 == 1 {
				// Odd sessions use a variable only an even session declares.
				src = fmt.Sprintf("v%d = 1;", i-1)
			}
			errs[i] = checker.Check(src, checker.Options{})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if i%2 == 0 && err != nil {
			t.Errorf("session %d: unexpected error %v", i, err)
		}
		if i%2 == 1 && diag.KindOf(err) != diag.UndeclaredVariable {
			t.Errorf("session %d: expected UndeclaredVariable, got %v", i, err)
		}
	}
}

func TestTraceHook(t *testing.T) {
	var lines []string
	opts := checker.Options{Tracef: func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}}
	if err := checker.Check("int x;", opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"statement 1: INT", `ID "x"`, "declared x as int"} {
		if !strings.Contains(joined, want) {
			t.Errorf("trace missing %q:\n%s", want, joined)
		}
	}
}

func TestSymbolsAfterRun(t *testing.T) {
	c := checker.New("int a[2][3]; char c, d;", checker.Options{})
	if err := c.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []struct {
		name string
		desc string
	}{
		{"a", "int[2][3]"},
		{"c", "char"},
		{"d", "char"},
	}
	got := c.Symbols().Entries()
	if len(got) != len(want) {
		t.Fatalf("entries: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Describe() != w.desc {
			t.Errorf("entry %d: got %s %s, want %s %s", i, got[i].Name, got[i].Describe(), w.name, w.desc)
		}
	}
	if e, _ := c.Symbols().Lookup("a"); !e.Shape.Equal(symtab.Shape{2, 3}) {
		t.Errorf("a shape: got %v", e.Shape)
	}
}
