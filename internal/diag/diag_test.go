package diag

import (
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: TypeMismatch, Message: "bad", Statement: 3, Line: 4, Column: 2}, "statement 3 (line 4, col 2): bad"},
		{&Error{Kind: MissingSemicolon, Message: "bad", Statement: 1}, "statement 1: bad"},
		{&Error{Kind: IllegalCharacter, Message: "bad", Line: 1, Column: 9}, "line 1, col 9: bad"},
		{&Error{Kind: FileUnreadable, Message: "cannot read x"}, "cannot read x"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error(): got %q, want %q", got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != None {
		t.Error("nil should be None")
	}
	if KindOf(fmt.Errorf("plain")) != None {
		t.Error("plain error should be None")
	}
	wrapped := fmt.Errorf("outer: %w", Errorf(UndeclaredVariable, 1, 1, "x"))
	if KindOf(wrapped) != UndeclaredVariable {
		t.Errorf("wrapped: got %s", KindOf(wrapped))
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	seen := map[int]Kind{}
	for k := range kindNames {
		code := k.ExitCode()
		if k == None {
			if code != 0 {
				t.Errorf("None: exit code %d, want 0", code)
			}
			continue
		}
		if code == 0 || code == 1 {
			t.Errorf("%s: exit code %d is reserved", k, code)
		}
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share exit code %d", k, other, code)
		}
		seen[code] = k
	}
	if FileUnreadable.ExitCode() != 2 || Redeclaration.ExitCode() != 16 {
		t.Errorf("unexpected codes: FileUnreadable=%d Redeclaration=%d", FileUnreadable.ExitCode(), Redeclaration.ExitCode())
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for k, name := range kindNames {
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q): got %s, %v", name, got, ok)
		}
	}
	if _, ok := ParseKind("NoSuchKind"); ok {
		t.Error("unknown name should not parse")
	}
}
