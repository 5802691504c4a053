package lexer

import (
	"testing"

	"toycheck/internal/diag"
)

func TestStreamPeekDoesNotConsume(t *testing.T) {
	s := NewStream(New("int x;", Options{}))
	for i := 0; i < 2; i++ {
		tok, err := s.Peek(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != INT {
			t.Fatalf("peek %d: got %s, want INT", i, tok.Type)
		}
	}
	if s.Consumed() != 0 {
		t.Errorf("consumed: got %d, want 0", s.Consumed())
	}
	tok, _ := s.Peek(2)
	if tok.Type != SEMICOLON {
		t.Errorf("peek(2): got %s, want SEMICOLON", tok.Type)
	}
}

func TestStreamAdvance(t *testing.T) {
	s := NewStream(New("int x;", Options{}))
	want := []string{INT, ID, SEMICOLON, EOF, EOF}
	for i, typ := range want {
		tok, err := s.Advance()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Type != typ {
			t.Errorf("advance %d: got %s, want %s", i, tok.Type, typ)
		}
	}
	if s.Consumed() != 3 {
		t.Errorf("consumed: got %d, want 3", s.Consumed())
	}
	if s.Last().Type != SEMICOLON {
		t.Errorf("last: got %s, want SEMICOLON", s.Last().Type)
	}
}

func TestStreamErrorIsSticky(t *testing.T) {
	s := NewStream(New("x $ y", Options{}))
	if _, err := s.Advance(); err != nil {
		t.Fatalf("first token: unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		_, err := s.Advance()
		if diag.KindOf(err) != diag.IllegalCharacter {
			t.Fatalf("call %d: expected IllegalCharacter, got %v", i, err)
		}
	}
}

func TestStreamPeekPastErrorFails(t *testing.T) {
	s := NewStream(New("x $", Options{}))
	if _, err := s.Peek(1); err == nil {
		t.Fatal("expected error peeking past '$'")
	}
	// The token before the bad character is still buffered.
	tok, err := s.Peek(0)
	if err != nil || tok.Type != ID {
		t.Fatalf("peek(0): got %v, %v", tok, err)
	}
}
