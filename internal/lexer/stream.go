package lexer

// Stream is a pull cursor over a Lexer. Peek inspects upcoming tokens
// without consuming them; Advance consumes exactly one.
type Stream struct {
	lx       *Lexer
	buf      []Token
	err      error
	consumed int
	last     Token
}

// NewStream wraps lx. The stream owns the lexer from this point on.
func NewStream(lx *Lexer) *Stream {
	return &Stream{lx: lx}
}

// fill makes sure at least n tokens are buffered. Lexing errors are sticky.
func (s *Stream) fill(n int) error {
	for len(s.buf) < n {
		if s.err != nil {
			return s.err
		}
		tok, err := s.lx.Next()
		if err != nil {
			s.err = err
			return err
		}
		s.buf = append(s.buf, tok)
	}
	return nil
}

// Peek returns the k-th unconsumed token (0 is the next one).
func (s *Stream) Peek(k int) (Token, error) {
	if err := s.fill(k + 1); err != nil {
		return Token{}, err
	}
	return s.buf[k], nil
}

// Advance consumes and returns the next token. EOF is returned repeatedly
// once the input is exhausted and is not counted as consumed.
func (s *Stream) Advance() (Token, error) {
	tok, err := s.Peek(0)
	if err != nil {
		return Token{}, err
	}
	if tok.Type != EOF {
		s.buf = s.buf[1:]
		s.consumed++
		s.last = tok
	}
	return tok, nil
}

// Consumed reports how many tokens have been taken with Advance.
func (s *Stream) Consumed() int {
	return s.consumed
}

// Last returns the most recently consumed token.
func (s *Stream) Last() Token {
	return s.last
}
