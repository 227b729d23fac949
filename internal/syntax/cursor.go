package syntax

import (
	"flatfish/internal/diagnostic"
	"flatfish/internal/token"
)

// Cursor walks a token slice. It never mutates the tokens it was given.
type Cursor struct {
	toks []token.Token
	pos  int
}

// NewCursor returns a cursor positioned on the first token.
func NewCursor(toks []token.Token) *Cursor {
	return &Cursor{toks: toks}
}

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() (token.Token, bool) {
	return c.PeekN(0)
}

// PeekN returns the token n positions ahead of the current one.
func (c *Cursor) PeekN(n int) (token.Token, bool) {
	if c.pos+n >= len(c.toks) {
		return token.Token{}, false
	}

	return c.toks[c.pos+n], true
}

// Next consumes and returns the current token.
func (c *Cursor) Next() (token.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}

	return tok, ok
}

// AtEnd reports whether every token has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.toks)
}

// PeekPunct reports whether the current token is the given punctuation.
func (c *Cursor) PeekPunct(text string) bool {
	tok, ok := c.Peek()
	return ok && tok.IsPunct(text)
}

// PeekIdent reports whether the current token is the given identifier.
func (c *Cursor) PeekIdent(text string) bool {
	tok, ok := c.Peek()
	return ok && tok.IsIdent(text)
}

// Expect consumes the given punctuation or fails.
func (c *Cursor) Expect(text string) (token.Token, error) {
	tok, ok := c.Peek()
	if !ok {
		return token.Token{}, c.EOF("expected `%s`", text)
	}

	if !tok.IsPunct(text) {
		return token.Token{}, diagnostic.Errorf(diagnostic.CodeUnexpectedToken, tok.Span,
			"expected `%s`, found `%s`", text, tok.Text)
	}

	c.pos++

	return tok, nil
}

// EOF builds an unexpected-end-of-input error located right after the last
// token.
func (c *Cursor) EOF(format string, args ...any) error {
	var at token.Span
	if n := len(c.toks); n > 0 {
		end := c.toks[n-1].Span.End
		at = token.Span{Start: end, End: end}
	}

	return diagnostic.Errorf(diagnostic.CodeUnexpectedEOF, at, "unexpected end of input, "+format, args...)
}
