package token

import "fmt"

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies a token.
type Kind int

const (
	_ Kind = iota // zero value is reserved for an invalid token

	Ident
	Lifetime
	Literal
	Punct
	Open
	Close
)

// Pos is a location in the source text. Line and Column are 1-based.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String returns "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span covers the bytes [Start.Offset, End.Offset) of the source.
type Span struct {
	Start Pos
	End   Pos
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Join returns the smallest span covering both s and o.
func (s Span) Join(o Span) Span {
	switch {
	case s.IsZero():
		return o
	case o.IsZero():
		return s
	}

	out := s
	if o.Start.Offset < out.Start.Offset {
		out.Start = o.Start
	}

	if o.End.Offset > out.End.Offset {
		out.End = o.End
	}

	return out
}

// Token is a single lexical element.
type Token struct {
	Kind Kind
	Text string
	Span Span
	// Joint marks punctuation immediately followed by more punctuation,
	// e.g. the first '>' of ">>".
	Joint bool
}

// New creates a token that is not joint with its successor.
func New(kind Kind, text string, span Span) Token {
	return Token{Kind: kind, Text: text, Span: span}
}

// IsPunct reports whether t is the punctuation or delimiter text.
func (t Token) IsPunct(text string) bool {
	switch t.Kind {
	case Punct, Open, Close:
		return t.Text == text
	default:
		return false
	}
}

// IsIdent reports whether t is the identifier text.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}

func (t Token) String() string {
	return t.Text
}

// Stream is an ordered sequence of tokens.
type Stream []Token

// Span covers every token of the stream.
func (s Stream) Span() Span {
	if len(s) == 0 {
		return Span{}
	}

	return s[0].Span.Join(s[len(s)-1].Span)
}

// Texts returns the token texts in order.
func (s Stream) Texts() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.Text
	}

	return out
}

// Equal reports whether both streams have the same kinds and texts,
// ignoring spans and spacing.
func (s Stream) Equal(o Stream) bool {
	if len(s) != len(o) {
		return false
	}

	for i := range s {
		if s[i].Kind != o[i].Kind || s[i].Text != o[i].Text {
			return false
		}
	}

	return true
}

func (s Stream) String() string {
	return Render(s)
}
