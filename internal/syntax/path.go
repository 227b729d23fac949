package syntax

import (
	"flatfish/internal/diagnostic"
	"flatfish/internal/token"
)

// ArgsKind tells how a segment's arguments are delimited.
type ArgsKind int

const (
	NoArgs ArgsKind = iota
	AngleArgs
	ParenArgs
)

// Args are the arguments of a segment, kept verbatim including the
// delimiters, a turbofish `::` and a `-> Ret` tail.
type Args struct {
	Kind   ArgsKind
	Tokens []token.Token
}

// Segment is one element of a path.
type Segment struct {
	// Sep is the `::` in front of the segment. It is the zero token for a
	// first segment written without a leading separator.
	Sep   token.Token
	Ident token.Token
	Args  Args
}

// Name returns the segment identifier.
func (s Segment) Name() string {
	return s.Ident.Text
}

// Tokens returns the identifier and arguments, without the separator.
func (s Segment) Tokens() token.Stream {
	out := make(token.Stream, 0, 1+len(s.Args.Tokens))
	out = append(out, s.Ident)

	return append(out, s.Args.Tokens...)
}

// QSelf is the `<Type as Trait>` prefix of a qualified path.
type QSelf struct {
	Lt   token.Token
	Self *Type
	// As and Trait are zero when the prefix is written `<Type>`.
	As    token.Token
	Trait *Path
	Gt    token.Token
}

func (q *QSelf) Tokens() token.Stream {
	out := token.Stream{q.Lt}
	out = append(out, q.Self.Tokens()...)

	if q.Trait != nil {
		out = append(out, q.As)
		out = append(out, q.Trait.Tokens()...)
	}

	return append(out, q.Gt)
}

// Path is a possibly qualified, possibly generic type path.
type Path struct {
	QSelf    *QSelf
	Segments []Segment
}

// Tokens returns the path as it was written.
func (p *Path) Tokens() token.Stream {
	var out token.Stream
	if p.QSelf != nil {
		out = append(out, p.QSelf.Tokens()...)
	}

	for _, s := range p.Segments {
		if s.Sep.Text != "" {
			out = append(out, s.Sep)
		}

		out = append(out, s.Tokens()...)
	}

	return out
}

// Span covers every token of the path.
func (p *Path) Span() token.Span {
	return p.Tokens().Span()
}

// IsEmpty reports whether no segment is left.
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// PopSegment removes the last segment together with the `::` in front of
// it. It reports false when there was nothing to remove.
func (p *Path) PopSegment() (Segment, bool) {
	n := len(p.Segments)
	if n == 0 {
		return Segment{}, false
	}

	last := p.Segments[n-1]
	p.Segments = p.Segments[:n-1]

	return last, true
}

func (p *Path) String() string {
	return p.Tokens().String()
}

// Type is any type accepted inside a qualified-self prefix or after `->`.
// Path types keep their structure; other types are kept as tokens.
type Type struct {
	Path   *Path
	tokens []token.Token
}

func (t *Type) Tokens() token.Stream {
	if t.Path != nil {
		return t.Path.Tokens()
	}

	return t.tokens
}

// Keywords that can never start a path segment.
var reserved = map[string]bool{
	"_": true, "as": true, "async": true, "await": true, "break": true,
	"const": true, "continue": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "static": true, "struct": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true,
}

// ParsePath parses one type path starting at the cursor.
func ParsePath(c *Cursor) (*Path, error) {
	p := &Path{}

	var sep token.Token

	switch {
	case c.PeekPunct("<"):
		q, err := parseQSelf(c)
		if err != nil {
			return nil, err
		}

		p.QSelf = q

		if sep, err = c.Expect("::"); err != nil {
			return nil, err
		}
	case c.PeekPunct("::"):
		sep, _ = c.Next()
	}

	for {
		seg, err := parseSegment(c, sep)
		if err != nil {
			return nil, err
		}

		p.Segments = append(p.Segments, seg)

		if !c.PeekPunct("::") {
			return p, nil
		}

		sep, _ = c.Next()
	}
}

func parseQSelf(c *Cursor) (*QSelf, error) {
	lt, _ := c.Next()

	self, err := ParseType(c)
	if err != nil {
		return nil, err
	}

	q := &QSelf{Lt: lt, Self: self}

	if c.PeekIdent("as") {
		q.As, _ = c.Next()

		if q.Trait, err = ParsePath(c); err != nil {
			return nil, err
		}
	}

	if q.Gt, err = c.Expect(">"); err != nil {
		return nil, err
	}

	return q, nil
}

func parseSegment(c *Cursor, sep token.Token) (Segment, error) {
	tok, ok := c.Next()
	if !ok {
		return Segment{}, c.EOF("expected identifier")
	}

	if tok.Kind != token.Ident || reserved[tok.Text] {
		return Segment{}, diagnostic.Errorf(diagnostic.CodeExpectedIdent, tok.Span,
			"expected identifier, found `%s`", tok.Text)
	}

	args, err := parseArgs(c)
	if err != nil {
		return Segment{}, err
	}

	return Segment{Sep: sep, Ident: tok, Args: args}, nil
}

func parseArgs(c *Cursor) (Args, error) {
	switch {
	case c.PeekPunct("<"):
		toks, err := balanced(c)
		return Args{Kind: AngleArgs, Tokens: toks}, err

	case c.PeekPunct("::"):
		next, ok := c.PeekN(1)
		if !ok || !next.IsPunct("<") {
			return Args{}, nil
		}

		colons, _ := c.Next()

		toks, err := balanced(c)
		if err != nil {
			return Args{}, err
		}

		return Args{Kind: AngleArgs, Tokens: append([]token.Token{colons}, toks...)}, nil

	case c.PeekPunct("("):
		toks, err := parenWithOutput(c)
		return Args{Kind: ParenArgs, Tokens: toks}, err
	}

	return Args{}, nil
}

// parenWithOutput parses `( ... )` and an optional `-> Type`.
func parenWithOutput(c *Cursor) ([]token.Token, error) {
	toks, err := balanced(c)
	if err != nil {
		return nil, err
	}

	if !c.PeekPunct("->") {
		return toks, nil
	}

	arrow, _ := c.Next()

	ret, err := ParseType(c)
	if err != nil {
		return nil, err
	}

	toks = append(toks, arrow)

	return append(toks, ret.Tokens()...), nil
}

// ParseType parses a type in the positions where the grammar allows more
// than a path.
func ParseType(c *Cursor) (*Type, error) {
	tok, ok := c.Peek()
	if !ok {
		return nil, c.EOF("expected type")
	}

	switch {
	case tok.IsPunct("<"), tok.IsPunct("::"):
		return pathType(c)

	case tok.IsPunct("&"), tok.IsPunct("&&"):
		c.Next()

		toks := []token.Token{tok}
		if lt, ok := c.Peek(); ok && lt.Kind == token.Lifetime {
			c.Next()
			toks = append(toks, lt)
		}

		if c.PeekIdent("mut") {
			m, _ := c.Next()
			toks = append(toks, m)
		}

		return prefixed(c, toks)

	case tok.IsPunct("*"):
		c.Next()

		q, ok := c.Next()
		if !ok {
			return nil, c.EOF("expected `const` or `mut`")
		}

		if !q.IsIdent("const") && !q.IsIdent("mut") {
			return nil, diagnostic.Errorf(diagnostic.CodeUnexpectedToken, q.Span,
				"expected `const` or `mut`, found `%s`", q.Text)
		}

		return prefixed(c, []token.Token{tok, q})

	case tok.IsPunct("("), tok.IsPunct("["):
		toks, err := balanced(c)
		if err != nil {
			return nil, err
		}

		return &Type{tokens: toks}, nil

	case tok.IsPunct("!"), tok.IsIdent("_"):
		c.Next()
		return &Type{tokens: []token.Token{tok}}, nil

	case tok.IsIdent("fn"), tok.IsIdent("unsafe"), tok.IsIdent("extern"):
		return fnPointer(c, nil)

	case tok.IsIdent("for"):
		binder, err := forBinder(c)
		if err != nil {
			return nil, err
		}

		return fnPointer(c, binder)

	case tok.IsIdent("dyn"), tok.IsIdent("impl"):
		c.Next()

		bounds, err := parseBounds(c)
		if err != nil {
			return nil, err
		}

		return &Type{tokens: append([]token.Token{tok}, bounds...)}, nil

	case tok.Kind == token.Ident:
		return pathType(c)
	}

	return nil, diagnostic.Errorf(diagnostic.CodeUnexpectedToken, tok.Span, "expected type, found `%s`", tok.Text)
}

// fnPointer parses `unsafe? (extern "abi"?)? fn(...) (-> Ret)?` after an
// optional `for<...>` binder.
func fnPointer(c *Cursor, toks []token.Token) (*Type, error) {
	if c.PeekIdent("unsafe") {
		tok, _ := c.Next()
		toks = append(toks, tok)
	}

	if c.PeekIdent("extern") {
		tok, _ := c.Next()
		toks = append(toks, tok)

		if abi, ok := c.Peek(); ok && abi.Kind == token.Literal {
			c.Next()
			toks = append(toks, abi)
		}
	}

	if !c.PeekIdent("fn") {
		return nil, unexpected(c, "expected `fn`")
	}

	fn, _ := c.Next()

	if !c.PeekPunct("(") {
		return nil, unexpected(c, "expected `(`")
	}

	params, err := parenWithOutput(c)
	if err != nil {
		return nil, err
	}

	toks = append(toks, fn)

	return &Type{tokens: append(toks, params...)}, nil
}

// forBinder parses a higher-ranked `for<'a, ...>` binder.
func forBinder(c *Cursor) ([]token.Token, error) {
	kw, _ := c.Next()

	if !c.PeekPunct("<") {
		return nil, unexpected(c, "expected `<` after `for`")
	}

	params, err := balanced(c)
	if err != nil {
		return nil, err
	}

	return append([]token.Token{kw}, params...), nil
}

func pathType(c *Cursor) (*Type, error) {
	p, err := ParsePath(c)
	if err != nil {
		return nil, err
	}

	return &Type{Path: p}, nil
}

func prefixed(c *Cursor, prefix []token.Token) (*Type, error) {
	inner, err := ParseType(c)
	if err != nil {
		return nil, err
	}

	return &Type{tokens: append(prefix, inner.Tokens()...)}, nil
}

// parseBounds parses `Bound ('+' Bound)*` after `dyn` or `impl`.
func parseBounds(c *Cursor) ([]token.Token, error) {
	var out []token.Token

	for {
		tok, ok := c.Peek()
		if !ok {
			return nil, c.EOF("expected trait bound")
		}

		if tok.Kind == token.Lifetime {
			c.Next()
			out = append(out, tok)
		} else {
			if tok.IsPunct("?") {
				c.Next()
				out = append(out, tok)
			}

			if c.PeekIdent("for") {
				binder, err := forBinder(c)
				if err != nil {
					return nil, err
				}

				out = append(out, binder...)
			}

			p, err := ParsePath(c)
			if err != nil {
				return nil, err
			}

			out = append(out, p.Tokens()...)
		}

		if !c.PeekPunct("+") {
			return out, nil
		}

		plus, _ := c.Next()
		out = append(out, plus)
	}
}

func unexpected(c *Cursor, want string) error {
	tok, ok := c.Peek()
	if !ok {
		return c.EOF("%s", want)
	}

	return diagnostic.Errorf(diagnostic.CodeUnexpectedToken, tok.Span, "%s, found `%s`", want, tok.Text)
}
