package lexer

import (
	"errors"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"flatfish/internal/diagnostic"
	"flatfish/internal/token"
)

const (
	ident = `[\p{L}_][\p{L}\p{N}_]*`
	digit = `[0-9][0-9_]*`
)

// Block comments nest and raw strings close on a quote followed by as many
// `#` as they opened with, so both get their own lexer state.
var definition = plexer.MustStateful(plexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "BlockOpen", Pattern: `/\*`, Action: plexer.Push("Block")},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Char", Pattern: `b?'(?:\\u\{[0-9A-Fa-f_]+\}|\\.|[^'\\\n])'`},
		{Name: "Lifetime", Pattern: `'` + ident},
		{Name: "RawOpen", Pattern: `b?r(#*)"`, Action: plexer.Push("Raw")},
		{Name: "String", Pattern: `b?"(?:\\(?s:.)|[^"\\])*"`},
		{Name: "Number", Pattern: `0[xob][0-9A-Fa-f_]+[\p{L}\p{N}_]*|` + digit + `(?:\.[0-9][0-9_]*)?(?:[eE][+-]?[0-9_]+)?[\p{L}\p{N}_]*`},
		{Name: "Ident", Pattern: `r#` + ident + `|` + ident},
		{Name: "Punct", Pattern: `::|->|=>|\.\.=|\.\.\.|\.\.|==|!=|&&|\|\||[-+*/%^!&|=<>@.,;:#$?~]`},
		{Name: "Open", Pattern: `[(\[{]`},
		{Name: "Close", Pattern: `[)\]}]`},
	},
	"Block": {
		{Name: "BlockOpen", Pattern: `/\*`, Action: plexer.Push("Block")},
		{Name: "BlockClose", Pattern: `\*/`, Action: plexer.Pop()},
		{Name: "BlockText", Pattern: `[^*/]+|[*/]`},
	},
	"Raw": {
		{Name: "RawClose", Pattern: `"\1`, Action: plexer.Pop()},
		{Name: "RawText", Pattern: `[^"]+|"`},
	},
})

var kinds = func() map[plexer.TokenType]token.Kind {
	byName := map[string]token.Kind{
		"Ident":    token.Ident,
		"Lifetime": token.Lifetime,
		"Char":     token.Literal,
		"String":   token.Literal,
		"Number":   token.Literal,
		"Punct":    token.Punct,
		"Open":     token.Open,
		"Close":    token.Close,
	}

	out := make(map[plexer.TokenType]token.Kind, len(byName))
	for name, typ := range definition.Symbols() {
		if kind, ok := byName[name]; ok {
			out[typ] = kind
		}
	}

	return out
}()

var (
	symbols    = definition.Symbols()
	rawOpen    = symbols["RawOpen"]
	rawClose   = symbols["RawClose"]
	blockOpen  = symbols["BlockOpen"]
	blockClose = symbols["BlockClose"]
)

// Lex tokenizes src. filename is only used in error positions.
func Lex(filename, src string) (token.Stream, error) {
	lex, err := definition.LexString(filename, src)
	if err != nil {
		return nil, lexError(err)
	}

	raw, err := plexer.ConsumeAll(lex)
	if err != nil {
		return nil, lexError(err)
	}

	out := make(token.Stream, 0, len(raw))
	depth := 0

	var (
		opener plexer.Token
		str    []plexer.Token
	)

	for _, r := range raw {
		switch {
		case r.EOF():

		case r.Type == blockOpen:
			if depth == 0 {
				opener = r
			}

			depth++

		case r.Type == blockClose:
			depth--

		case depth > 0:

		case r.Type == rawOpen:
			str = []plexer.Token{r}

		case str != nil:
			str = append(str, r)
			if r.Type == rawClose {
				out = append(out, rawString(str))
				str = nil
			}

		default:
			if kind, ok := kinds[r.Type]; ok {
				out = append(out, token.Token{Kind: kind, Text: r.Value, Span: spanOf(r)})
			}
		}
	}

	switch {
	case depth > 0:
		return nil, unterminated(opener, "block comment")
	case str != nil:
		return nil, unterminated(str[0], "raw string")
	}

	for i := range len(out) - 1 {
		tok, next := &out[i], out[i+1]
		tok.Joint = tok.Kind == token.Punct && next.Kind == token.Punct &&
			next.Span.Start.Offset == tok.Span.End.Offset
	}

	return out, nil
}

// rawString joins the pieces of a raw string literal into one token.
func rawString(parts []plexer.Token) token.Token {
	var text strings.Builder
	for _, p := range parts {
		text.WriteString(p.Value)
	}

	first := parts[0]
	first.Value = text.String()

	return token.Token{Kind: token.Literal, Text: first.Value, Span: spanOf(first)}
}

func unterminated(at plexer.Token, what string) error {
	start := posOf(at.Pos)
	return diagnostic.Errorf(diagnostic.CodeInvalidInput, token.Span{Start: start, End: start}, "unterminated %s", what)
}

func spanOf(r plexer.Token) token.Span {
	start := posOf(r.Pos)
	end := start

	for _, c := range r.Value {
		if c == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}

	end.Offset += len(r.Value)

	return token.Span{Start: start, End: end}
}

func posOf(p plexer.Position) token.Pos {
	return token.Pos{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func lexError(err error) error {
	var lerr *plexer.Error
	if errors.As(err, &lerr) {
		at := posOf(lerr.Pos)
		return diagnostic.Errorf(diagnostic.CodeInvalidInput, token.Span{Start: at, End: at}, "%s", lerr.Msg)
	}

	return diagnostic.Errorf(diagnostic.CodeInvalidInput, token.Span{}, "%s", err.Error())
}
