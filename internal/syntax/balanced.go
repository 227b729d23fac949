package syntax

import (
	"flatfish/internal/diagnostic"
	"flatfish/internal/token"
)

var closers = map[string]string{"<": ">", "(": ")", "[": "]", "{": "}"}

// frame is an open delimiter. In an expression frame `<` and `>` are
// operators, not argument brackets.
type frame struct {
	open token.Token
	expr bool
}

// balanced consumes a delimited run starting at the current opener and
// returns it including both delimiters. Angle brackets nest like the other
// delimiters, except in expression position: inside `{ ... }` and after the
// `;` of an array type `[T; N]`, together with everything nested there.
func balanced(c *Cursor) ([]token.Token, error) {
	open, _ := c.Next()

	out := []token.Token{open}
	stack := []frame{{open: open, expr: open.IsPunct("{")}}

	for len(stack) > 0 {
		tok, ok := c.Next()
		if !ok {
			return nil, c.EOF("unclosed `%s`", stack[len(stack)-1].open.Text)
		}

		out = append(out, tok)
		top := &stack[len(stack)-1]

		switch {
		case top.expr && (tok.IsPunct("<") || tok.IsPunct(">")):

		case tok.IsPunct("<"):
			stack = append(stack, frame{open: tok})

		case tok.IsPunct(">"):
			if !top.open.IsPunct("<") {
				return nil, diagnostic.Errorf(diagnostic.CodeUnbalanced, tok.Span,
					"unexpected `>` inside `%s`", top.open.Text)
			}

			stack = stack[:len(stack)-1]

		case tok.IsPunct(";"):
			if top.open.IsPunct("[") {
				top.expr = true
			}

		case tok.Kind == token.Open:
			stack = append(stack, frame{open: tok, expr: top.expr || tok.Text == "{"})

		case tok.Kind == token.Close:
			if want := closers[top.open.Text]; tok.Text != want {
				return nil, diagnostic.Errorf(diagnostic.CodeUnbalanced, tok.Span,
					"mismatched `%s`, expected `%s`", tok.Text, want)
			}

			stack = stack[:len(stack)-1]
		}
	}

	return out, nil
}
