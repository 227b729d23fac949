package token

import "strings"

// Render prints tokens back to source text. Spacing is minimal and
// deterministic: words are separated, `as` is always surrounded by spaces,
// binding and arrow operators are spaced, list separators and a `>` before
// an identifier (`for<'a> Fn`) are followed by a space. Joint punctuation stays glued to the punctuation after it.
func Render(toks []Token) string {
	var b strings.Builder

	for i, t := range toks {
		if i > 0 && needSpace(toks[i-1], t) {
			b.WriteByte(' ')
		}

		b.WriteString(t.Text)
	}

	return b.String()
}

func needSpace(prev, next Token) bool {
	if prev.Joint && next.Kind == Punct {
		return false
	}

	switch {
	case isWord(prev) && isWord(next):
		return true
	case prev.IsIdent("as") || next.IsIdent("as"):
		return true
	case prev.IsPunct(">") && next.Kind == Ident:
		return true
	case prev.IsPunct(",") || prev.IsPunct(";"):
		return true
	case isSpaced(prev) || isSpaced(next):
		return true
	}

	return false
}

func isWord(t Token) bool {
	switch t.Kind {
	case Ident, Lifetime, Literal:
		return true
	default:
		return false
	}
}

func isSpaced(t Token) bool {
	if t.Kind != Punct {
		return false
	}

	switch t.Text {
	case "=", "->", "=>", "+":
		return true
	default:
		return false
	}
}
