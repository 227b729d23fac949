package chain

import (
	"flatfish/internal/token"
)

// Build folds the chain left to right: the first step ends up innermost.
func Build(b *Body) token.Stream {
	out := b.Source.Tokens()

	for _, step := range b.Chain {
		out = wrap(out, step)
	}

	return out
}

// wrap returns `< acc as Trait >::Item`.
func wrap(acc token.Stream, step Step) token.Stream {
	span := step.Trait.Span()
	trait := step.Trait.Tokens()
	item := step.Item.Tokens()

	out := make(token.Stream, 0, len(acc)+len(trait)+len(item)+4)
	out = append(out, token.New(token.Punct, "<", span))
	out = append(out, acc...)
	out = append(out, token.New(token.Ident, "as", span))
	out = append(out, trait...)
	out = append(out, token.New(token.Punct, ">", span), token.New(token.Punct, "::", span))

	return append(out, item...)
}

// Expand parses toks and builds the nested path. On failure no tokens are
// returned.
func Expand(toks []token.Token) (token.Stream, error) {
	body, err := Parse(toks)
	if err != nil {
		return nil, err
	}

	return Build(body), nil
}
