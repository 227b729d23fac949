package chain

import (
	"flatfish/internal/diagnostic"
	"flatfish/internal/syntax"
	"flatfish/internal/token"
)

// Message is reported for a chain entry that cannot be split into a trait
// and an item.
const Message = "Syntax is `path::to::Trait::Item`"

// Body is a parsed invocation: the source type and its projections in
// application order.
type Body struct {
	Source *syntax.Path
	Chain  []Step
}

// Step projects the accumulated type through Trait onto Item.
type Step struct {
	Trait *syntax.Path
	// Item is an associated type, constant or function, with its own
	// generic arguments.
	Item syntax.Segment
}

// Parse reads the whole token stream as a chain.
func Parse(toks []token.Token) (*Body, error) {
	c := syntax.NewCursor(toks)

	source, err := syntax.ParsePath(c)
	if err != nil {
		return nil, err
	}

	body := &Body{Source: source}

	for c.PeekPunct("|") {
		step, err := parseStep(c)
		if err != nil {
			return nil, err
		}

		body.Chain = append(body.Chain, step)
	}

	if tok, ok := c.Peek(); ok {
		return nil, diagnostic.Errorf(diagnostic.CodeUnexpectedToken, tok.Span,
			"unexpected token `%s`, expected `|`", tok.Text)
	}

	return body, nil
}

func parseStep(c *syntax.Cursor) (Step, error) {
	if _, err := c.Expect("|"); err != nil {
		return Step{}, err
	}

	trait, err := syntax.ParsePath(c)
	if err != nil {
		return Step{}, err
	}

	span := trait.Span()

	// The item is the last segment; what is left names the trait. Its `::`
	// goes away with it. A qualified path such as `<U as Tr>::Item` has no
	// segment left after the pop. Splicing it in would print
	// `<acc as <U as Tr>>::Item`, which no compiler accepts, so it is
	// rejected here with the entry's own span.
	item, ok := trait.PopSegment()
	if !ok || trait.IsEmpty() {
		return Step{}, diagnostic.Errorf(diagnostic.CodeMalformedChainEntry, span, "%s", Message)
	}

	return Step{Trait: trait, Item: item}, nil
}
