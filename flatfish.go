// Package flatfish writes fully qualified associated-item paths without
// nesting them by hand.
//
// A chain
//
//	T | Trait1::Item1<u32> | Trait2<u32>::Item2
//
// expands to
//
//	<<T as Trait1>::Item1<u32> as Trait2<u32>>::Item2
//
// The last item can also name an associated constant or function. Expand
// works on one chain; ExpandSource rewrites every `ff!(...)` invocation of a
// source file.
package flatfish

import (
	"flatfish/internal/chain"
	"flatfish/internal/diagnostic"
	"flatfish/internal/expand"
	"flatfish/internal/lexer"
)

// Message is the diagnostic attached to a malformed chain entry.
const Message = chain.Message

// ErrMalformedChainEntry matches, through errors.Is, the error returned for
// a chain step whose path cannot be split into a trait and an item.
var ErrMalformedChainEntry error = diagnostic.CodeMalformedChainEntry

// Expand rewrites a single chain into its nested fully qualified path.
func Expand(input string) (string, error) {
	toks, err := lexer.Lex("", input)
	if err != nil {
		return "", err
	}

	out, err := chain.Expand(toks)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// ExpandSource rewrites every invocation of the default macros (`ff!` and
// `flatfish::ff!`) in src. name is used in diagnostics.
func ExpandSource(name, src string) (string, error) {
	res := expand.New(expand.Options{}).Source(name, src)
	if err := res.Diagnostics.Join(); err != nil {
		return "", err
	}

	return res.Output, nil
}
