package expand

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"flatfish/internal/chain"
	"flatfish/internal/diagnostic"
	"flatfish/internal/lexer"
	"flatfish/internal/token"
)

// DefaultMacros are the macro paths recognised when Options.Macros is empty.
var DefaultMacros = []string{"ff", "flatfish::ff"}

// Options configures an Expander.
type Options struct {
	// Macros lists macro paths such as "ff" or "flatfish::ff".
	Macros []string
}

// Expander rewrites macro invocations. It holds no state between calls and
// is safe for concurrent use.
type Expander struct {
	macros [][]string
}

// New creates an Expander.
func New(opts Options) *Expander {
	names := opts.Macros
	if len(names) == 0 {
		names = DefaultMacros
	}

	e := &Expander{}
	for _, name := range names {
		e.macros = append(e.macros, strings.Split(name, "::"))
	}

	// Longer paths first so `flatfish::ff` wins over `ff`.
	sort.SliceStable(e.macros, func(i, j int) bool {
		return len(e.macros[i]) > len(e.macros[j])
	})

	return e
}

// Result is the outcome of expanding one source.
type Result struct {
	Path   string
	Input  string
	Output string
	// Expanded counts the top-level invocations that were replaced.
	Expanded    int
	Diagnostics diagnostic.Diagnostics
}

// Changed reports whether the output differs from the input.
func (r *Result) Changed() bool {
	return r.Input != r.Output
}

// File reads and expands the file at path.
func (e *Expander) File(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}

	return e.Source(path, string(data)), nil
}

// Source expands every invocation in src. A failing invocation is reported
// and left as written; the others are still expanded.
func (e *Expander) Source(name, src string) *Result {
	res := &Result{Path: name, Input: src, Output: src}

	toks, err := lexer.Lex(name, src)
	if err != nil {
		res.Diagnostics.AddErr(name, err)
		return res
	}

	var b strings.Builder

	last := 0

	for i := 0; i < len(toks); {
		inv, ok, err := e.match(toks, i)
		if err != nil {
			res.Diagnostics.AddErr(name, err)
			break
		}

		if !ok {
			i++
			continue
		}

		i = inv.end + 1

		body, err := e.invoke(toks, inv)
		if err != nil {
			res.Diagnostics.AddErr(name, err)
			continue
		}

		out := chain.Build(body)
		if len(body.Chain) == 0 {
			res.Diagnostics.AddWarning(diagnostic.CodeEmptyChain,
				fmt.Sprintf("`%s!` has no chain and expands to its argument unchanged", macroName(toks, inv)),
				name, toks[inv.start].Span.Join(toks[inv.end].Span),
				fmt.Sprintf("write `%s` without the macro", out))
		}

		b.WriteString(src[last:toks[inv.start].Span.Start.Offset])
		b.WriteString(out.String())
		last = toks[inv.end].Span.End.Offset
		res.Expanded++
	}

	b.WriteString(src[last:])
	res.Output = b.String()

	return res
}

type invocation struct {
	start int // first token of the macro path
	open  int // opening delimiter
	end   int // matching closing delimiter
}

// match recognises an invocation whose macro path starts at toks[i].
func (e *Expander) match(toks []token.Token, i int) (invocation, bool, error) {
	if i > 0 && toks[i-1].IsPunct("::") {
		return invocation{}, false, nil
	}

	for _, parts := range e.macros {
		j, ok := matchPath(toks, i, parts)
		if !ok || j+1 >= len(toks) || !toks[j].IsPunct("!") || toks[j+1].Kind != token.Open {
			continue
		}

		end, ok := closing(toks, j+1)
		if !ok {
			return invocation{}, false, diagnostic.Errorf(diagnostic.CodeUnclosedInvocation,
				toks[i].Span.Join(toks[j].Span), "unclosed `%s!` invocation", strings.Join(parts, "::"))
		}

		return invocation{start: i, open: j + 1, end: end}, true, nil
	}

	return invocation{}, false, nil
}

// invoke parses one invocation after expanding the invocations nested in it.
func (e *Expander) invoke(toks []token.Token, inv invocation) (*chain.Body, error) {
	inner, err := e.rewrite(toks[inv.open+1 : inv.end])
	if err != nil {
		return nil, err
	}

	return chain.Parse(inner)
}

// macroName is the macro path of inv as written.
func macroName(toks []token.Token, inv invocation) string {
	return token.Stream(toks[inv.start : inv.open-1]).String()
}

// rewrite replaces every invocation in toks by its expansion.
func (e *Expander) rewrite(toks []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(toks))

	for i := 0; i < len(toks); {
		inv, ok, err := e.match(toks, i)
		if err != nil {
			return nil, err
		}

		if !ok {
			out = append(out, toks[i])
			i++

			continue
		}

		body, err := e.invoke(toks, inv)
		if err != nil {
			return nil, err
		}

		out = append(out, chain.Build(body)...)
		i = inv.end + 1
	}

	return out, nil
}

func matchPath(toks []token.Token, i int, parts []string) (int, bool) {
	j := i

	for k, part := range parts {
		if k > 0 {
			if j >= len(toks) || !toks[j].IsPunct("::") {
				return 0, false
			}

			j++
		}

		if j >= len(toks) || !toks[j].IsIdent(part) {
			return 0, false
		}

		j++
	}

	return j, true
}

// closing returns the index of the delimiter closing toks[open].
func closing(toks []token.Token, open int) (int, bool) {
	depth := 0

	for k := open; k < len(toks); k++ {
		switch toks[k].Kind {
		case token.Open:
			depth++
		case token.Close:
			depth--
			if depth == 0 {
				return k, true
			}
		}
	}

	return 0, false
}
