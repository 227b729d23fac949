// Package lexer turns host source text into a flat token stream.
//
// Whitespace and comments are dropped; block comments nest. A raw string
// `r#"..."#` becomes a single literal token whatever its number of `#`.
// Multi-character operators that never
// appear inside a generic argument list (`::`, `->`, `..`, ...) are kept
// whole; `<` and `>` are always single tokens, and adjacency is recorded
// through token.Token.Joint, so `>>` can close two argument lists.
package lexer
