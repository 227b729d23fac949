// Package token defines the flat token model shared by the lexer, the path
// grammar and the chain builder, together with the renderer that prints a
// token stream back to source text.
package token
