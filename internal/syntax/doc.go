// Package syntax implements the type-path grammar shared by the source type
// and by every trait path of a chain.
//
// The grammar is structural only: generic argument lists are captured as
// balanced token runs and kept verbatim, nothing is resolved or checked.
//
//	Path    := QSelf '::' Segments | '::'? Segments
//	QSelf   := '<' Type ('as' Path)? '>'
//	Segment := Ident ('::'? '<' ... '>' | '(' ... ')' ('->' Type)?)?
package syntax
