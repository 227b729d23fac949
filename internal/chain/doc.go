// Package chain parses a flat projection chain
//
//	SourceType | Trait1::Item1 | path::to::Trait2<u32>::Item2 ...
//
// and folds it into the nested fully qualified path
//
//	<<SourceType as Trait1>::Item1 as path::to::Trait2<u32>>::Item2
//
// The rewrite is purely syntactic. Whether a type implements a trait or a
// trait has the named item is left to the host compiler.
package chain
