// Package expand finds chain macro invocations in host source files and
// replaces each one with its nested fully qualified path.
//
// Only the text of an invocation, from the first segment of the macro path
// to its closing delimiter, is replaced; everything else in the file is kept
// byte for byte. Invocations nested inside another invocation are expanded
// first, so
//
//	ff!(ff!(T | A::B) | C::D)
//
// is the same as ff!(T | A::B | C::D).
package expand
