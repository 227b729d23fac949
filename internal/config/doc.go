// Package config loads the optional project file that tells the flatfish
// command which macros to expand and where to write the results.
//
// The file has the following structure:
//
//	version: "1"
//	# Macro paths to recognise (default: ff, flatfish::ff)
//	macros:
//	  - ff
//	  - flatfish::ff
//	# Output directory; empty prints to stdout, "-" rewrites in place
//	output: gen
//	# Suffix replaced in output names (lib.ff.rs -> lib.rs)
//	suffix: .ff.rs
package config
