// Package diagnostic provides located, coded errors and warnings for the
// flatfish expander.
//
// Key capabilities:
//   - Stable codes usable as errors.Is sentinels (MalformedChainEntry, ...)
//   - Source spans and file names for compiler-style reporting
//   - Per-file collections with merge and combined error output
package diagnostic
