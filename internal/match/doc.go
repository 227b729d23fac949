// Package match provides edit-distance helpers used to suggest the
// closest known name for a mistyped one.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the nearest candidate within a distance budget
package match
