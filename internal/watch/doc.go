// Package watch reports changes to a fixed set of files.
//
// The parent directories are watched rather than the files themselves, so
// editors that save by writing a new file and renaming it over the old one
// are still seen.
package watch
