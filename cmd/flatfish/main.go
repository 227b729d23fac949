// Package main provides the CLI entrypoint for flatfish.
//
// flatfish rewrites flat projection chains into nested fully qualified
// paths:
//   - expand: rewrite every ff!(...) invocation of the given files
//   - check: report malformed invocations without writing anything
//   - dump: show the parsed form of a single chain
//   - init: write a default project file
//   - version: print the tool and config versions
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"flatfish/internal/config"
	"flatfish/internal/match"
)

const version = "0.1.0"

type command struct {
	summary string
	run     func(args []string, stdout, stderr io.Writer) int
}

var commands = map[string]command{
	"expand":  {"rewrite chain invocations in source files", runExpand},
	"check":   {"report malformed chain invocations", runCheck},
	"dump":    {"print the parsed form of a chain", runDump},
	"init":    {"write a default " + config.DefaultFile, runInit},
	"version": {"print version information", runVersion},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("flatfish: ")

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		usage(stderr)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		log.Printf("unknown command %q", args[0])

		if s, ok := match.Closest(args[0], commandNames(), 2); ok {
			fmt.Fprintf(stderr, "\thelp: did you mean %q?\n", s)
		}

		return 2
	}

	return cmd.run(args[1:], stdout, stderr)
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "flatfish - write fully qualified paths without nesting them")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  flatfish <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")

	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("flatfish "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}
