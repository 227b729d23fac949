package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"flatfish"
	"flatfish/internal/chain"
	"flatfish/internal/config"
	"flatfish/internal/diagnostic"
	"flatfish/internal/expand"
	"flatfish/internal/lexer"
	"flatfish/internal/watch"
)

func runExpand(args []string, stdout, stderr io.Writer) int {
	var (
		configPath string
		outputDir  string
		inPlace    bool
		showDiff   bool
		watchMode  bool
		expr       string
	)

	fs := newFlagSet("expand", stderr)
	fs.StringVar(&configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")
	fs.StringVar(&outputDir, "o", "", "write expanded files to this directory")
	fs.BoolVar(&inPlace, "w", false, "rewrite files in place")
	fs.BoolVar(&showDiff, "diff", false, "print a unified diff instead of the expanded source")
	fs.BoolVar(&watchMode, "watch", false, "expand again whenever an input file changes")
	fs.StringVar(&expr, "e", "", "expand a single chain and print it")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if expr != "" {
		out, err := flatfish.Expand(expr)
		if err != nil {
			log.Print(err)
			return 1
		}

		fmt.Fprintln(stdout, out)

		return 0
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Print(err)
		return 1
	}

	switch {
	case inPlace && outputDir != "":
		log.Print("-w and -o cannot be used together")
		return 2
	case inPlace:
		cfg.Output = config.InPlace
	case outputDir != "":
		cfg.Output = outputDir
	}

	files := fs.Args()
	if len(files) == 0 {
		log.Print("no input files")
		return 2
	}

	j := &job{
		expander: expand.New(expand.Options{Macros: cfg.Macros}),
		cfg:      cfg,
		diff:     showDiff,
		stdout:   stdout,
		stderr:   stderr,
	}

	status := j.process(files)
	if !watchMode {
		return status
	}

	w, err := watch.New(files)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("watching %d file(s)", len(files))

	err = w.Run(ctx, func(path string) {
		j.process([]string{path})
	})
	if err != nil {
		log.Print(err)
		return 1
	}

	return 0
}

// job expands files and emits the results the way the flags ask.
type job struct {
	expander *expand.Expander
	cfg      *config.Config
	diff     bool
	stdout   io.Writer
	stderr   io.Writer
}

// process expands paths. Files with diagnostics are reported and not
// emitted.
func (j *job) process(paths []string) int {
	status := 0

	var results []*expand.Result

	for _, p := range paths {
		res, err := j.expander.File(p)
		if err != nil {
			log.Print(err)
			status = 1

			continue
		}

		report(j.stderr, res.Diagnostics)

		if res.Diagnostics.HasErrors() {
			status = 1

			continue
		}

		results = append(results, res)
	}

	if err := j.emit(results); err != nil {
		log.Print(err)
		return 1
	}

	return status
}

func (j *job) emit(results []*expand.Result) error {
	switch {
	case j.diff:
		for _, r := range results {
			d, err := r.Diff()
			if err != nil {
				return fmt.Errorf("diffing %s: %w", r.Path, err)
			}

			if _, err := io.WriteString(j.stdout, d); err != nil {
				return fmt.Errorf("writing diff: %w", err)
			}
		}

		return nil

	case j.cfg.Output == "":
		for _, r := range results {
			if _, err := io.WriteString(j.stdout, r.Output); err != nil {
				return fmt.Errorf("writing %s: %w", r.Path, err)
			}
		}

		return nil

	case j.cfg.Output == config.InPlace:
		// Rewriting an unchanged file in place would only retrigger the watcher.
		var changed []*expand.Result

		for _, r := range results {
			if r.Changed() || expand.OutputName(r.Path, j.cfg.Suffix) != r.Path {
				changed = append(changed, r)
			}
		}

		return j.write(changed, "")

	default:
		return j.write(results, j.cfg.Output)
	}
}

func (j *job) write(results []*expand.Result, dir string) error {
	if err := expand.WriteFiles(results, dir, j.cfg.Suffix); err != nil {
		return err
	}

	for _, r := range results {
		log.Printf("%s: expanded %d invocation(s)", r.Path, r.Expanded)
	}

	return nil
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	var configPath string

	fs := newFlagSet("check", stderr)
	fs.StringVar(&configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Print(err)
		return 1
	}

	if fs.NArg() == 0 {
		log.Print("no input files")
		return 2
	}

	e := expand.New(expand.Options{Macros: cfg.Macros})

	var all diagnostic.Diagnostics

	for _, p := range fs.Args() {
		res, err := e.File(p)
		if err != nil {
			all.AddErr(p, err)
			continue
		}

		all.Merge(res.Diagnostics)
	}

	report(stderr, all)

	if all.HasErrors() {
		return 1
	}

	return 0
}

func runDump(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("dump", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() == 0 {
		log.Print("no chain given")
		return 2
	}

	toks, err := lexer.Lex("", strings.Join(fs.Args(), " "))
	if err != nil {
		log.Print(err)
		return 1
	}

	body, err := chain.Parse(toks)
	if err != nil {
		log.Print(err)
		return 1
	}

	dumper := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	dumper.Fdump(stdout, body)

	fmt.Fprintf(stdout, "=> %s\n", chain.Build(body))

	return 0
}

func runInit(args []string, stdout, stderr io.Writer) int {
	var (
		path  string
		force bool
	)

	fs := newFlagSet("init", stderr)
	fs.StringVar(&path, "config", config.DefaultFile, "config file to create")
	fs.BoolVar(&force, "f", false, "overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if _, err := os.Stat(path); err == nil && !force {
		log.Printf("%s already exists (use -f to overwrite)", path)
		return 1
	}

	if err := config.WriteFile(config.Default(), path); err != nil {
		log.Print(err)
		return 1
	}

	log.Printf("wrote %s", path)

	return 0
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "flatfish %s (config %s)\n", version, config.SupportedVersions)
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	if _, err := os.Stat(config.DefaultFile); err == nil {
		return config.LoadFile(config.DefaultFile)
	}

	return config.Default(), nil
}

func report(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintln(w, d.String())
	}
}
