package expand

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// OutputName maps an input path to the path of its expansion. When path
// ends with suffix (e.g. ".ff.rs"), the suffix is replaced by its last
// extension ("lib.ff.rs" becomes "lib.rs"); otherwise path is returned.
func OutputName(path, suffix string) string {
	if suffix == "" || !strings.HasSuffix(path, suffix) {
		return path
	}

	return strings.TrimSuffix(path, suffix) + filepath.Ext(suffix)
}

// WriteFiles writes every result. With an empty outputDir each result is
// written next to its input; otherwise into outputDir, which is created if
// it doesn't exist.
func WriteFiles(results []*Result, outputDir, suffix string) error {
	if outputDir != "" {
		err := os.MkdirAll(outputDir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, r := range results {
		target := OutputName(r.Path, suffix)
		if outputDir != "" {
			target = filepath.Join(outputDir, filepath.Base(target))
		}

		err := os.WriteFile(target, []byte(r.Output), filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", target, err)
		}
	}

	return nil
}

// Diff returns a unified diff from the input to the output, empty when
// nothing changed.
func (r *Result) Diff() (string, error) {
	if !r.Changed() {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Input),
		B:        difflib.SplitLines(r.Output),
		FromFile: r.Path,
		ToFile:   r.Path + " (expanded)",
		Context:  3,
	})
}
