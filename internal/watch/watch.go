package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a set of files.
type Watcher struct {
	w     *fsnotify.Watcher
	files map[string]struct{}
}

// New starts watching paths. Events that happen after New returns are
// delivered by Run.
func New(paths []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	fw := &Watcher{w: w, files: make(map[string]struct{}, len(paths))}
	dirs := make(map[string]struct{})

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		fw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return fw, nil
}

// Run calls fn with the absolute path of every watched file that is
// written or created. It returns nil once ctx is done, or the first
// watcher error.
func (fw *Watcher) Run(ctx context.Context, fn func(path string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			name := filepath.Clean(ev.Name)
			if _, watched := fw.files[name]; watched {
				fn(name)
			}

		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watching files: %w", err)
		}
	}
}

// Close stops watching.
func (fw *Watcher) Close() error {
	return fw.w.Close()
}
