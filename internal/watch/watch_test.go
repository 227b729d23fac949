package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "lib.rs")
	other := filepath.Join(dir, "other.rs")

	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("a"), 0o644))

	w, err := New([]string{watched})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seen := make(chan string, 16)
	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx, func(path string) { seen <- path })
	}()

	require.NoError(t, os.WriteFile(other, []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("b"), 0o644))

	select {
	case path := <-seen:
		want, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, want, path)
	case <-ctx.Done():
		t.Fatal("no event for the watched file")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestNewMissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "lib.rs")})
	require.Error(t, err)
}
