package expand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		path, suffix, want string
	}{
		{"src/lib.ff.rs", ".ff.rs", "src/lib.rs"},
		{"src/lib.rs", ".ff.rs", "src/lib.rs"},
		{"src/lib.rs", "", "src/lib.rs"},
		{"gen.in", ".in", "gen.in"},
	}

	for _, tt := range tests {
		t.Run(tt.path+tt.suffix, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.path, tt.suffix))
		})
	}
}

func TestWriteFilesToDir(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "nested", "out")

	in := filepath.Join(src, "types.ff.rs")
	require.NoError(t, os.WriteFile(in, []byte("type X = ff!(T | A::B);\n"), 0o644))

	res, err := New(Options{}).File(in)
	require.NoError(t, err)

	require.NoError(t, WriteFiles([]*Result{res}, out, ".ff.rs"))

	got, err := os.ReadFile(filepath.Join(out, "types.rs"))
	require.NoError(t, err)
	assert.Equal(t, "type X = <T as A>::B;\n", string(got))

	// The input is left alone.
	orig, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "type X = ff!(T | A::B);\n", string(orig))
}

func TestWriteFilesInPlace(t *testing.T) {
	in := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(in, []byte("type X = ff!(T | A::B);\n"), 0o644))

	res, err := New(Options{}).File(in)
	require.NoError(t, err)
	require.NoError(t, WriteFiles([]*Result{res}, "", ""))

	got, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "type X = <T as A>::B;\n", string(got))
}

func TestDiff(t *testing.T) {
	res := New(Options{}).Source("lib.rs", "struct S;\ntype X = ff!(T | A::B);\n")

	diff, err := res.Diff()
	require.NoError(t, err)

	assert.Contains(t, diff, "--- lib.rs\n")
	assert.Contains(t, diff, "+++ lib.rs (expanded)\n")
	assert.Contains(t, diff, "-type X = ff!(T | A::B);\n")
	assert.Contains(t, diff, "+type X = <T as A>::B;\n")

	unchanged := New(Options{}).Source("lib.rs", "struct S;\n")
	diff, err = unchanged.Diff()
	require.NoError(t, err)
	assert.Empty(t, diff)
}
