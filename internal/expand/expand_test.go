package expand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatfish/internal/chain"
	"flatfish/internal/diagnostic"
)

func TestSourceGolden(t *testing.T) {
	res, err := New(Options{}).File(filepath.Join("testdata", "two_levels.rs"))
	require.NoError(t, err)
	require.True(t, res.Diagnostics.IsValid(), res.Diagnostics.Error())

	want, err := os.ReadFile(filepath.Join("testdata", "two_levels.expanded.rs"))
	require.NoError(t, err)

	assert.Equal(t, string(want), res.Output)
	assert.Equal(t, 3, res.Expanded)
	assert.True(t, res.Changed())
}

func TestSourcePositions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "type position",
			src:  "fn f(x: ff!(T | A::B)) {}",
			want: "fn f(x: <T as A>::B) {}",
		},
		{
			name: "call position",
			src:  "let v = ff!(T | A::new)(1, 2);",
			want: "let v = <T as A>::new(1, 2);",
		},
		{
			name: "brackets and braces",
			src:  "ff![T | A::B]; ff!{T | A::B}",
			want: "<T as A>::B; <T as A>::B",
		},
		{
			name: "qualified macro path",
			src:  "type X = flatfish::ff!(T | m::A::B);",
			want: "type X = <T as m::A>::B;",
		},
		{
			name: "no chain",
			src:  "type X = ff!(Vec<u8>);",
			want: "type X = Vec<u8>;",
		},
		{
			name: "nested invocation",
			src:  "type X = ff!(ff!(T | A::B) | C::D);",
			want: "type X = <<T as A>::B as C>::D;",
		},
		{
			name: "comments and strings untouched",
			src:  "// ff!(T | A::B)\nlet s = \"ff!(T | A::B)\"; /* ff!(x) */",
			want: "// ff!(T | A::B)\nlet s = \"ff!(T | A::B)\"; /* ff!(x) */",
		},
		{
			name: "nested block comment untouched",
			src:  "/* outer /* inner */ ff!(T | A::B) */ type X = ff!(T | A::B);",
			want: "/* outer /* inner */ ff!(T | A::B) */ type X = <T as A>::B;",
		},
		{
			name: "raw string with hashes untouched",
			src:  "let s = r##\"a \"ff!(T | A::B)\"# b\"##; type X = ff!(T | A::B);",
			want: "let s = r##\"a \"ff!(T | A::B)\"# b\"##; type X = <T as A>::B;",
		},
		{
			name: "other macros and paths untouched",
			src:  "use flatfish::ff; macro_rules! ff { () => {} } other::ff!(T | A::B);",
			want: "use flatfish::ff; macro_rules! ff { () => {} } other::ff!(T | A::B);",
		},
		{
			name: "multi line invocation",
			src:  "type X = ff!(\n    T\n    | A::B // first\n    | C<u8>::D\n);\nfn g() {}",
			want: "type X = <<T as A>::B as C<u8>>::D;\nfn g() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(Options{}).Source("lib.rs", tt.src)
			require.True(t, res.Diagnostics.IsValid(), res.Diagnostics.Error())
			assert.Equal(t, tt.want, res.Output)
		})
	}
}

func TestSourceEmptyChainWarning(t *testing.T) {
	res := New(Options{}).Source("lib.rs", "type X = flatfish::ff!(Vec<u8>);")

	require.True(t, res.Diagnostics.IsValid())
	assert.Equal(t, "type X = Vec<u8>;", res.Output)
	require.Len(t, res.Diagnostics.Warnings, 1)

	w := res.Diagnostics.Warnings[0]
	assert.Equal(t, diagnostic.CodeEmptyChain, w.Code)
	assert.Equal(t, []string{"write `Vec<u8>` without the macro"}, w.Suggestions)
	assert.Equal(t,
		"lib.rs:1:10: warning[EmptyChain]: `flatfish::ff!` has no chain and expands to its argument unchanged\n"+
			"\thelp: write `Vec<u8>` without the macro",
		w.String())
}

func TestSourceCustomMacros(t *testing.T) {
	e := New(Options{Macros: []string{"qpath", "my::qpath"}})

	res := e.Source("lib.rs", "type X = my::qpath!(T | A::B); type Y = ff!(T | A::B);")
	require.True(t, res.Diagnostics.IsValid())

	assert.Equal(t, "type X = <T as A>::B; type Y = ff!(T | A::B);", res.Output)
	assert.Equal(t, 1, res.Expanded)
}

func TestSourceMalformedEntry(t *testing.T) {
	src := "type X = ff!(T | A::B);\ntype Y = ff!(T | Item);\ntype Z = ff!(U | C::D);"

	res := New(Options{}).Source("lib.rs", src)
	require.Len(t, res.Diagnostics.Errors, 1)

	d := res.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeMalformedChainEntry, d.Code)
	assert.Equal(t, chain.Message, d.Message)
	assert.Equal(t, "lib.rs", d.File)
	assert.Equal(t, 2, d.Span.Start.Line)
	assert.Equal(t, 18, d.Span.Start.Column)
	assert.Equal(t, "lib.rs:2:18: error[MalformedChainEntry]: Syntax is `path::to::Trait::Item`", d.String())

	// The failing invocation stays as written, the others are expanded.
	assert.Equal(t, "type X = <T as A>::B;\ntype Y = ff!(T | Item);\ntype Z = <U as C>::D;", res.Output)
	assert.Equal(t, 2, res.Expanded)
}

func TestSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diagnostic.Code
	}{
		{"unclosed", "type X = ff!(T | A::B;", diagnostic.CodeUnclosedInvocation},
		{"lex error", "type X = ff!(T | `A::B);", diagnostic.CodeInvalidInput},
		{"nested malformed", "type X = ff!(ff!(T | B) | C::D);", diagnostic.CodeMalformedChainEntry},
		{"trailing tokens", "type X = ff!(T | A::B C);", diagnostic.CodeUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(Options{}).Source("lib.rs", tt.src)
			require.True(t, res.Diagnostics.HasErrors())
			assert.Equal(t, tt.code, res.Diagnostics.Errors[0].Code)
			assert.Equal(t, tt.src, res.Output)
			assert.False(t, res.Changed())
		})
	}
}

func TestFileMissing(t *testing.T) {
	_, err := New(Options{}).File(filepath.Join(t.TempDir(), "missing.rs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
