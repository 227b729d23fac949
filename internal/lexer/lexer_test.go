package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatfish/internal/diagnostic"
	"flatfish/internal/token"
)

func TestLexChain(t *testing.T) {
	toks, err := Lex("", "T | Trait1::Item1<u32> | Trait2<u32>::Item2")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"T", "|", "Trait1", "::", "Item1", "<", "u32", ">",
		"|", "Trait2", "<", "u32", ">", "::", "Item2",
	}, toks.Texts())

	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, token.Punct, toks[1].Kind)
	assert.Equal(t, token.Punct, toks[3].Kind)
}

func TestLexKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"foo", token.Ident},
		{"r#type", token.Ident},
		{"_", token.Ident},
		{"'a", token.Lifetime},
		{"'static", token.Lifetime},
		{"'a'", token.Literal},
		{`'\n'`, token.Literal},
		{`"str\"ing"`, token.Literal},
		{`r#"raw "quoted""#`, token.Literal},
		{`r"plain"`, token.Literal},
		{`br##"a "# b"##`, token.Literal},
		{"r##\"two\nlines\"##", token.Literal},
		{"42", token.Literal},
		{"0x_ff_u8", token.Literal},
		{"1.5e3f64", token.Literal},
		{"::", token.Punct},
		{"->", token.Punct},
		{"(", token.Open},
		{"}", token.Close},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := Lex("", tt.src)
			require.NoError(t, err)
			require.Len(t, toks, 1)
			assert.Equal(t, tt.kind, toks[0].Kind)
			assert.Equal(t, tt.src, toks[0].Text)
		})
	}
}

func TestLexSplitsAngles(t *testing.T) {
	toks, err := Lex("", "Vec<Vec<u8>>::new")
	require.NoError(t, err)

	assert.Equal(t, []string{"Vec", "<", "Vec", "<", "u8", ">", ">", "::", "new"}, toks.Texts())
	assert.True(t, toks[5].Joint, "first '>' is joint with the second")
	assert.True(t, toks[6].Joint, "second '>' is joint with '::'")
	assert.False(t, toks[4].Joint)
}

func TestLexDropsComments(t *testing.T) {
	toks, err := Lex("", "T // source\n| /* trait */ A::B")
	require.NoError(t, err)
	assert.Equal(t, []string{"T", "|", "A", "::", "B"}, toks.Texts())
}

func TestLexNestedBlockComments(t *testing.T) {
	toks, err := Lex("", "T /* outer /* inner */ | A::B */ | C::D")
	require.NoError(t, err)
	assert.Equal(t, []string{"T", "|", "C", "::", "D"}, toks.Texts())
}

func TestLexRawStringSpan(t *testing.T) {
	toks, err := Lex("", "x r##\"a\n\"#b\"## y")
	require.NoError(t, err)
	require.Len(t, toks, 3)

	str := toks[1]
	assert.Equal(t, "r##\"a\n\"#b\"##", str.Text)
	assert.Equal(t, token.Pos{Offset: 2, Line: 1, Column: 3}, str.Span.Start)
	assert.Equal(t, token.Pos{Offset: 14, Line: 2, Column: 7}, str.Span.End)
	assert.Equal(t, "y", toks[2].Text)
}

func TestLexUnterminated(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"T /* a /* b */", "1:3: error[InvalidInput]: unterminated block comment"},
		{`T r#"a"`, "1:3: error[InvalidInput]: unterminated raw string"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Lex("", tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.CodeInvalidInput)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestLexSpans(t *testing.T) {
	toks, err := Lex("lib.rs", "T\n  | A::B")
	require.NoError(t, err)
	require.Len(t, toks, 5)

	bar := toks[1]
	assert.Equal(t, token.Pos{Offset: 4, Line: 2, Column: 3}, bar.Span.Start)
	assert.Equal(t, token.Pos{Offset: 5, Line: 2, Column: 4}, bar.Span.End)

	assert.Equal(t, 10, toks.Span().End.Offset)
}

func TestLexInvalidInput(t *testing.T) {
	_, err := Lex("lib.rs", "T | `A")
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.CodeInvalidInput)
}

func TestLexRoundTrip(t *testing.T) {
	tests := []string{
		"<<T as Trait1>::Item1<u32> as Trait2<u32>>::Item2",
		"&'a mut dyn Fn(u32) -> u8 + Send",
		"Trait<Item = u32>",
		"[u8; 4]",
		"std::collections::HashMap<K, V>",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			toks, err := Lex("", src)
			require.NoError(t, err)
			assert.Equal(t, src, toks.String())
		})
	}
}
