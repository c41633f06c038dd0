package lexer

import (
	"testing"

	"github.com/afrowaveltd/ajis-go/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string, cfg Config) []Token {
	t.Helper()
	l := New(reader.NewSpanReader([]byte(input)), cfg)
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokEnd {
			break
		}
	}
	return toks
}

func TestLexerLiterals(t *testing.T) {
	toks := scanAll(t, "true false null", DefaultConfig())
	require.Len(t, toks, 4)
	assert.Equal(t, TokTrue, toks[0].Kind)
	assert.Equal(t, TokFalse, toks[1].Kind)
	assert.Equal(t, TokNull, toks[2].Kind)
	assert.Equal(t, TokEnd, toks[3].Kind)
}

func TestLexerStringEscapeDecoding(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("\"\\u0041\"")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", string(tok.Text))
	assert.True(t, tok.HadEscape)
}

func TestLexerStringPreserveEscapes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PreserveStringEscapes = true
	l := New(reader.NewSpanReader([]byte("\"\\u0041\"")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "\\u0041", string(tok.Text))
}

func TestLexerSingleQuoteString(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte(`'hi'`)), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokString, tok.Kind)
	assert.Equal(t, "hi", string(tok.Text))
}

func TestLexerJsonModeRejectsSingleQuotes(t *testing.T) {
	cfg := DefaultConfig().ApplyMode(Json)
	l := New(reader.NewSpanReader([]byte(`'hi'`)), cfg)
	_, err := l.Next()
	assert.Error(t, err)
}

func TestLexerNumberBasePrefixes(t *testing.T) {
	cfg := DefaultConfig()
	for _, c := range []struct{ in, want string }{
		{"0x1F", "0x1F"},
		{"0b101", "0b101"},
		{"0o17", "0o17"},
	} {
		l := New(reader.NewSpanReader([]byte(c.in)), cfg)
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, TokNumber, tok.Kind)
		assert.Equal(t, c.want, string(tok.Text))
	}
}

func TestLexerNumberLeadingZeroIsError(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("01")), cfg)
	_, err := l.Next()
	assert.Error(t, err)
}

func TestLexerNumberDigitSeparators(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("1_000")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "1_000", string(tok.Text))
}

func TestLexerTypedLiteral(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("T1707489221")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokNumber, tok.Kind)
	assert.Equal(t, "T1707489221", string(tok.Text))
}

func TestLexerTypedLiteralTrailingLetterBecomesIdentifierOrError(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("T170A")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokIdentifier, tok.Kind)

	cfg.Strings.AllowUnquotedPropertyNames = false
	l2 := New(reader.NewSpanReader([]byte("T170A")), cfg)
	_, err = l2.Next()
	assert.Error(t, err)
}

func TestLexerNaNAndInfinity(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("NaN -Infinity")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokNumber, tok.Kind)
	assert.Equal(t, "NaN", string(tok.Text))

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokNumber, tok.Kind)
	assert.Equal(t, "-Infinity", string(tok.Text))
}

func TestLexerLineComment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmitCommentTokens = true
	toks := scanAll(t, "// hi\nnull", cfg)
	require.Len(t, toks, 3)
	assert.Equal(t, TokComment, toks[0].Kind)
	assert.Equal(t, TokNull, toks[1].Kind)
}

func TestLexerJsonModeRejectsComments(t *testing.T) {
	cfg := DefaultConfig().ApplyMode(Json)
	l := New(reader.NewSpanReader([]byte("// hi\nnull")), cfg)
	_, err := l.Next()
	assert.Error(t, err)
}

func TestLexerBlockCommentUnterminatedSalvageInLax(t *testing.T) {
	cfg := DefaultConfig().ApplyMode(Lax)
	cfg.EmitCommentTokens = true
	l := New(reader.NewSpanReader([]byte("/* unterminated")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokComment, tok.Kind)
}

func TestLexerDirective(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte("#ajis mode value=lax\nnull")), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokDirective, tok.Kind)
	assert.Equal(t, "ajis mode value=lax", string(tok.Text))
}

func TestLexerUnterminatedStringSalvageInLax(t *testing.T) {
	cfg := DefaultConfig().ApplyMode(Lax)
	l := New(reader.NewSpanReader([]byte(`"unterminated`)), cfg)
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokString, tok.Kind)
	assert.Equal(t, "unterminated", string(tok.Text))
}

func TestLexerUnterminatedStringErrorsInAjis(t *testing.T) {
	cfg := DefaultConfig()
	l := New(reader.NewSpanReader([]byte(`"unterminated`)), cfg)
	_, err := l.Next()
	assert.Error(t, err)
}
