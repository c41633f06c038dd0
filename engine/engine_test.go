package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMatchesSpecTable(t *testing.T) {
	cases := []struct {
		profile Profile
		input   InputKind
		want    Strategy
	}{
		{HighThroughput, Span, SpanLexer},
		{HighThroughput, Stream, StreamLexer},
		{Universal, Span, SpanLexer},
		{Universal, Stream, StreamLexer},
		{LowMemory, Span, SpanLexer},
		{LowMemory, Stream, MappedFile},
	}
	for _, c := range cases {
		got := Select(c.profile, c.input)
		assert.Equalf(t, c.want, got, "Select(%s, %s)", c.profile, c.input)
	}
}

func TestParseChunkThreshold(t *testing.T) {
	cases := []struct {
		in   string
		want ChunkThreshold
	}{
		{"64k", 64 * 1024},
		{"2M", 2 * 1024 * 1024},
		{"1G", 1024 * 1024 * 1024},
		{"512", 512},
	}
	for _, c := range cases {
		got, err := ParseChunkThreshold(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseChunkThresholdRejectsUnknownSuffix(t *testing.T) {
	_, err := ParseChunkThreshold("64x")
	assert.Error(t, err)
}

func TestParseChunkThresholdRejectsEmpty(t *testing.T) {
	_, err := ParseChunkThreshold("")
	assert.Error(t, err)
}
