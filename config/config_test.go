package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAppliesOnlyPresentFields(t *testing.T) {
	doc := []byte(`
text_mode: lax
max_depth: 32
numbers:
  enable_base_prefixes: false
`)
	fs, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, "lax", fs.TextMode)
	require.NotNil(t, fs.MaxDepth)
	assert.Equal(t, uint32(32), *fs.MaxDepth)
	require.NotNil(t, fs.Numbers.EnableBasePrefixes)
	assert.False(t, *fs.Numbers.EnableBasePrefixes)
	assert.Nil(t, fs.AllowDuplicateKeys)
	assert.Empty(t, fs.ParserProfile)
}

func TestDecodeRejectsUnknownField(t *testing.T) {
	doc := []byte(`not_a_real_setting: true`)
	_, err := Decode(doc)
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/settings.yaml")
	assert.Error(t, err)
}

func TestDefaultsMatchesAjisDefaultMode(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "ajis", d.TextMode)
	require.NotNil(t, d.MaxDepth)
	assert.Equal(t, uint32(256), *d.MaxDepth)
	assert.Equal(t, "64k", d.StreamChunkThreshold)
}
