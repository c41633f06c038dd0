package transform

import (
	"testing"

	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/parse"
	"github.com/afrowaveltd/ajis-go/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) []segment.Segment {
	t.Helper()
	cfg := parse.DefaultConfig()
	cfg.EmitCommentSegments = true
	cfg.EmitDirectiveSegments = true
	segs, err := parse.ParseSegments([]byte(input), cfg)
	require.NoError(t, err)
	return segs
}

func names(seq []segment.Segment) []string {
	var out []string
	for _, s := range seq {
		if s.Kind == segment.PropertyName {
			out = append(out, s.Slice.String())
		}
	}
	return out
}

func TestRenamePropertiesIdempotence(t *testing.T) {
	segs := mustParse(t, `{"a":1,"b":{"a":2}}`)
	upper := func(s string) string { return s + s }
	once := RenameProperties(segs, upper)
	twice := RenameProperties(once, upper)
	composed := RenameProperties(segs, func(s string) string { return upper(upper(s)) })
	require.Len(t, twice, len(composed))
	for i := range twice {
		assert.True(t, twice[i].Equal(composed[i]))
	}
}

func TestDropPropertyByNamePrimitive(t *testing.T) {
	segs := mustParse(t, `{"a":1,"b":2}`)
	out := DropPropertyByName(segs, "a")
	assert.Equal(t, []string{"b"}, names(out))
}

func TestDropPropertyByNameNestedValue(t *testing.T) {
	segs := mustParse(t, `{"a":{"x":1,"y":2},"b":3}`)
	out := DropPropertyByName(segs, "a")
	assert.Equal(t, []string{"b"}, names(out))
	require.Len(t, out, 4) // Enter, PropName(b), Value(3), Exit
}

func TestDropPropertyByNameAnyDepth(t *testing.T) {
	segs := mustParse(t, `{"outer":{"drop":1,"keep":2}}`)
	out := DropPropertyByName(segs, "drop")
	assert.Equal(t, []string{"outer", "keep"}, names(out))
}

func TestDropPropertyByPathMatchesExactPath(t *testing.T) {
	segs := mustParse(t, `{"a":{"b":1},"c":{"b":2}}`)
	out := DropPropertyByPath(segs, "$.a.b")
	assert.Equal(t, []string{"a", "c", "b"}, names(out))
}

func TestFilterArrayItemsKeepsPredicateMatches(t *testing.T) {
	segs := mustParse(t, `[1,2,3,4]`)
	isOdd := func(item []segment.Segment) bool {
		// numeric text is ASCII; odd if the last digit is odd
		b := item[0].Slice.Bytes
		d := b[len(b)-1]
		return (d-'0')%2 == 1
	}
	out := FilterArrayItems(segs, isOdd)
	var vals []string
	for _, s := range out {
		if s.Kind == segment.Value {
			vals = append(vals, s.Slice.String())
		}
	}
	assert.Equal(t, []string{"1", "3"}, vals)
	assert.Equal(t, segment.EnterContainer, out[0].Kind)
	assert.Equal(t, segment.ExitContainer, out[len(out)-1].Kind)
}

func TestFilterArrayItemsRecursesIntoNestedArrays(t *testing.T) {
	segs := mustParse(t, `{"items":[1,2,3]}`)
	keepSmall := func(item []segment.Segment) bool {
		return string(item[0].Slice.Bytes) != "3"
	}
	out := FilterArrayItems(segs, keepSmall)
	var vals []string
	for _, s := range out {
		if s.Kind == segment.Value {
			vals = append(vals, s.Slice.String())
		}
	}
	assert.Equal(t, []string{"1", "2"}, vals)
}

func TestReplacePropertyValueSplicesBalancedReplacement(t *testing.T) {
	segs := mustParse(t, `{"a":1,"b":2}`)
	replacement := mustParse(t, `{"x":true}`)
	out := ReplacePropertyValue(segs, "a", replacement)
	require.Len(t, out, len(segs)-1+len(replacement))
	assert.Equal(t, segment.EnterContainer, out[2].Kind)
	assert.Equal(t, uint32(1), out[2].Depth)
}

func TestSelectRootPropertyValueStripsOuterObject(t *testing.T) {
	segs := mustParse(t, `{"a":{"x":1},"b":2}`)
	out := SelectRootPropertyValue(segs, "a")
	require.Len(t, out, 4)
	assert.Equal(t, segment.EnterContainer, out[0].Kind)
	assert.Equal(t, uint32(0), out[0].Depth)
}

func TestSelectRootPropertyWrappedKeepsOnlyThatProperty(t *testing.T) {
	segs := mustParse(t, `{"a":1,"b":2}`)
	out := SelectRootPropertyWrapped(segs, "a")
	assert.Equal(t, []string{"a"}, names(out))
	require.Len(t, out, 4)
	assert.Equal(t, segment.EnterContainer, out[0].Kind)
	assert.Equal(t, segment.ExitContainer, out[3].Kind)
}

func TestSelectRootPropertyMissingReturnsNil(t *testing.T) {
	segs := mustParse(t, `{"a":1}`)
	assert.Nil(t, SelectRootPropertyValue(segs, "missing"))
	assert.Nil(t, SelectRootPropertyWrapped(segs, "missing"))
}

func TestDropThenSelectIsEmpty(t *testing.T) {
	segs := mustParse(t, `{"a":1,"b":2}`)
	dropped := DropPropertyByPath(segs, "$.a")
	assert.Nil(t, SelectRootPropertyValue(dropped, "a"))
}

func TestBindDirectivesScopes(t *testing.T) {
	cfg := parse.DefaultConfig().ApplyMode(lexer.Lax)
	cfg.EmitDirectiveSegments = true
	segs, err := parse.ParseSegments([]byte("#ajis mode value=lax\n{\"a\":\n#ajis hint value=sensitive\n1}\n#ajis done"), cfg)
	require.NoError(t, err)

	bound := BindDirectives(segs)
	require.Len(t, bound, 3)
	assert.Equal(t, Document, bound[0].Scope)
	assert.Equal(t, Target, bound[1].Scope)
	assert.Equal(t, "$.a", bound[1].TargetPath)
	assert.Equal(t, Trailer, bound[2].Scope)
}
