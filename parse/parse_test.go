package parse

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/reader"
	"github.com/afrowaveltd/ajis-go/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink collects EventSink calls under a mutex, since
// ParseSegmentsAsync invokes it from the producer goroutine while the test
// reads p.Next from the caller goroutine.
type recordingSink struct {
	mu        sync.Mutex
	progress  []uint64
	milestone []string
}

func (s *recordingSink) OnDuplicateKey(name string, pos reader.TextPosition) {}

func (s *recordingSink) OnProgress(phase string, processedBytes uint64, totalBytes *uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, processedBytes)
}

func (s *recordingSink) OnMilestone(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milestone = append(s.milestone, phase)
}

func (s *recordingSink) snapshot() ([]uint64, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint64(nil), s.progress...), append([]string(nil), s.milestone...)
}

func TestParseSegmentsFlatObject(t *testing.T) {
	segs, err := ParseSegments([]byte(`{"a":1}`), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, segs, 4)
	assert.Equal(t, segment.EnterContainer, segs[0].Kind)
	assert.Equal(t, uint32(0), segs[0].Depth)
	assert.Equal(t, segment.PropertyName, segs[1].Kind)
	assert.Equal(t, uint32(1), segs[1].Depth)
	assert.Equal(t, "a", segs[1].Slice.String())
	assert.Equal(t, segment.Value, segs[2].Kind)
	assert.Equal(t, segment.Number, segs[2].ValueKind)
	assert.Equal(t, uint32(1), segs[2].Depth)
	assert.Equal(t, segment.ExitContainer, segs[3].Kind)
	assert.Equal(t, uint32(0), segs[3].Depth)
}

func TestParseSegmentsNestedDepths(t *testing.T) {
	segs, err := ParseSegments([]byte(`{"a":{"b":{"c":{"d":1}}}}`), DefaultConfig())
	require.NoError(t, err)
	var gotDepths []uint32
	for _, s := range segs {
		gotDepths = append(gotDepths, s.Depth)
	}
	// Enter(0) a(1) Enter(1) b(2) Enter(2) c(3) Enter(3) d(4) Value(4)
	// Exit(3) Exit(2) Exit(1) Exit(0)
	want := []uint32{0, 1, 1, 2, 2, 3, 3, 4, 4, 3, 2, 1, 0}
	assert.Equal(t, want, gotDepths)
}

func TestParseSegmentsArray(t *testing.T) {
	segs, err := ParseSegments([]byte(`[1,2,3]`), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, segs, 5)
	assert.Equal(t, segment.Array, segs[0].ContainerKind)
	assert.Equal(t, segment.Value, segs[1].Kind)
	assert.Equal(t, segment.Value, segs[2].Kind)
	assert.Equal(t, segment.Value, segs[3].Kind)
	assert.Equal(t, segment.ExitContainer, segs[4].Kind)
}

func TestParseSegmentsTrailingCommaRejectedInAjisDefault(t *testing.T) {
	cfg := DefaultConfig()
	_, err := ParseSegments([]byte(`[1,2,]`), cfg)
	assert.Error(t, err)
}

func TestParseSegmentsTrailingCommaAllowedInLax(t *testing.T) {
	cfg := DefaultConfig().ApplyMode(lexer.Lax)
	segs, err := ParseSegments([]byte(`[1,2,]`), cfg)
	require.NoError(t, err)
	assert.Len(t, segs, 4)
}

func TestParseSegmentsDuplicateKeyErrorsByDefault(t *testing.T) {
	_, err := ParseSegments([]byte(`{"a":1,"a":2}`), DefaultConfig())
	assert.Error(t, err)
}

func TestParseSegmentsDuplicateKeyAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowDuplicateKeys = true
	segs, err := ParseSegments([]byte(`{"a":1,"a":2}`), cfg)
	require.NoError(t, err)
	assert.Len(t, segs, 6)
}

func TestParseSegmentsMaxDepthExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	_, err := ParseSegments([]byte(`{"a":{"b":{"c":1}}}`), cfg)
	assert.Error(t, err)
}

func TestParseSegmentsMultipleTopLevelValuesError(t *testing.T) {
	_, err := ParseSegments([]byte(`1 2`), DefaultConfig())
	assert.Error(t, err)
}

func TestParseSegmentsLaxSalvagesMissingCloseBrace(t *testing.T) {
	cfg := DefaultConfig().ApplyMode(lexer.Lax)
	segs, err := ParseSegments([]byte(`{"a":1`), cfg)
	require.NoError(t, err)
	require.Len(t, segs, 4)
	assert.Equal(t, segment.ExitContainer, segs[3].Kind)
}

func TestParseSegmentsCommentsSkippedByDefault(t *testing.T) {
	segs, err := ParseSegments([]byte("// hi\n{\"a\":1}"), DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, segs, 4)
}

func TestParseSegmentsCommentsEmittedWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmitCommentSegments = true
	segs, err := ParseSegments([]byte("// hi\n{\"a\":1}"), cfg)
	require.NoError(t, err)
	require.Len(t, segs, 5)
	assert.Equal(t, segment.Comment, segs[0].Kind)
}

func TestParseSegmentsAsyncMatchesSync(t *testing.T) {
	input := []byte(`{"a":[1,2,{"b":true}],"c":null}`)
	cfg := DefaultConfig()

	syncSegs, err := ParseSegments(input, cfg)
	require.NoError(t, err)

	ap := ParseSegmentsAsync(context.Background(), bytes.NewReader(input), cfg)
	var asyncSegs []segment.Segment
	for {
		seg, ok, err := ap.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		asyncSegs = append(asyncSegs, seg)
	}

	require.Len(t, asyncSegs, len(syncSegs))
	for i := range syncSegs {
		assert.True(t, syncSegs[i].Equal(asyncSegs[i]), "segment %d: %+v != %+v", i, syncSegs[i], asyncSegs[i])
	}
}

func TestParseSegmentsAsyncReportsProgress(t *testing.T) {
	elems := make([]string, 200)
	for i := range elems {
		elems[i] = strconv.Itoa(i)
	}
	input := []byte("[" + strings.Join(elems, ",") + "]")

	sink := &recordingSink{}
	cfg := DefaultConfig()
	cfg.EventSink = sink

	ap := ParseSegmentsAsync(context.Background(), bytes.NewReader(input), cfg)
	for {
		_, ok, err := ap.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
	}

	progress, milestone := sink.snapshot()
	assert.NotEmpty(t, progress, "expected at least one OnProgress call for a 200-element array")
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Contains(t, milestone, "complete")
}

func TestParseSegmentsAsyncCancellation(t *testing.T) {
	input := []byte(`{"a":1,"b":2,"c":3}`)
	ctx, cancel := context.WithCancel(context.Background())
	ap := ParseSegmentsAsync(ctx, bytes.NewReader(input), DefaultConfig())

	_, ok, err := ap.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	cancel()
	_, ok, err = ap.Next(ctx)
	assert.False(t, ok)
	assert.Error(t, err)
}
