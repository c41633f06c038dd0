package parse

import (
	"io"

	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/reader"
	"github.com/afrowaveltd/ajis-go/segment"
)

// sliceEmitter materializes every emitted segment into a slice; used by the
// sync parser, which never needs to suspend mid-document.
type sliceEmitter struct {
	segments []segment.Segment
}

func (e *sliceEmitter) emit(seg segment.Segment) error {
	e.segments = append(e.segments, seg)
	return nil
}

func (e *sliceEmitter) checkCancel() error { return nil }

// ParseSegments parses data in one pass and returns its full segment stream
// (spec §4.3's sync parser).
func ParseSegments(data []byte, cfg Config) ([]segment.Segment, error) {
	return parseWithReader(reader.NewSpanReader(data), cfg)
}

// ParseSegmentsReader parses r to completion, buffering as needed; for large
// inputs prefer ParseSegmentsAsync so the whole document need not be
// materialized in memory at once.
func ParseSegmentsReader(r io.Reader, cfg Config) ([]segment.Segment, error) {
	return parseWithReader(reader.NewStreamReader(r), cfg)
}

func parseWithReader(r reader.Reader, cfg Config) ([]segment.Segment, error) {
	lc := cfg.Lexer
	lc.EmitCommentTokens = lc.EmitCommentTokens || cfg.EmitCommentSegments
	lex := lexer.New(r, lc)
	out := &sliceEmitter{}
	c := newCore(lex, cfg, out)
	if err := c.parseDocument(); err != nil {
		return nil, err
	}
	return out.segments, nil
}
