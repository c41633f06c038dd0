package parse

import (
	"context"
	"io"

	"github.com/afrowaveltd/ajis-go/ajiserr"
	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/reader"
	"github.com/afrowaveltd/ajis-go/segment"
)

// segResult is one item flowing from the producer goroutine to Next.
type segResult struct {
	seg segment.Segment
	err error
}

// progressInterval is how many emitted segments pass between OnProgress
// notifications (spec §4.4's "periodic progress/milestone events"): frequent
// enough for a host polling a large async parse to see movement, not so
// frequent it dominates the emit path.
const progressInterval = 64

// chanEmitter streams segments to the async parser's pull channel, treating
// the producer's own context cancellation as the checkCancel hook (spec
// §4.4: "cancellation is checked inside the member/element loops"). It also
// reports periodic Progress events to the configured EventSink, since the
// reader it lexes from is the only place that knows how many bytes have been
// consumed so far.
type chanEmitter struct {
	ctx     context.Context
	ch      chan segResult
	r       reader.Reader
	sink    EventSink
	emitted int
}

func (e *chanEmitter) emit(seg segment.Segment) error {
	select {
	case e.ch <- segResult{seg: seg}:
		e.emitted++
		if e.sink != nil && e.emitted%progressInterval == 0 {
			e.sink.OnProgress("parsing", e.r.Position().Offset, nil)
		}
		return nil
	case <-e.ctx.Done():
		return ajiserr.New(ajiserr.Cancelled, seg.Position, "parser.cancelled")
	}
}

func (e *chanEmitter) checkCancel() error {
	select {
	case <-e.ctx.Done():
		return ajiserr.New(ajiserr.Cancelled, reader.TextPosition{}, "parser.cancelled")
	default:
		return nil
	}
}

// AsyncParser is the pull-based parser of spec §4.4: a producer goroutine
// walks the same grammar as ParseSegments but yields one segment at a time
// through Next, with a bounded amount of work performed between yields.
type AsyncParser struct {
	ch     chan segResult
	ctx    context.Context
	cancel context.CancelFunc
	done   bool
}

// ParseSegmentsAsync starts parsing r in a background goroutine and returns a
// parser that yields its segment stream one item at a time via Next.
// Cancelling ctx unblocks any in-flight emit and causes the next Next call
// to return a Cancelled error.
func ParseSegmentsAsync(ctx context.Context, r io.Reader, cfg Config) *AsyncParser {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan segResult)
	p := &AsyncParser{ch: ch, ctx: ctx, cancel: cancel}

	go func() {
		defer close(ch)
		sr := reader.NewStreamReader(r)
		lc := cfg.Lexer
		lc.EmitCommentTokens = lc.EmitCommentTokens || cfg.EmitCommentSegments
		lex := lexer.New(sr, lc)
		out := &chanEmitter{ctx: ctx, ch: ch, r: sr, sink: cfg.EventSink}
		c := newCore(lex, cfg, out)
		if err := c.parseDocument(); err != nil {
			select {
			case ch <- segResult{err: err}:
			case <-ctx.Done():
			}
			return
		}
		if cfg.EventSink != nil {
			cfg.EventSink.OnMilestone("complete")
		}
	}()

	return p
}

// Next blocks until the next segment is available, the stream completes
// (ok=false, err=nil), or ctx is cancelled.
func (p *AsyncParser) Next(ctx context.Context) (segment.Segment, bool, error) {
	if p.done {
		return segment.Segment{}, false, nil
	}
	if ctx.Err() != nil || p.ctx.Err() != nil {
		p.done = true
		p.cancel()
		return segment.Segment{}, false, ajiserr.New(ajiserr.Cancelled, reader.TextPosition{}, "parser.cancelled")
	}
	select {
	case res, chOK := <-p.ch:
		if !chOK {
			p.done = true
			return segment.Segment{}, false, nil
		}
		if res.err != nil {
			p.done = true
			p.cancel()
			return segment.Segment{}, false, res.err
		}
		return res.seg, true, nil
	case <-ctx.Done():
		p.done = true
		p.cancel()
		return segment.Segment{}, false, ajiserr.New(ajiserr.Cancelled, reader.TextPosition{}, "parser.cancelled")
	}
}

// Close releases the producer goroutine if the caller stops pulling before
// the stream completes.
func (p *AsyncParser) Close() {
	p.cancel()
	if !p.done {
		for range p.ch {
		}
		p.done = true
	}
}
