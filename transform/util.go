// Package transform implements the L3 segment algebra (spec §4.5): pure
// functions over already-parsed segment.Segment sequences. None of these
// touch a reader or a lexer; they operate purely on the flat stream spec §3
// defines, which is what lets them compose freely with each other and with
// fresh output from the parse package.
package transform

import "github.com/afrowaveltd/ajis-go/segment"

// valueSpan returns the end index (exclusive) of the value subsequence
// starting at i, which must be a Value or EnterContainer segment: a single
// index past a primitive, or past the matching ExitContainer for a
// container (spec §4.5's "skipping a value subsequence").
func valueSpan(seq []segment.Segment, i int) int {
	if i >= len(seq) {
		return i
	}
	if seq[i].Kind != segment.EnterContainer {
		return i + 1
	}
	depth := 0
	for j := i; j < len(seq); j++ {
		switch seq[j].Kind {
		case segment.EnterContainer:
			depth++
		case segment.ExitContainer:
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(seq)
}

// skipMeta advances i past any run of Comment/Directive segments.
func skipMeta(seq []segment.Segment, i int) int {
	for i < len(seq) && (seq[i].Kind == segment.Comment || seq[i].Kind == segment.Directive) {
		i++
	}
	return i
}

// adjustDepth rewrites seq's Depth fields so its minimum depth becomes base,
// preserving relative nesting (spec §4.5: "newly introduced segments
// inherit a neighbouring segment's offset/depth when a transform fabricates
// a wrapper").
func adjustDepth(seq []segment.Segment, base uint32) []segment.Segment {
	if len(seq) == 0 {
		return nil
	}
	min := seq[0].Depth
	for _, s := range seq {
		if s.Depth < min {
			min = s.Depth
		}
	}
	out := make([]segment.Segment, len(seq))
	for i, s := range seq {
		s.Depth = base + (s.Depth - min)
		out[i] = s
	}
	return out
}
