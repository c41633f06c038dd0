package transform

import "github.com/afrowaveltd/ajis-go/segment"

// FilterArrayItems keeps, for every Array container found at any depth, only
// the item subsequences for which predicate holds; brackets are always
// retained and comments/directives between items pass through unconditioned
// (spec §4.5).
func FilterArrayItems(seq []segment.Segment, predicate func([]segment.Segment) bool) []segment.Segment {
	var out []segment.Segment
	i := 0
	for i < len(seq) {
		var chunk []segment.Segment
		chunk, i = filterOne(seq, i, predicate)
		out = append(out, chunk...)
	}
	return out
}

// filterOne filters the single node (leaf segment, or full container
// subsequence) starting at i, returning the filtered output and the index
// just past it.
func filterOne(seq []segment.Segment, i int, predicate func([]segment.Segment) bool) ([]segment.Segment, int) {
	s := seq[i]
	if s.Kind != segment.EnterContainer {
		return []segment.Segment{s}, i + 1
	}

	out := []segment.Segment{s}
	i++
	if s.ContainerKind == segment.Object {
		for i < len(seq) && seq[i].Kind != segment.ExitContainer {
			if seq[i].Kind == segment.Comment || seq[i].Kind == segment.Directive {
				out = append(out, seq[i])
				i++
				continue
			}
			out = append(out, seq[i]) // PropertyName
			i++
			for i < len(seq) && (seq[i].Kind == segment.Comment || seq[i].Kind == segment.Directive) {
				out = append(out, seq[i])
				i++
			}
			var valOut []segment.Segment
			valOut, i = filterOne(seq, i, predicate)
			out = append(out, valOut...)
		}
	} else {
		for i < len(seq) && seq[i].Kind != segment.ExitContainer {
			if seq[i].Kind == segment.Comment || seq[i].Kind == segment.Directive {
				out = append(out, seq[i])
				i++
				continue
			}
			itemStart := i
			itemEnd := valueSpan(seq, i)
			if predicate(seq[itemStart:itemEnd]) {
				kept, _ := filterOne(seq, itemStart, predicate)
				out = append(out, kept...)
			}
			i = itemEnd
		}
	}
	if i < len(seq) {
		out = append(out, seq[i])
		i++
	}
	return out, i
}
