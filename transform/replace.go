package transform

import "github.com/afrowaveltd/ajis-go/segment"

// ReplacePropertyValue drops the existing value subsequence of every
// PropertyName(name) and splices in replacement, a valid balanced value
// subsequence, depth-adjusted to the replaced position (spec §4.5).
func ReplacePropertyValue(seq []segment.Segment, name string, replacement []segment.Segment) []segment.Segment {
	var out []segment.Segment
	i := 0
	for i < len(seq) {
		s := seq[i]
		out = append(out, s)
		i++
		if s.Kind != segment.PropertyName || s.Slice.String() != name {
			continue
		}
		for i < len(seq) && (seq[i].Kind == segment.Comment || seq[i].Kind == segment.Directive) {
			out = append(out, seq[i])
			i++
		}
		if i >= len(seq) {
			continue
		}
		end := valueSpan(seq, i)
		out = append(out, adjustDepth(replacement, s.Depth)...)
		i = end
	}
	return out
}
