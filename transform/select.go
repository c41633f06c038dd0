package transform

import "github.com/afrowaveltd/ajis-go/segment"

// SelectRootPropertyValue returns the bare value subsequence of the
// top-level property name, stripping the outer object and renormalizing
// depth to start at 0; nil if seq's root is not an object or has no such
// property (spec §4.5).
func SelectRootPropertyValue(seq []segment.Segment, name string) []segment.Segment {
	_, valStart, valEnd, ok := findRootProperty(seq, name)
	if !ok {
		return nil
	}
	return adjustDepth(seq[valStart:valEnd], 0)
}

// SelectRootPropertyWrapped returns a fresh single-member object containing
// only that property (spec §4.5).
func SelectRootPropertyWrapped(seq []segment.Segment, name string) []segment.Segment {
	nameIdx, valStart, valEnd, ok := findRootProperty(seq, name)
	if !ok {
		return nil
	}
	nameSeg := seq[nameIdx]
	value := adjustDepth(seq[valStart:valEnd], 1)

	out := make([]segment.Segment, 0, len(value)+3)
	out = append(out, segment.Segment{Kind: segment.EnterContainer, ContainerKind: segment.Object, Position: nameSeg.Position, Depth: 0})
	out = append(out, segment.Segment{Kind: segment.PropertyName, Slice: nameSeg.Slice, Position: nameSeg.Position, Depth: 1})
	out = append(out, value...)
	out = append(out, segment.Segment{Kind: segment.ExitContainer, ContainerKind: segment.Object, Position: nameSeg.Position, Depth: 0})
	return out
}

// findRootProperty locates the direct (depth-1) member of seq's root object
// whose name equals name, returning the name's index and the [start,end) of
// its value subsequence.
func findRootProperty(seq []segment.Segment, name string) (nameIdx, valStart, valEnd int, ok bool) {
	if len(seq) == 0 || seq[0].Kind != segment.EnterContainer || seq[0].ContainerKind != segment.Object {
		return 0, 0, 0, false
	}
	i := skipMeta(seq, 1)
	for i < len(seq) && seq[i].Kind != segment.ExitContainer {
		if seq[i].Kind != segment.PropertyName {
			i++
			continue
		}
		nIdx := i
		j := skipMeta(seq, i+1)
		end := valueSpan(seq, j)
		if seq[nIdx].Slice.String() == name {
			return nIdx, j, end, true
		}
		i = skipMeta(seq, end)
	}
	return 0, 0, 0, false
}
