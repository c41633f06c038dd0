package transform

import (
	"strings"

	"github.com/afrowaveltd/ajis-go/segment"
)

// DropPropertyByName removes every PropertyName matching name, together with
// its value subsequence (and any comments/directives between the name and
// the value), at any depth (spec §4.5).
func DropPropertyByName(seq []segment.Segment, name string) []segment.Segment {
	var out []segment.Segment
	i := 0
	for i < len(seq) {
		s := seq[i]
		if s.Kind == segment.PropertyName && s.Slice.String() == name {
			i = dropMember(seq, i)
			continue
		}
		out = append(out, s)
		i++
	}
	return out
}

// dropMember returns the index just past the value subsequence belonging to
// the PropertyName at i.
func dropMember(seq []segment.Segment, i int) int {
	j := skipMeta(seq, i+1)
	if j >= len(seq) {
		return j
	}
	return valueSpan(seq, j)
}

// DropPropertyByPath removes the name+value for every occurrence whose full
// path from the root equals pointer, a `$`-rooted dot-segment path (spec
// §4.5). Path components come only from object property names; positions
// inside arrays never match since the path grammar has no index syntax.
func DropPropertyByPath(seq []segment.Segment, pointer string) []segment.Segment {
	want := splitPointer(pointer)
	var out []segment.Segment
	var stack []string
	pendingName, havePending := "", false

	i := 0
	for i < len(seq) {
		s := seq[i]
		switch s.Kind {
		case segment.PropertyName:
			name := s.Slice.String()
			full := namedPath(append(append([]string{}, stack...), name))
			if pathEqual(full, want) {
				i = dropMember(seq, i)
				continue
			}
			pendingName, havePending = name, true
			out = append(out, s)
			i++
		case segment.EnterContainer:
			if havePending {
				stack = append(stack, pendingName)
			} else {
				stack = append(stack, "")
			}
			havePending = false
			out = append(out, s)
			i++
		case segment.ExitContainer:
			stack = stack[:len(stack)-1]
			out = append(out, s)
			i++
		default:
			havePending = false
			out = append(out, s)
			i++
		}
	}
	return out
}

func splitPointer(pointer string) []string {
	p := strings.TrimPrefix(pointer, "$")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return nil
	}
	return strings.Split(p, ".")
}

// namedPath drops the placeholder components pushed for unnamed containers
// (the document root, array items), so a property directly under the root
// compares as ["a"] rather than ["", "a"].
func namedPath(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
