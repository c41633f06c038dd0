package transform

import (
	"strings"

	"github.com/afrowaveltd/ajis-go/segment"
)

// DirectiveScope classifies where a Directive segment sits relative to the
// document's value (spec §4.5).
type DirectiveScope int

const (
	// Document directives precede any value; they apply to the whole document.
	Document DirectiveScope = iota
	// Target directives sit immediately before a value or property name and
	// bind to that node's path.
	Target
	// Trailer directives follow the last value.
	Trailer
)

func (s DirectiveScope) String() string {
	switch s {
	case Document:
		return "Document"
	case Target:
		return "Target"
	case Trailer:
		return "Trailer"
	default:
		return "Unknown"
	}
}

// BoundDirective is one Directive segment together with its resolved scope
// and, for Target directives, the dot-path of the node it binds to.
type BoundDirective struct {
	Segment    segment.Segment
	Scope      DirectiveScope
	TargetPath string
}

// BindDirectives associates each Directive segment in seq with a scope and,
// for Target directives, a JSON-pointer-style path (spec §4.5). This is a
// read-only analysis pass: it does not alter seq.
func BindDirectives(seq []segment.Segment) []BoundDirective {
	lastNonMeta := -1
	for i, s := range seq {
		if s.Kind != segment.Comment && s.Kind != segment.Directive {
			lastNonMeta = i
		}
	}

	var out []BoundDirective
	var stack []string
	pendingName, havePending := "", false
	sawValue := false

	for i, s := range seq {
		switch s.Kind {
		case segment.Directive:
			bd := BoundDirective{Segment: s}
			switch {
			case !sawValue:
				bd.Scope = Document
			case i > lastNonMeta:
				bd.Scope = Trailer
			default:
				bd.Scope = Target
				bd.TargetPath = targetPathAfter(seq, i, stack, pendingName, havePending)
			}
			out = append(out, bd)
		case segment.PropertyName:
			pendingName, havePending = s.Slice.String(), true
		case segment.EnterContainer:
			sawValue = true
			if havePending {
				stack = append(stack, pendingName)
			} else {
				stack = append(stack, "")
			}
			havePending = false
		case segment.ExitContainer:
			stack = stack[:len(stack)-1]
		case segment.Value:
			sawValue = true
			havePending = false
		}
	}
	return out
}

// targetPathAfter derives the path of whichever node immediately follows
// index i (skipping further meta segments): the enclosing property's path
// extended with the next PropertyName, or the enclosing path itself when the
// next node is an unnamed value (an array item, or the root value).
func targetPathAfter(seq []segment.Segment, i int, stack []string, pendingName string, havePending bool) string {
	j := skipMeta(seq, i+1)
	if j >= len(seq) {
		return joinPath(stack)
	}
	if seq[j].Kind == segment.PropertyName {
		return joinPath(append(append([]string{}, stack...), seq[j].Slice.String()))
	}
	if havePending {
		return joinPath(append(append([]string{}, stack...), pendingName))
	}
	return joinPath(stack)
}

// joinPath renders a dot-path from path components, as produced by namedPath
// (drop.go), e.g. ["a", "b"] -> "$.a.b".
func joinPath(parts []string) string {
	named := namedPath(parts)
	if len(named) == 0 {
		return "$"
	}
	return "$." + strings.Join(named, ".")
}
