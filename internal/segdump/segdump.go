// Package segdump pretty-prints a segment sequence for test-failure
// diagnostics, the way database/mysql/parser.go reaches for pp.Println to
// inspect a parsed tree during debugging.
package segdump

import (
	"strings"

	"github.com/afrowaveltd/ajis-go/segment"
	"github.com/k0kubun/pp/v3"
)

// Dump renders seq as an indented, one-segment-per-line listing suitable for
// t.Log output: kind, depth, and payload where present.
func Dump(seq []segment.Segment) string {
	var b strings.Builder
	for _, s := range seq {
		b.WriteString(strings.Repeat("  ", int(s.Depth)))
		b.WriteString(s.Kind.String())
		switch s.Kind {
		case segment.EnterContainer, segment.ExitContainer:
			b.WriteString(" ")
			b.WriteString(s.ContainerKind.String())
		case segment.PropertyName, segment.Comment, segment.Directive:
			b.WriteString(" ")
			b.WriteString(s.Slice.String())
		case segment.Value:
			b.WriteString(" ")
			b.WriteString(s.ValueKind.String())
			if s.HasSlice() && s.ValueKind != segment.Boolean {
				b.WriteString("=")
				b.WriteString(s.Slice.String())
			} else if s.ValueKind == segment.Boolean {
				if s.BoolValue {
					b.WriteString("=true")
				} else {
					b.WriteString("=false")
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Print writes seq to stdout via pp, for ad-hoc use when a failing test needs
// a fuller struct-level view than Dump's compact listing gives.
func Print(seq []segment.Segment) {
	pp.Println(seq)
}
