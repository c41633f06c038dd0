package transform

import "github.com/afrowaveltd/ajis-go/segment"

// RenameProperties returns a copy of seq with every PropertyName's text
// rewritten by f; flags are recomputed from the new text (spec §4.5).
func RenameProperties(seq []segment.Segment, f func(string) string) []segment.Segment {
	out := make([]segment.Segment, len(seq))
	for i, s := range seq {
		if s.Kind == segment.PropertyName {
			text := []byte(f(s.Slice.String()))
			s.Slice = segment.Slice{Bytes: text, Flags: nameFlags(text)}
		}
		out[i] = s
	}
	return out
}

func nameFlags(text []byte) segment.Flag {
	var f segment.Flag
	for _, b := range text {
		if b > 0x7F {
			f |= segment.HasNonAscii
			break
		}
	}
	if isIdentifierShape(text) {
		f |= segment.IsIdentifierStyle
	}
	return f
}

func isIdentifierShape(text []byte) bool {
	if len(text) == 0 {
		return false
	}
	for i, b := range text {
		isLetter := (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
		isDigit := b >= '0' && b <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if i > 0 && !isLetter && !isDigit {
			return false
		}
	}
	return true
}
