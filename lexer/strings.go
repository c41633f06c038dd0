package lexer

import (
	"log/slog"

	"github.com/afrowaveltd/ajis-go/ajiserr"
	"github.com/afrowaveltd/ajis-go/reader"
)

// scanString scans the body of a string opened by delim (already consumed),
// implementing the mode-sensitive rules of spec §4.2: control bytes and raw
// newlines are errors unless AllowMultiline; escapes are decoded when
// EnableEscapes, else passed through literally; unterminated strings are
// salvaged in Lax mode.
func (l *Lexer) scanString(delim byte, pos reader.TextPosition) (Token, error) {
	var buf []byte
	hadEscape := false

	for {
		b, ok := l.peek()
		if !ok {
			if l.cfg.Mode == Lax {
				slog.Warn("lexer: salvaging unterminated string", "position", pos)
				return Token{Kind: TokString, Position: pos, Text: buf, HadEscape: hadEscape}, nil
			}
			return Token{}, ajiserr.New(ajiserr.UnterminatedString, pos, "lexer.unterminatedString")
		}
		if b == delim {
			l.read()
			return Token{Kind: TokString, Position: pos, Text: buf, HadEscape: hadEscape}, nil
		}
		if b == '\\' {
			l.read()
			hadEscape = true
			decoded, consumed, err := l.scanEscape(pos)
			if err != nil {
				return Token{}, err
			}
			if l.cfg.Strings.EnableEscapes && !l.cfg.PreserveStringEscapes {
				buf = append(buf, decoded...)
			} else {
				buf = append(buf, '\\')
				buf = append(buf, consumed...)
			}
			continue
		}
		if b < 0x20 {
			if !l.cfg.Strings.AllowMultiline {
				return Token{}, ajiserr.New(ajiserr.ControlCharacterInString, pos, "lexer.controlCharacterInString")
			}
		}
		l.read()
		buf = append(buf, b)
		if l.maxStringBytesExceeded(len(buf)) {
			return Token{}, ajiserr.New(ajiserr.MaxTokenBytesExceeded, pos, "lexer.maxStringBytesExceeded")
		}
	}
}

func (l *Lexer) maxStringBytesExceeded(n int) bool {
	max := l.cfg.Strings.MaxStringBytes
	return max > 0 && n > max
}

// scanEscape consumes one escape body (everything after the backslash) and
// returns both its decoded form and its raw source form.
func (l *Lexer) scanEscape(pos reader.TextPosition) (decoded []byte, raw []byte, err error) {
	b, ok := l.peek()
	if !ok {
		return nil, nil, ajiserr.New(ajiserr.UnterminatedString, pos, "lexer.unterminatedString")
	}

	if !l.cfg.Strings.EnableEscapes {
		// Escapes disabled: pass through literally, no validation.
		l.read()
		return []byte{'\\', b}, []byte{b}, nil
	}

	switch b {
	case '"', '\'', '\\', '/':
		l.read()
		return []byte{b}, []byte{b}, nil
	case 'b':
		l.read()
		return []byte{0x08}, []byte{b}, nil
	case 'f':
		l.read()
		return []byte{0x0C}, []byte{b}, nil
	case 'n':
		l.read()
		return []byte{'\n'}, []byte{b}, nil
	case 'r':
		l.read()
		return []byte{'\r'}, []byte{b}, nil
	case 't':
		l.read()
		return []byte{'\t'}, []byte{b}, nil
	case 'u':
		l.read()
		return l.scanUnicodeEscape(pos)
	default:
		return nil, nil, ajiserr.New(ajiserr.InvalidEscapeSequence, pos, "lexer.invalidEscapeSequence")
	}
}

func (l *Lexer) scanUnicodeEscape(pos reader.TextPosition) (decoded []byte, raw []byte, err error) {
	var hex [4]byte
	n := 0
	for n < 4 {
		b, ok := l.peek()
		if !ok || !isHexDigit(b) {
			break
		}
		l.read()
		hex[n] = b
		n++
	}
	if n < 4 {
		if l.cfg.Mode == Lax {
			// Treat \u as a literal 'u'; the consumed hex-looking bytes were
			// already read and become ordinary string content.
			return append([]byte{'u'}, hex[:n]...), append([]byte{'u'}, hex[:n]...), nil
		}
		return nil, nil, ajiserr.New(ajiserr.InvalidEscapeSequence, pos, "lexer.invalidUnicodeEscape")
	}
	cp := hexValue(hex[0])<<12 | hexValue(hex[1])<<8 | hexValue(hex[2])<<4 | hexValue(hex[3])
	return encodeUTF16Unit(cp), append([]byte{'u'}, hex[:]...), nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

// encodeUTF16Unit encodes a single \uXXXX code unit as UTF-8. Surrogate pairs
// are not combined; each unit is encoded independently (spec §4.2 does not
// describe surrogate-pair joining).
func encodeUTF16Unit(cp int) []byte {
	switch {
	case cp < 0x80:
		return []byte{byte(cp)}
	case cp < 0x800:
		return []byte{
			byte(0xC0 | (cp >> 6)),
			byte(0x80 | (cp & 0x3F)),
		}
	default:
		return []byte{
			byte(0xE0 | (cp >> 12)),
			byte(0x80 | ((cp >> 6) & 0x3F)),
			byte(0x80 | (cp & 0x3F)),
		}
	}
}
