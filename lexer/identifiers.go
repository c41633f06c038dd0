package lexer

import (
	"github.com/afrowaveltd/ajis-go/ajiserr"
	"github.com/afrowaveltd/ajis-go/reader"
)

// scanIdentifierOrLiteral assembles an [A-Za-z_$][A-Za-z0-9_$]* run and
// reclassifies it per spec §4.2: true/false/null become literal tokens,
// NaN/Infinity become Number tokens when enabled, text shaped like a typed
// literal ([A-Z]+[0-9]+) becomes a Number token with the typed flag,
// otherwise it is an Identifier token (rejected when unquoted identifiers
// are not in effect for this mode).
func (l *Lexer) scanIdentifierOrLiteral(pos reader.TextPosition) (Token, error) {
	var buf []byte
	for {
		b, ok := l.peek()
		if !ok || !isIdentChar(b) {
			break
		}
		l.read()
		buf = append(buf, b)
	}
	text := string(buf)

	switch text {
	case "true":
		return Token{Kind: TokTrue, Position: pos}, nil
	case "false":
		return Token{Kind: TokFalse, Position: pos}, nil
	case "null":
		return Token{Kind: TokNull, Position: pos}, nil
	}

	if (text == "NaN" || text == "Infinity") && l.cfg.Numbers.AllowNanAndInfinity {
		return Token{Kind: TokNumber, Position: pos, Text: buf}, nil
	}

	if isTypedLiteralShape(buf) {
		return Token{Kind: TokNumber, Position: pos, Text: buf}, nil
	}

	if l.identifiersEffective() {
		return Token{Kind: TokIdentifier, Position: pos, Text: buf}, nil
	}
	return Token{}, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.identifiersNotAllowed")
}

func (l *Lexer) identifiersEffective() bool {
	return l.cfg.Mode == Lax || l.cfg.Strings.AllowUnquotedPropertyNames
}

// isTypedLiteralShape reports whether text matches ^[A-Z]+[0-9]+$.
func isTypedLiteralShape(text []byte) bool {
	i := 0
	for i < len(text) && text[i] >= 'A' && text[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return false
	}
	digitsStart := i
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	return i > digitsStart && i == len(text)
}
