package lexer

import (
	"github.com/afrowaveltd/ajis-go/ajiserr"
	"github.com/afrowaveltd/ajis-go/reader"
)

// scanNumber scans a numeric literal. sign is 0 if no sign was present, or
// '+'/'-' if the caller already consumed a leading sign byte.
func (l *Lexer) scanNumber(pos reader.TextPosition, sign byte) (Token, error) {
	var buf []byte
	if sign != 0 {
		buf = append(buf, sign)
	}

	if sign == '-' || sign == 0 {
		if nb, ok := l.peek(); ok && (nb == 'I') && l.cfg.Numbers.AllowNanAndInfinity {
			if l.matchLiteral("Infinity") {
				buf = append(buf, []byte("Infinity")...)
				return l.finishNumber(pos, buf)
			}
			return Token{}, ajiserr.New(ajiserr.InvalidNumber, pos, "lexer.invalidNumber")
		}
	}

	b, ok := l.peek()
	if !ok || !(isDigit(b) || b == '.') {
		return Token{}, ajiserr.New(ajiserr.InvalidNumber, pos, "lexer.invalidNumber")
	}

	if b == '0' {
		l.read()
		buf = append(buf, '0')
		if nb, ok := l.peek(); ok && l.cfg.Numbers.EnableBasePrefixes {
			switch nb {
			case 'x', 'X':
				l.read()
				buf = append(buf, nb)
				digits, err := l.scanHexDigits(pos)
				if err != nil {
					return Token{}, err
				}
				if len(digits) == 0 {
					return Token{}, ajiserr.New(ajiserr.InvalidBasePrefix, pos, "lexer.invalidBasePrefix")
				}
				buf = append(buf, digits...)
				return l.finishNumber(pos, buf)
			case 'o', 'O':
				l.read()
				buf = append(buf, nb)
				digits, err := l.scanBaseDigits(pos, isOctalDigit, 3, 3)
				if err != nil {
					return Token{}, err
				}
				if len(digits) == 0 {
					return Token{}, ajiserr.New(ajiserr.InvalidBasePrefix, pos, "lexer.invalidBasePrefix")
				}
				buf = append(buf, digits...)
				return l.finishNumber(pos, buf)
			case 'b', 'B':
				l.read()
				buf = append(buf, nb)
				digits, err := l.scanBaseDigits(pos, isBinaryDigit, 4, 4)
				if err != nil {
					return Token{}, err
				}
				if len(digits) == 0 {
					return Token{}, ajiserr.New(ajiserr.InvalidBasePrefix, pos, "lexer.invalidBasePrefix")
				}
				buf = append(buf, digits...)
				return l.finishNumber(pos, buf)
			}
		}
		if nb, ok := l.peek(); ok && isDigit(nb) {
			return Token{}, ajiserr.New(ajiserr.InvalidNumber, pos, "lexer.leadingZero")
		}
	} else if b != '.' {
		digits, err := l.scanBaseDigits(pos, isDigit, 3, 0)
		if err != nil {
			return Token{}, err
		}
		buf = append(buf, digits...)
	}

	if nb, ok := l.peek(); ok && nb == '.' {
		l.read()
		buf = append(buf, '.')
		frac, ok := l.peek()
		if !ok || !isDigit(frac) {
			return Token{}, ajiserr.New(ajiserr.InvalidNumber, pos, "lexer.missingFractionDigits")
		}
		digits, err := l.scanBaseDigits(pos, isDigit, 3, 0)
		if err != nil {
			return Token{}, err
		}
		buf = append(buf, digits...)
	}

	if nb, ok := l.peek(); ok && (nb == 'e' || nb == 'E') {
		l.read()
		buf = append(buf, nb)
		if sb, ok := l.peek(); ok && (sb == '+' || sb == '-') {
			l.read()
			buf = append(buf, sb)
		}
		expDigit, ok := l.peek()
		if !ok || !isDigit(expDigit) {
			return Token{}, ajiserr.New(ajiserr.InvalidNumber, pos, "lexer.missingExponentDigits")
		}
		digits, err := l.scanBaseDigits(pos, isDigit, 3, 0)
		if err != nil {
			return Token{}, err
		}
		buf = append(buf, digits...)
	}

	return l.finishNumber(pos, buf)
}

func (l *Lexer) finishNumber(pos reader.TextPosition, buf []byte) (Token, error) {
	if nb, ok := l.peek(); ok && isLetterStart(nb) {
		return Token{}, ajiserr.New(ajiserr.InvalidNumber, pos, "lexer.letterAfterNumber")
	}
	if max := l.cfg.Numbers.MaxTokenBytes; max > 0 && len(buf) > max {
		return Token{}, ajiserr.New(ajiserr.MaxTokenBytesExceeded, pos, "lexer.maxTokenBytesExceeded")
	}
	return Token{Kind: TokNumber, Position: pos, Text: buf}, nil
}

// matchLiteral consumes exactly len(lit) bytes matching lit, or reports no
// match. "Infinity" is the only multi-byte literal scanned this way and it
// shares no prefix with any other valid lexeme, so a mismatch here always
// indicates malformed input that the caller reports as InvalidNumber.
func (l *Lexer) matchLiteral(lit string) bool {
	for i := 0; i < len(lit); i++ {
		b, ok := l.peek()
		if !ok || b != lit[i] {
			return false
		}
		l.read()
	}
	return true
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }
func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }

// scanBaseDigits scans a run of digits (matching isDigitFn) optionally
// interleaved with underscore separators, enforcing no leading/trailing/
// consecutive underscores and, when configured, that every group but
// possibly the leftmost has exactly maxGroup digits.
func (l *Lexer) scanBaseDigits(pos reader.TextPosition, isDigitFn func(byte) bool, maxGroup int, _ int) ([]byte, error) {
	buf, groups, err := l.scanDigitGroups(pos, isDigitFn)
	if err != nil {
		return nil, err
	}
	if l.cfg.Numbers.EnforceSeparatorGroupingRules && len(groups) > 1 {
		if err := validateUniformGroups(pos, groups, maxGroup); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// scanHexDigits scans hex digits, enforcing that non-leftmost groups are
// uniformly sized 2 or 4 (spec §4.2/§9 open question, resolved to uniform
// group size with a possibly-shorter leading group).
func (l *Lexer) scanHexDigits(pos reader.TextPosition) ([]byte, error) {
	buf, groups, err := l.scanDigitGroups(pos, isHexDigit)
	if err != nil {
		return nil, err
	}
	if l.cfg.Numbers.EnforceSeparatorGroupingRules && len(groups) > 1 {
		target := len(groups[len(groups)-1])
		if target != 2 && target != 4 {
			return nil, ajiserr.New(ajiserr.InvalidDigitSeparator, pos, "lexer.badDigitGrouping")
		}
		if err := validateUniformGroups(pos, groups, target); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (l *Lexer) scanDigitGroups(pos reader.TextPosition, isDigitFn func(byte) bool) ([]byte, [][]byte, error) {
	var buf []byte
	lastWasUnderscore := false
	var groups [][]byte
	var cur []byte

	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if isDigitFn(b) {
			l.read()
			buf = append(buf, b)
			cur = append(cur, b)
			lastWasUnderscore = false
			continue
		}
		if b == '_' && l.cfg.Numbers.EnableDigitSeparators {
			if len(buf) == 0 || lastWasUnderscore {
				break
			}
			l.read()
			buf = append(buf, b)
			groups = append(groups, cur)
			cur = nil
			lastWasUnderscore = true
			continue
		}
		break
	}
	if lastWasUnderscore {
		return nil, nil, ajiserr.New(ajiserr.InvalidDigitSeparator, pos, "lexer.trailingDigitSeparator")
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return buf, groups, nil
}

// validateUniformGroups enforces spec §4.2's grouping rule: every group but
// possibly the leftmost must have exactly target digits.
func validateUniformGroups(pos reader.TextPosition, groups [][]byte, target int) error {
	for i, g := range groups {
		if i == 0 {
			if len(g) == 0 || len(g) > target {
				return ajiserr.New(ajiserr.InvalidDigitSeparator, pos, "lexer.badDigitGrouping")
			}
			continue
		}
		if len(g) != target {
			return ajiserr.New(ajiserr.InvalidDigitSeparator, pos, "lexer.badDigitGrouping")
		}
	}
	return nil
}
