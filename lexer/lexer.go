// Package lexer implements the L1 layer (spec §4.2): a mode-sensitive
// tokenizer over a reader.Reader, one token per call to Next.
package lexer

import (
	"github.com/afrowaveltd/ajis-go/ajiserr"
	"github.com/afrowaveltd/ajis-go/reader"
)

// Lexer turns a byte reader into a stream of Tokens.
type Lexer struct {
	r      reader.Reader
	cfg    Config
	peeked bool
	pb     byte
	pbOK   bool
}

// New creates a Lexer over r with the given configuration.
func New(r reader.Reader, cfg Config) *Lexer {
	return &Lexer{r: r, cfg: cfg}
}

func (l *Lexer) peek() (byte, bool) {
	if !l.peeked {
		l.pb, l.pbOK = l.r.Peek()
		l.peeked = true
	}
	return l.pb, l.pbOK
}

func (l *Lexer) read() (byte, bool) {
	b, ok := l.peek()
	l.peeked = false
	if ok {
		l.r.Read()
	}
	return b, ok
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isLetterStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
}
func isIdentChar(b byte) bool { return isLetterStart(b) || isDigit(b) }

// Next scans and returns the next token. At end of input it returns a TokEnd
// token rather than an error.
func (l *Lexer) Next() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok {
			return Token{Kind: TokEnd, Position: l.r.Position()}, nil
		}
		if isSpace(b) {
			l.read()
			continue
		}
		if b == '#' && l.r.Position().Column == 1 && l.cfg.AllowDirectives && l.cfg.Mode != Json {
			return l.scanDirective()
		}
		if b == '/' {
			tok, handled, err := l.tryScanComment()
			if err != nil {
				return Token{}, err
			}
			if handled {
				if tok.Kind == TokComment && !l.cfg.EmitCommentTokens {
					continue
				}
				return tok, nil
			}
		}
		break
	}

	pos := l.r.Position()
	b, _ := l.peek()

	switch {
	case b == '{':
		l.read()
		return Token{Kind: TokLBrace, Position: pos}, nil
	case b == '}':
		l.read()
		return Token{Kind: TokRBrace, Position: pos}, nil
	case b == '[':
		l.read()
		return Token{Kind: TokLBracket, Position: pos}, nil
	case b == ']':
		l.read()
		return Token{Kind: TokRBracket, Position: pos}, nil
	case b == ':':
		l.read()
		return Token{Kind: TokColon, Position: pos}, nil
	case b == ',':
		l.read()
		return Token{Kind: TokComma, Position: pos}, nil
	case b == '"':
		l.read()
		return l.scanString('"', pos)
	case b == '\'':
		if l.cfg.Mode != Json && (l.cfg.Mode == Lax || l.cfg.Strings.AllowSingleQuotes) {
			l.read()
			return l.scanString('\'', pos)
		}
		return Token{}, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.unexpectedChar")
	case b == '+' && l.numbersAllowLeadingPlus():
		l.read()
		return l.scanNumber(pos, '+')
	case b == '-':
		l.read()
		return l.scanNumber(pos, '-')
	case isDigit(b):
		return l.scanNumber(pos, 0)
	case isLetterStart(b):
		return l.scanIdentifierOrLiteral(pos)
	default:
		l.read()
		return Token{}, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.unexpectedChar")
	}
}

func (l *Lexer) numbersAllowLeadingPlus() bool {
	return l.cfg.Numbers.AllowLeadingPlus
}

// tryScanComment consumes the '/' and, if the next char forms // or /* and
// the mode/options allow it, the rest of the comment. A '/' that does not
// start an allowed comment is an error: no other token begins with '/'.
func (l *Lexer) tryScanComment() (Token, bool, error) {
	pos := l.r.Position()
	l.read() // consume '/'
	nb, ok := l.peek()
	if !ok {
		return Token{}, false, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.unexpectedChar")
	}
	switch nb {
	case '/':
		if l.cfg.Mode == Json || !l.cfg.Comments.AllowLineComments {
			return Token{}, false, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.commentsNotAllowed")
		}
		l.read()
		return l.scanLineComment(pos), true, nil
	case '*':
		if l.cfg.Mode == Json || !l.cfg.Comments.AllowBlockComments {
			return Token{}, false, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.commentsNotAllowed")
		}
		l.read()
		tok, err := l.scanBlockComment(pos)
		return tok, true, err
	default:
		return Token{}, false, ajiserr.New(ajiserr.UnexpectedToken, pos, "lexer.unexpectedChar")
	}
}

func (l *Lexer) scanLineComment(pos reader.TextPosition) Token {
	var buf []byte
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			break
		}
		l.read()
		buf = append(buf, b)
	}
	return Token{Kind: TokComment, Position: pos, Text: buf}
}

func (l *Lexer) scanBlockComment(pos reader.TextPosition) (Token, error) {
	var buf []byte
	depth := 1
	for {
		b, ok := l.peek()
		if !ok {
			if l.cfg.Mode == Lax {
				return Token{Kind: TokComment, Position: pos, Text: buf}, nil
			}
			return Token{}, ajiserr.New(ajiserr.UnterminatedBlockComment, pos, "lexer.unterminatedBlockComment")
		}
		l.read()
		if b == '/' {
			if nb, ok := l.peek(); ok && nb == '*' {
				l.read()
				if l.cfg.Comments.RejectNestedBlockComments {
					return Token{}, ajiserr.New(ajiserr.UnterminatedBlockComment, pos, "lexer.nestedBlockComment")
				}
				depth++
				buf = append(buf, '/', '*')
				continue
			}
			buf = append(buf, b)
			continue
		}
		if b == '*' {
			if nb, ok := l.peek(); ok && nb == '/' {
				l.read()
				depth--
				if depth == 0 {
					return Token{Kind: TokComment, Position: pos, Text: buf}, nil
				}
				buf = append(buf, '*', '/')
				continue
			}
		}
		buf = append(buf, b)
	}
}

func (l *Lexer) scanDirective() (Token, error) {
	pos := l.r.Position()
	l.read() // consume '#'
	var buf []byte
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			break
		}
		l.read()
		buf = append(buf, b)
	}
	return Token{Kind: TokDirective, Position: pos, Text: trimASCIISpace(buf)}, nil
}

func trimASCIISpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}
