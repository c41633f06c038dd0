package parse

import (
	"log/slog"

	"github.com/afrowaveltd/ajis-go/ajiserr"
	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/reader"
	"github.com/afrowaveltd/ajis-go/segment"
)

// emitter abstracts where parsed segments go: sliceEmitter materializes them
// for the sync parser, chanEmitter streams them to the async parser's pull
// channel. checkCancel is a no-op for the sync parser and the cooperative
// cancellation point for the async one (spec §4.4: checked inside the
// member/element loops, not only at the top level).
type emitter interface {
	emit(seg segment.Segment) error
	checkCancel() error
}

// core drives the shared recursive-descent grammar of spec §4.3/§4.4 over a
// lexer.Lexer, independent of how its output is consumed.
type core struct {
	lex      *lexer.Lexer
	cfg      Config
	depth    uint32
	cur      lexer.Token
	out      emitter
	keyStack []map[string]bool
}

func newCore(lex *lexer.Lexer, cfg Config, out emitter) *core {
	return &core{lex: lex, cfg: cfg, out: out}
}

func (p *core) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// parseDocument parses spec §4.3's document := meta* value meta* grammar,
// enforcing the single-top-level-value invariant.
func (p *core) parseDocument() error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.consumeMeta(); err != nil {
		return err
	}
	if err := p.parseValue(); err != nil {
		return err
	}
	if err := p.consumeMeta(); err != nil {
		return err
	}
	if p.cur.Kind != lexer.TokEnd {
		return ajiserr.UnexpectedTokenErr(p.cur.Position, p.cur.Kind.String(), []string{"end of input"})
	}
	return nil
}

// consumeMeta emits Comment/Directive segments (when enabled) for a run of
// meta tokens and advances past them, stopping at the first structural or
// value token.
func (p *core) consumeMeta() error {
	for {
		switch p.cur.Kind {
		case lexer.TokComment:
			if p.cfg.EmitCommentSegments {
				if err := p.out.emit(segment.Segment{
					Kind:     segment.Comment,
					Slice:    segment.Slice{Bytes: p.cur.Text, Flags: sliceFlags(lexer.TokComment, p.cur.Text, false)},
					Position: p.cur.Position,
					Depth:    p.depth,
				}); err != nil {
					return err
				}
			}
		case lexer.TokDirective:
			if p.cfg.EmitDirectiveSegments {
				if err := p.out.emit(segment.Segment{
					Kind:     segment.Directive,
					Slice:    segment.Slice{Bytes: p.cur.Text, Flags: sliceFlags(lexer.TokDirective, p.cur.Text, false)},
					Position: p.cur.Position,
					Depth:    p.depth,
				}); err != nil {
					return err
				}
			}
		default:
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

func (p *core) parseValue() error {
	switch p.cur.Kind {
	case lexer.TokLBrace:
		return p.parseContainer(segment.Object, lexer.TokRBrace)
	case lexer.TokLBracket:
		return p.parseContainer(segment.Array, lexer.TokRBracket)
	case lexer.TokString:
		seg := segment.Segment{
			Kind:      segment.Value,
			ValueKind: segment.String,
			Slice:     segment.Slice{Bytes: p.cur.Text, Flags: sliceFlags(lexer.TokString, p.cur.Text, p.cur.HadEscape)},
			Position:  p.cur.Position,
			Depth:     p.depth,
		}
		if err := p.out.emit(seg); err != nil {
			return err
		}
		return p.advance()
	case lexer.TokNumber:
		seg := segment.Segment{
			Kind:      segment.Value,
			ValueKind: segment.Number,
			Slice:     segment.Slice{Bytes: p.cur.Text, Flags: sliceFlags(lexer.TokNumber, p.cur.Text, false)},
			Position:  p.cur.Position,
			Depth:     p.depth,
		}
		if err := p.out.emit(seg); err != nil {
			return err
		}
		return p.advance()
	case lexer.TokTrue, lexer.TokFalse:
		seg := segment.Segment{
			Kind:      segment.Value,
			ValueKind: segment.Boolean,
			BoolValue: p.cur.Kind == lexer.TokTrue,
			Position:  p.cur.Position,
			Depth:     p.depth,
		}
		if err := p.out.emit(seg); err != nil {
			return err
		}
		return p.advance()
	case lexer.TokNull:
		seg := segment.Segment{Kind: segment.Value, ValueKind: segment.Null, Position: p.cur.Position, Depth: p.depth}
		if err := p.out.emit(seg); err != nil {
			return err
		}
		return p.advance()
	default:
		return ajiserr.UnexpectedTokenErr(p.cur.Position, p.cur.Kind.String(), []string{"{", "[", "String", "Number", "true", "false", "null"})
	}
}

// parseContainer parses both the object and array grammars, which differ
// only in the close token and in whether members carry a name (spec §4.3).
func (p *core) parseContainer(kind segment.ContainerKind, close lexer.TokenKind) error {
	if p.depth >= p.cfg.MaxDepth {
		return ajiserr.New(ajiserr.MaxDepthExceeded, p.cur.Position, "parser.maxDepthExceeded")
	}
	enterPos := p.cur.Position
	if err := p.out.emit(segment.Segment{Kind: segment.EnterContainer, ContainerKind: kind, Position: enterPos, Depth: p.depth}); err != nil {
		return err
	}
	p.depth++
	if kind == segment.Object {
		p.keyStack = append(p.keyStack, map[string]bool{})
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.consumeMeta(); err != nil {
		return err
	}

	if p.cur.Kind != close {
		for {
			if err := p.out.checkCancel(); err != nil {
				return err
			}
			if kind == segment.Object {
				if err := p.parseMember(); err != nil {
					return err
				}
			} else {
				if err := p.parseValue(); err != nil {
					return err
				}
			}
			if err := p.consumeMeta(); err != nil {
				return err
			}
			if p.cur.Kind != lexer.TokComma {
				break
			}
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.consumeMeta(); err != nil {
				return err
			}
			if p.cur.Kind == close {
				if !p.cfg.AllowTrailingCommas {
					return ajiserr.New(ajiserr.TrailingCommaNotAllowed, p.cur.Position, "parser.trailingCommaNotAllowed")
				}
				break
			}
		}
	}

	if p.cur.Kind != close {
		if p.cur.Kind == lexer.TokEnd && p.cfg.Lexer.Mode == lexer.Lax {
			slog.Warn("parser: salvaging missing closing bracket", "expected", close.String(), "position", p.cur.Position)
			p.depth--
			if kind == segment.Object {
				p.keyStack = p.keyStack[:len(p.keyStack)-1]
			}
			return p.out.emit(segment.Segment{Kind: segment.ExitContainer, ContainerKind: kind, Position: p.cur.Position, Depth: p.depth})
		}
		return ajiserr.UnexpectedTokenErr(p.cur.Position, p.cur.Kind.String(), []string{close.String()})
	}
	exitPos := p.cur.Position
	p.depth--
	if kind == segment.Object {
		p.keyStack = p.keyStack[:len(p.keyStack)-1]
	}
	if err := p.advance(); err != nil {
		return err
	}
	return p.out.emit(segment.Segment{Kind: segment.ExitContainer, ContainerKind: kind, Position: exitPos, Depth: p.depth})
}

func (p *core) parseMember() error {
	if p.cur.Kind != lexer.TokString && p.cur.Kind != lexer.TokIdentifier {
		return ajiserr.UnexpectedTokenErr(p.cur.Position, p.cur.Kind.String(), []string{"String", "Identifier"})
	}
	if max := p.cfg.Lexer.Strings.MaxPropertyNameBytes; max > 0 && len(p.cur.Text) > max {
		return ajiserr.New(ajiserr.MaxTokenBytesExceeded, p.cur.Position, "parser.maxPropertyNameBytes")
	}
	seg := segment.Segment{
		Kind:     segment.PropertyName,
		Slice:    segment.Slice{Bytes: p.cur.Text, Flags: sliceFlags(p.cur.Kind, p.cur.Text, p.cur.HadEscape)},
		Position: p.cur.Position,
		Depth:    p.depth,
	}
	if err := p.out.emit(seg); err != nil {
		return err
	}
	if err := p.reportDuplicateKey(string(p.cur.Text), p.cur.Position); err != nil {
		return err
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.consumeMeta(); err != nil {
		return err
	}
	if p.cur.Kind != lexer.TokColon {
		return ajiserr.UnexpectedTokenErr(p.cur.Position, p.cur.Kind.String(), []string{":"})
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.consumeMeta(); err != nil {
		return err
	}
	return p.parseValue()
}

// reportDuplicateKey tracks names seen within the innermost object via a
// stack of sets, one pushed per Object container and popped on its exit
// (parseContainer), so sibling objects at the same nesting depth never
// collide with each other's keys.
func (p *core) reportDuplicateKey(name string, pos reader.TextPosition) error {
	if len(p.keyStack) == 0 {
		return nil
	}
	set := p.keyStack[len(p.keyStack)-1]
	if set[name] {
		slog.Warn("parser: duplicate key", "name", name, "position", pos)
		if p.cfg.EventSink != nil {
			p.cfg.EventSink.OnDuplicateKey(name, pos)
		}
		if !p.cfg.AllowDuplicateKeys {
			return ajiserr.New(ajiserr.DuplicateKey, pos, "parser.duplicateKey")
		}
		return nil
	}
	set[name] = true
	return nil
}

// sliceFlags computes a Slice's classification bits at emission time from
// the originating token (spec §4.3's "flags are derived when the segment is
// produced, not carried on the token").
func sliceFlags(kind lexer.TokenKind, text []byte, hadEscape bool) segment.Flag {
	var f segment.Flag
	if hasNonASCII(text) {
		f |= segment.HasNonAscii
	}
	switch kind {
	case lexer.TokString:
		if hadEscape {
			f |= segment.HasEscapes
		}
	case lexer.TokIdentifier:
		f |= segment.IsIdentifierStyle
	case lexer.TokNumber:
		switch {
		case hasPrefix(text, "0x"), hasPrefix(text, "0X"):
			f |= segment.IsNumberHex
		case hasPrefix(text, "0b"), hasPrefix(text, "0B"):
			f |= segment.IsNumberBinary
		case hasPrefix(text, "0o"), hasPrefix(text, "0O"):
			f |= segment.IsNumberOctal
		case isTypedLiteralShape(text):
			f |= segment.IsNumberTyped
		}
	}
	return f
}

func hasNonASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7F {
			return true
		}
	}
	return false
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

// isTypedLiteralShape mirrors the lexer's own check; duplicated here because
// the parser classifies purely from already-scanned token text and must not
// import lexer-internal helpers.
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
