package lexer

import "github.com/afrowaveltd/ajis-go/reader"

// TokenKind identifies the lexical class of a Token (spec §3's Token shape).
type TokenKind int

const (
	TokLBrace TokenKind = iota
	TokRBrace
	TokLBracket
	TokRBracket
	TokColon
	TokComma
	TokString
	TokNumber
	TokIdentifier
	TokTrue
	TokFalse
	TokNull
	TokDirective
	TokComment
	TokEnd
)

func (k TokenKind) String() string {
	names := [...]string{
		"{", "}", "[", "]", ":", ",",
		"String", "Number", "Identifier", "true", "false", "null",
		"Directive", "Comment", "end",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Token is one lexical unit. Text is present for String, Number, Identifier,
// Directive, and Comment tokens; nil for punctuation and literals.
//
// HadEscape records whether a string token's source text contained a `\`
// escape sequence. It exists separately from Text because, when
// PreserveStringEscapes is false, Text holds the already-decoded payload and
// no longer carries that evidence (spec §4.3's HasEscapes flag rule).
type Token struct {
	Kind      TokenKind
	Position  reader.TextPosition
	Text      []byte
	HadEscape bool
}
