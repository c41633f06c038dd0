// Package ajiserr implements the core's error taxonomy (spec §7): stable
// error codes grouped by family, every instance carrying the TextPosition it
// occurred at.
package ajiserr

import (
	"fmt"

	"github.com/afrowaveltd/ajis-go/reader"
)

// Code is a stable error code. The leading digit (after scaling by 1000)
// identifies the family: 1xxx structure, 2xxx string, 3xxx number,
// 4xxx collection, 5xxx host.
type Code int

const (
	// Structure errors (1000s).
	UnexpectedToken Code = 1000 + iota
	UnexpectedEndOfInput
	MaxDepthExceeded
	MultipleTopLevelValues
)

const (
	// String errors (2000s).
	UnterminatedString Code = 2000 + iota
	InvalidEscapeSequence
	UnterminatedBlockComment
	ControlCharacterInString
)

const (
	// Number errors (3000s).
	InvalidNumber Code = 3000 + iota
	InvalidBasePrefix
	InvalidDigitSeparator
)

const (
	// Collection errors (4000s).
	DuplicateKey Code = 4000 + iota
	TrailingCommaNotAllowed
)

const (
	// Host errors (5000s).
	InputNotSupported Code = 5000 + iota
	VisitorAbort
	MaxTokenBytesExceeded
	Cancelled
)

// String returns the stable symbolic name used in messages and tests.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

var codeNames = map[Code]string{
	UnexpectedToken:          "UnexpectedToken",
	UnexpectedEndOfInput:     "UnexpectedEndOfInput",
	MaxDepthExceeded:         "MaxDepthExceeded",
	MultipleTopLevelValues:   "MultipleTopLevelValues",
	UnterminatedString:       "UnterminatedString",
	InvalidEscapeSequence:    "InvalidEscapeSequence",
	UnterminatedBlockComment: "UnterminatedBlockComment",
	ControlCharacterInString: "ControlCharacterInString",
	InvalidNumber:            "InvalidNumber",
	InvalidBasePrefix:        "InvalidBasePrefix",
	InvalidDigitSeparator:    "InvalidDigitSeparator",
	DuplicateKey:             "DuplicateKey",
	TrailingCommaNotAllowed:  "TrailingCommaNotAllowed",
	InputNotSupported:        "InputNotSupported",
	VisitorAbort:             "VisitorAbort",
	MaxTokenBytesExceeded:    "MaxTokenBytesExceeded",
	Cancelled:                "Cancelled",
}

// AjisError is the single error type raised by the lexer, parser, and
// transform layers. Every instance carries the position it was raised at;
// TextKey resolves to a host-supplied message when a text provider is
// configured, or the key itself otherwise (spec §6's text_provider).
type AjisError struct {
	Code     Code
	Position reader.TextPosition
	TextKey  string
	// Token/Expected describe the offending token for parser-level
	// UnexpectedToken errors; both empty otherwise.
	Token    string
	Expected []string
	cause    error
}

func (e *AjisError) Error() string {
	if len(e.Expected) > 0 {
		return fmt.Sprintf("%s at %d:%d: got %s, expected one of %v", e.Code, e.Position.Line, e.Position.Column, e.Token, e.Expected)
	}
	return fmt.Sprintf("%s at %d:%d: %s", e.Code, e.Position.Line, e.Position.Column, e.TextKey)
}

func (e *AjisError) Unwrap() error {
	return e.cause
}

// Resolve returns the message for a key via provider, or the key itself when
// provider is nil (spec §6 text_provider / §7 "opaque keys").
func Resolve(provider func(key string) (string, bool), key string) string {
	if provider == nil {
		return key
	}
	if msg, ok := provider(key); ok {
		return msg
	}
	return key
}

func New(code Code, pos reader.TextPosition, textKey string) *AjisError {
	return &AjisError{Code: code, Position: pos, TextKey: textKey}
}

func Wrap(code Code, pos reader.TextPosition, textKey string, cause error) *AjisError {
	return &AjisError{Code: code, Position: pos, TextKey: textKey, cause: cause}
}

// UnexpectedTokenErr builds the parser's UnexpectedToken error naming the
// offending token kind and the set of expected kinds (spec §4.3).
func UnexpectedTokenErr(pos reader.TextPosition, got string, expected []string) *AjisError {
	return &AjisError{Code: UnexpectedToken, Position: pos, TextKey: "parser.unexpectedToken", Token: got, Expected: expected}
}
