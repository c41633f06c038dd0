// Package parse implements the L2 layer (spec §4.3, §4.4): a recursive-
// descent grammar shared by a materializing sync parser and a pull-based
// async parser, both emitting the flat segment.Segment stream of spec §3.
package parse

import (
	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/reader"
)

// Config is the parser-level option surface: the lexer's own Config plus
// the structural limits and toggles of spec §6's Settings object that the
// parser (rather than the lexer) is responsible for enforcing.
type Config struct {
	Lexer                 lexer.Config
	MaxDepth              uint32
	AllowDuplicateKeys    bool
	AllowTrailingCommas   bool
	EmitCommentSegments   bool
	EmitDirectiveSegments bool
	EventSink             EventSink
}

// DefaultConfig returns the Ajis-mode default parser configuration.
func DefaultConfig() Config {
	return Config{
		Lexer:               lexer.DefaultConfig(),
		MaxDepth:            256,
		AllowDuplicateKeys:  false,
		AllowTrailingCommas: false,
	}
}

// ApplyMode overrides parser-level options for json/lax the way
// lexer.Config.ApplyMode overrides lexer-level options (spec §6).
func (c Config) ApplyMode(mode lexer.Mode) Config {
	c.Lexer = c.Lexer.ApplyMode(mode)
	switch mode {
	case lexer.Json:
		c.AllowTrailingCommas = false
	case lexer.Lax:
		c.AllowTrailingCommas = true
	}
	return c
}

// EventSink receives optional diagnostics and progress notifications (spec
// §4.4, §7): duplicate-key diagnostics from either parser, and periodic
// progress/milestone events from the async parser only.
type EventSink interface {
	OnDuplicateKey(name string, pos reader.TextPosition)
	OnProgress(phase string, processedBytes uint64, totalBytes *uint64)
	OnMilestone(phase string)
}
