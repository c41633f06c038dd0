// Package ajis is the public entry point: ParseSegments and
// ParseSegmentsAsync over the layered lexer/parser/segment packages, plus
// the directive pre-scan that lets a document's own leading directives
// override the Settings used to parse it.
package ajis

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/parse"
	"github.com/afrowaveltd/ajis-go/reader"
	"github.com/afrowaveltd/ajis-go/segment"
)

// ParseSegments parses a span of bytes in one pass and returns its full
// segment stream.
func ParseSegments(data []byte, settings Settings) ([]segment.Segment, error) {
	return parse.ParseSegments(trimLeadingBOM(data), settings.toParseConfig())
}

// ParseSegmentsReader parses r to completion, buffering as needed.
func ParseSegmentsReader(r io.Reader, settings Settings) ([]segment.Segment, error) {
	return parse.ParseSegmentsReader(r, settings.toParseConfig())
}

// ParseSegmentsAsync starts parsing r in a background goroutine and returns a
// parser that yields its segment stream one item at a time.
func ParseSegmentsAsync(ctx context.Context, r io.Reader, settings Settings) *parse.AsyncParser {
	return parse.ParseSegmentsAsync(ctx, r, settings.toParseConfig())
}

// ParseSegmentsWithDirectives pre-scans data for document-scope directives
// (those preceding any value) and applies the ones it recognises to settings
// before parsing, then parses the whole span under the resulting Settings.
// This mirrors the "document can steer its own parse" half of the directive
// mechanism; target- and trailer-scope directives still surface as ordinary
// Directive segments for transform.BindDirectives to classify.
func ParseSegmentsWithDirectives(data []byte, settings Settings) ([]segment.Segment, error) {
	data = trimLeadingBOM(data)
	resolved := resolveDocumentDirectives(data, settings)
	return parse.ParseSegments(data, resolved.toParseConfig())
}

// resolveDocumentDirectives runs a lexer-only pass (no parser, no segment
// emission) over data, applying every directive token it finds up to the
// first non-meta token. Malformed or unrecognised key=value tokens are
// ignored rather than erroring: directive pre-scan must never fail a
// document that the main parse would otherwise accept (spec §4.7).
func resolveDocumentDirectives(data []byte, settings Settings) Settings {
	if !settings.AllowDirectives {
		return settings
	}
	cfg := settings.toLexerConfig()
	cfg.EmitCommentTokens = true
	lex := lexer.New(reader.NewSpanReader(data), cfg)

	for {
		tok, err := lex.Next()
		if err != nil {
			// Leave malformed input for the real parser to report.
			return settings
		}
		switch tok.Kind {
		case lexer.TokComment:
			continue
		case lexer.TokDirective:
			settings = applyDocumentDirective(settings, string(tok.Text))
		default:
			return settings
		}
	}
}

// applyDocumentDirective recognises the "ajis <verb> value=<value>" form
// (spec §4.7's verb table; the namespace is compared case-insensitively) and
// returns settings with that verb applied. A directive in another shape is
// ignored silently; one with an unrecognised verb, or with a value the verb
// doesn't understand, is logged at Debug and otherwise ignored. Either way it
// still reaches the real parse as an ordinary Directive segment.
func applyDocumentDirective(settings Settings, text string) Settings {
	fields := strings.Fields(text)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "ajis") {
		return settings
	}
	verb := fields[1]
	value := directiveValue(fields[2:])

	switch verb {
	case "mode":
		switch value {
		case "json":
			return settings.ApplyMode(lexer.Json)
		case "ajis":
			return settings.ApplyMode(lexer.Ajis)
		case "lax":
			return settings.ApplyMode(lexer.Lax)
		default:
			slog.Debug("ajis: ignoring directive with unrecognised mode", "text", text, "value", value)
			return settings
		}
	case "depth":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			slog.Debug("ajis: ignoring directive with invalid depth", "text", text, "value", value)
			return settings
		}
		settings.MaxDepth = uint32(n)
		return settings
	case "comments":
		on, ok := directiveBool(value)
		if !ok {
			slog.Debug("ajis: ignoring directive with invalid comments value", "text", text, "value", value)
			return settings
		}
		settings.Comments.AllowLineComments = on
		settings.Comments.AllowBlockComments = on
		return settings
	case "trailing-commas":
		on, ok := directiveBool(value)
		if !ok {
			slog.Debug("ajis: ignoring directive with invalid trailing-commas value", "text", text, "value", value)
			return settings
		}
		settings.AllowTrailingCommas = on
		return settings
	default:
		slog.Debug("ajis: ignoring directive with unrecognised verb", "text", text, "verb", verb)
		return settings
	}
}

func directiveValue(rest []string) string {
	for _, f := range rest {
		if v, ok := strings.CutPrefix(f, "value="); ok {
			return v
		}
	}
	return ""
}

func directiveBool(value string) (on bool, ok bool) {
	switch value {
	case "on":
		return true, true
	case "off":
		return false, true
	default:
		return false, false
	}
}

// trimLeadingBOM strips a UTF-8 byte order mark, which L0 readers treat as
// ordinary input otherwise (spec §4.1 leaves BOM handling to the host).
func trimLeadingBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
