// Package engine implements the L4 engine selector (spec §4.6): a pure cost
// model picking a concrete reader/lexer strategy from a processing profile
// and an input kind, with no knowledge of lexing or parsing itself.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Profile is the host's declared processing preference.
type Profile int

const (
	Universal Profile = iota
	LowMemory
	HighThroughput
)

func (p Profile) String() string {
	switch p {
	case Universal:
		return "Universal"
	case LowMemory:
		return "LowMemory"
	case HighThroughput:
		return "HighThroughput"
	default:
		return "Unknown"
	}
}

// InputKind describes the shape of the input the host is offering.
type InputKind int

const (
	// Span inputs are a single in-memory byte slice, available for random access.
	Span InputKind = iota
	// Stream inputs are forward-only, e.g. a network connection or pipe.
	Stream
)

func (k InputKind) String() string {
	if k == Span {
		return "Span"
	}
	return "Stream"
}

// Strategy identifies a concrete reader/lexer combination (spec §4.6's
// table).
type Strategy int

const (
	SpanLexer Strategy = iota
	StreamLexer
	MappedFile
)

func (s Strategy) String() string {
	switch s {
	case SpanLexer:
		return "SpanLexer"
	case StreamLexer:
		return "StreamLexer"
	case MappedFile:
		return "MappedFile"
	default:
		return "Unknown"
	}
}

// candidate scores one strategy for a cost comparison: number of passes over
// the input, estimated peak memory in abstract units, and whether it needs
// random access to the underlying bytes. passWeight/memWeight let a profile
// express how much it cares about each dimension.
type candidate struct {
	strategy             Strategy
	passes               int
	estimatedMemory      int
	requiresRandomAccess bool
}

// cost combines a candidate's dimensions into a single score under the given
// profile's weighting; random access is penalised when the input is
// forward-only, since satisfying it would require buffering the whole
// stream up front (spec §4.6). Select never reaches the penalty with the
// current candidates: validFor already excludes SpanLexer for Stream input.
func (c candidate) cost(profile Profile, input InputKind) int {
	pw, mw := profileWeights(profile)
	score := c.passes*pw + c.estimatedMemory*mw
	if c.requiresRandomAccess && input == Stream {
		score += 1_000_000
	}
	return score
}

// profileWeights returns (passWeight, memWeight): HighThroughput cares only
// about minimizing passes, LowMemory cares overwhelmingly about minimizing
// memory, Universal also weighs passes only (at a lower weight), so memory
// never decides a Universal selection.
func profileWeights(profile Profile) (passWeight, memWeight int) {
	switch profile {
	case HighThroughput:
		return 100, 0
	case LowMemory:
		return 1, 100
	default: // Universal
		return 10, 0
	}
}

// candidates lists every strategy spec §4.6 knows about; validFor reports
// whether a candidate is even applicable to a given input kind, independent
// of cost (a mapped file makes no sense over an in-memory span, and an
// eager span read of an unbounded stream is not the random-access penalty's
// concern to express — it is simply not a real candidate there).
func candidates() []candidate {
	return []candidate{
		{strategy: SpanLexer, passes: 1, estimatedMemory: 100, requiresRandomAccess: true},
		{strategy: StreamLexer, passes: 1, estimatedMemory: 20, requiresRandomAccess: false},
		{strategy: MappedFile, passes: 2, estimatedMemory: 2, requiresRandomAccess: false},
	}
}

func (c candidate) validFor(input InputKind) bool {
	switch c.strategy {
	case SpanLexer:
		return input == Span
	case MappedFile:
		return input == Stream
	default: // StreamLexer works over either, but only chosen for Stream per the table
		return input == Stream
	}
}

// Select picks the strategy for (profile, input): it scores every candidate
// valid for input under profile's weighting and returns the minimum-cost one
// (spec §4.6).
func Select(profile Profile, input InputKind) Strategy {
	var best candidate
	bestCost := 0
	found := false
	for _, c := range candidates() {
		if !c.validFor(input) {
			continue
		}
		cost := c.cost(profile, input)
		if !found || cost < bestCost {
			best, bestCost, found = c, cost, true
		}
	}
	if !found {
		slog.Debug("engine: no candidate valid for input, falling back to SpanLexer", "profile", profile, "input", input)
		return SpanLexer
	}
	slog.Debug("engine: selected strategy", "profile", profile, "input", input, "strategy", best.strategy, "cost", bestCost)
	return best.strategy
}

// ChunkThreshold is a parsed stream_chunk_threshold value in bytes.
type ChunkThreshold int64

// ParseChunkThreshold parses a "<n>[k|M|G]" size string (spec §6), powers of
// 1024. An unrecognised suffix fails fast.
func ParseChunkThreshold(s string) (ChunkThreshold, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("engine: empty chunk threshold")
	}
	mult := int64(1)
	numeric := s
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1024
		numeric = s[:len(s)-1]
	case 'M':
		mult = 1024 * 1024
		numeric = s[:len(s)-1]
	case 'G':
		mult = 1024 * 1024 * 1024
		numeric = s[:len(s)-1]
	default:
		if s[len(s)-1] < '0' || s[len(s)-1] > '9' {
			return 0, fmt.Errorf("engine: unrecognised chunk threshold suffix in %q", s)
		}
	}
	n, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("engine: invalid chunk threshold %q: %w", s, err)
	}
	return ChunkThreshold(n * mult), nil
}
