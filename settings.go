package ajis

import (
	"log/slog"

	"github.com/afrowaveltd/ajis-go/config"
	"github.com/afrowaveltd/ajis-go/engine"
	"github.com/afrowaveltd/ajis-go/lexer"
	"github.com/afrowaveltd/ajis-go/parse"
)

// Settings is the full option surface of spec §6: the lexer's and parser's
// own Config embedded alongside the engine profile and stream threshold that
// only a host choosing between Span and Stream input needs to care about.
type Settings struct {
	TextMode              lexer.Mode
	ParserProfile         engine.Profile
	AllowDuplicateKeys    bool
	AllowTrailingCommas   bool
	AllowDirectives       bool
	MaxDepth              uint32
	StreamChunkThreshold  engine.ChunkThreshold
	Numbers               lexer.NumberOptions
	Strings               lexer.StringOptions
	Comments              lexer.CommentOptions
	PreserveStringEscapes bool
	EmitCommentSegments   bool
	EmitDirectiveSegments bool
	EventSink             parse.EventSink
}

// DefaultSettings returns the Ajis-mode default Settings (spec §6).
func DefaultSettings() Settings {
	lc := lexer.DefaultConfig()
	pc := parse.DefaultConfig()
	return Settings{
		TextMode:              lc.Mode,
		ParserProfile:         engine.Universal,
		AllowDuplicateKeys:    pc.AllowDuplicateKeys,
		AllowTrailingCommas:   pc.AllowTrailingCommas,
		AllowDirectives:       lc.AllowDirectives,
		MaxDepth:              pc.MaxDepth,
		StreamChunkThreshold:  64 * 1024,
		Numbers:               lc.Numbers,
		Strings:               lc.Strings,
		Comments:              lc.Comments,
		PreserveStringEscapes: lc.PreserveStringEscapes,
		EmitCommentSegments:   false,
		EmitDirectiveSegments: false,
	}
}

// ApplyMode overrides Settings for json/lax the way lexer.Config.ApplyMode
// and parse.Config.ApplyMode do (spec §6); ajis mode leaves the configured
// options untouched.
func (s Settings) ApplyMode(mode lexer.Mode) Settings {
	s.TextMode = mode
	lc := s.toLexerConfig().ApplyMode(mode)
	pc := s.toParseConfig()
	pc.Lexer = lc
	pc = pc.ApplyMode(mode)
	s.AllowDirectives = lc.AllowDirectives
	s.AllowTrailingCommas = pc.AllowTrailingCommas
	s.Numbers = lc.Numbers
	s.Strings = lc.Strings
	s.Comments = lc.Comments
	return s
}

func (s Settings) toLexerConfig() lexer.Config {
	return lexer.Config{
		Mode:                  s.TextMode,
		AllowDirectives:       s.AllowDirectives,
		PreserveStringEscapes: s.PreserveStringEscapes,
		EmitCommentTokens:     s.EmitCommentSegments || s.EmitDirectiveSegments,
		Numbers:               s.Numbers,
		Strings:               s.Strings,
		Comments:              s.Comments,
	}
}

func (s Settings) toParseConfig() parse.Config {
	return parse.Config{
		Lexer:                 s.toLexerConfig(),
		MaxDepth:              s.MaxDepth,
		AllowDuplicateKeys:    s.AllowDuplicateKeys,
		AllowTrailingCommas:   s.AllowTrailingCommas,
		EmitCommentSegments:   s.EmitCommentSegments,
		EmitDirectiveSegments: s.EmitDirectiveSegments,
		EventSink:             s.EventSink,
	}
}

// LoadSettings reads a Settings YAML document from path (spec §6.1) and
// merges it onto DefaultSettings; keys the file omits keep their default.
func LoadSettings(path string) (Settings, error) {
	fs, err := config.Load(path)
	if err != nil {
		return Settings{}, err
	}
	return mergeFileSettings(DefaultSettings(), fs), nil
}

func mergeFileSettings(s Settings, fs config.FileSettings) Settings {
	switch fs.TextMode {
	case "json":
		s = s.ApplyMode(lexer.Json)
	case "lax":
		s = s.ApplyMode(lexer.Lax)
	case "ajis", "":
		// keep current mode
	default:
		slog.Debug("config: unrecognised text_mode, falling back to current mode", "value", fs.TextMode)
	}
	switch fs.ParserProfile {
	case "low-memory":
		s.ParserProfile = engine.LowMemory
	case "high-throughput":
		s.ParserProfile = engine.HighThroughput
	case "universal", "":
		// keep current profile
	default:
		slog.Debug("config: unrecognised parser_profile, falling back to current profile", "value", fs.ParserProfile)
	}
	if fs.AllowDuplicateKeys != nil {
		s.AllowDuplicateKeys = *fs.AllowDuplicateKeys
	}
	if fs.AllowTrailingCommas != nil {
		s.AllowTrailingCommas = *fs.AllowTrailingCommas
	}
	if fs.AllowDirectives != nil {
		s.AllowDirectives = *fs.AllowDirectives
	}
	if fs.MaxDepth != nil {
		s.MaxDepth = *fs.MaxDepth
	}
	if fs.StreamChunkThreshold != "" {
		if n, err := engine.ParseChunkThreshold(fs.StreamChunkThreshold); err == nil {
			s.StreamChunkThreshold = n
		}
	}
	if fs.PreserveStringEscapes != nil {
		s.PreserveStringEscapes = *fs.PreserveStringEscapes
	}
	if fs.EmitCommentSegments != nil {
		s.EmitCommentSegments = *fs.EmitCommentSegments
	}
	if fs.EmitDirectiveSegments != nil {
		s.EmitDirectiveSegments = *fs.EmitDirectiveSegments
	}

	mergeNumbers(&s.Numbers, fs.Numbers)
	mergeStrings(&s.Strings, fs.Strings)
	mergeComments(&s.Comments, fs.Comments)
	return s
}

func mergeNumbers(n *lexer.NumberOptions, fs config.NumberOptions) {
	if fs.EnableBasePrefixes != nil {
		n.EnableBasePrefixes = *fs.EnableBasePrefixes
	}
	if fs.EnableDigitSeparators != nil {
		n.EnableDigitSeparators = *fs.EnableDigitSeparators
	}
	if fs.EnforceSeparatorGroupingRules != nil {
		n.EnforceSeparatorGroupingRules = *fs.EnforceSeparatorGroupingRules
	}
	if fs.AllowNanAndInfinity != nil {
		n.AllowNanAndInfinity = *fs.AllowNanAndInfinity
	}
	if fs.AllowLeadingPlus != nil {
		n.AllowLeadingPlus = *fs.AllowLeadingPlus
	}
	if fs.MaxTokenBytes != nil {
		n.MaxTokenBytes = *fs.MaxTokenBytes
	}
}

func mergeStrings(s *lexer.StringOptions, fs config.StringOptions) {
	if fs.AllowMultiline != nil {
		s.AllowMultiline = *fs.AllowMultiline
	}
	if fs.EnableEscapes != nil {
		s.EnableEscapes = *fs.EnableEscapes
	}
	if fs.AllowSingleQuotes != nil {
		s.AllowSingleQuotes = *fs.AllowSingleQuotes
	}
	if fs.AllowUnquotedPropertyNames != nil {
		s.AllowUnquotedPropertyNames = *fs.AllowUnquotedPropertyNames
	}
	if fs.MaxStringBytes != nil {
		s.MaxStringBytes = *fs.MaxStringBytes
	}
	if fs.MaxPropertyNameBytes != nil {
		s.MaxPropertyNameBytes = *fs.MaxPropertyNameBytes
	}
}

func mergeComments(c *lexer.CommentOptions, fs config.CommentOptions) {
	if fs.AllowLineComments != nil {
		c.AllowLineComments = *fs.AllowLineComments
	}
	if fs.AllowBlockComments != nil {
		c.AllowBlockComments = *fs.AllowBlockComments
	}
	if fs.RejectNestedBlockComments != nil {
		c.RejectNestedBlockComments = *fs.RejectNestedBlockComments
	}
}
