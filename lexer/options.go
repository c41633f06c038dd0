package lexer

// Mode selects the coarse strictness preset (spec §6): Json is RFC-8259
// strict, Ajis is the configurable superset, Lax is JavaScript-tolerant with
// salvage behavior on malformed input.
type Mode int

const (
	Json Mode = iota
	Ajis
	Lax
)

func (m Mode) String() string {
	switch m {
	case Json:
		return "Json"
	case Ajis:
		return "Ajis"
	case Lax:
		return "Lax"
	default:
		return "Unknown"
	}
}

// NumberOptions configures numeric-literal scanning (spec §4.2).
type NumberOptions struct {
	EnableBasePrefixes          bool
	EnableDigitSeparators       bool
	EnforceSeparatorGroupingRules bool
	AllowNanAndInfinity         bool
	AllowLeadingPlus            bool
	MaxTokenBytes               int // 0 means unlimited
}

// StringOptions configures string and identifier scanning (spec §4.2).
type StringOptions struct {
	AllowMultiline             bool
	EnableEscapes              bool
	AllowSingleQuotes          bool
	AllowUnquotedPropertyNames bool
	MaxStringBytes             int // 0 means unlimited
	MaxPropertyNameBytes       int // 0 means unlimited
}

// CommentOptions configures comment scanning (spec §4.2).
type CommentOptions struct {
	AllowLineComments        bool
	AllowBlockComments       bool
	RejectNestedBlockComments bool
}

// Config is the lexer's full option surface: the option groups of spec §4.2
// plus the top-level switches.
type Config struct {
	Mode                   Mode
	AllowDirectives        bool
	PreserveStringEscapes  bool
	EmitCommentTokens      bool
	Numbers                NumberOptions
	Strings                StringOptions
	Comments               CommentOptions
}

// DefaultConfig returns the Ajis-mode default option surface (spec §6).
func DefaultConfig() Config {
	return Config{
		Mode:                  Ajis,
		AllowDirectives:       true,
		PreserveStringEscapes: false,
		EmitCommentTokens:     false,
		Numbers: NumberOptions{
			EnableBasePrefixes:            true,
			EnableDigitSeparators:         true,
			EnforceSeparatorGroupingRules: false,
			AllowNanAndInfinity:           true,
			AllowLeadingPlus:              true,
			MaxTokenBytes:                 0,
		},
		Strings: StringOptions{
			AllowMultiline:             false,
			EnableEscapes:              true,
			AllowSingleQuotes:          true,
			AllowUnquotedPropertyNames: true,
			MaxStringBytes:             0,
			MaxPropertyNameBytes:       0,
		},
		Comments: CommentOptions{
			AllowLineComments:         true,
			AllowBlockComments:        true,
			RejectNestedBlockComments: true,
		},
	}
}

// ApplyMode overrides the option surface to the fixed matrix for json/lax
// (spec §6); ajis mode leaves the configured options untouched.
func (c Config) ApplyMode(mode Mode) Config {
	c.Mode = mode
	switch mode {
	case Json:
		c.AllowDirectives = false
		c.Strings.AllowSingleQuotes = false
		c.Strings.AllowUnquotedPropertyNames = false
		c.Strings.AllowMultiline = false
		c.Strings.EnableEscapes = true
		c.Comments.AllowLineComments = false
		c.Comments.AllowBlockComments = false
		c.Numbers.EnableBasePrefixes = false
		c.Numbers.EnableDigitSeparators = false
		c.Numbers.AllowNanAndInfinity = false
		c.Numbers.AllowLeadingPlus = false
	case Lax:
		c.Strings.AllowUnquotedPropertyNames = true
		c.Strings.AllowSingleQuotes = true
		c.Strings.AllowMultiline = true
		c.Comments.AllowLineComments = true
		c.Comments.AllowBlockComments = true
		c.AllowDirectives = true
	case Ajis:
		// configurable; keep as-is
	}
	return c
}
