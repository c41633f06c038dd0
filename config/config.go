// Package config loads the YAML form of the Settings object (SPEC_FULL.md
// §6.1): the ambient configuration concern every teacher-style repo carries
// alongside its core logic, kept strictly optional — ParseSegments never
// requires a config file.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/afrowaveltd/ajis-go/util"
	"github.com/goccy/go-yaml"
)

// NumberOptions mirrors lexer.NumberOptions with YAML tags and pointer
// fields so an omitted key keeps the caller's existing value.
type NumberOptions struct {
	EnableBasePrefixes            *bool `yaml:"enable_base_prefixes"`
	EnableDigitSeparators         *bool `yaml:"enable_digit_separators"`
	EnforceSeparatorGroupingRules *bool `yaml:"enforce_separator_grouping_rules"`
	AllowNanAndInfinity           *bool `yaml:"allow_nan_and_infinity"`
	AllowLeadingPlus              *bool `yaml:"allow_leading_plus"`
	MaxTokenBytes                 *int  `yaml:"max_token_bytes"`
}

// StringOptions mirrors lexer.StringOptions.
type StringOptions struct {
	AllowMultiline             *bool `yaml:"allow_multiline"`
	EnableEscapes              *bool `yaml:"enable_escapes"`
	AllowSingleQuotes          *bool `yaml:"allow_single_quotes"`
	AllowUnquotedPropertyNames *bool `yaml:"allow_unquoted_property_names"`
	MaxStringBytes             *int  `yaml:"max_string_bytes"`
	MaxPropertyNameBytes       *int  `yaml:"max_property_name_bytes"`
}

// CommentOptions mirrors lexer.CommentOptions.
type CommentOptions struct {
	AllowLineComments         *bool `yaml:"allow_line_comments"`
	AllowBlockComments        *bool `yaml:"allow_block_comments"`
	RejectNestedBlockComments *bool `yaml:"reject_nested_block_comments"`
}

// FileSettings is the YAML-decoded shape of the Settings object (SPEC_FULL.md
// §6.1). Every field is optional; absent fields keep the caller's defaults.
// It intentionally does not import the root package's Settings type, so this
// package stays a leaf with no dependency on the parsing core.
type FileSettings struct {
	TextMode               string         `yaml:"text_mode"`
	ParserProfile          string         `yaml:"parser_profile"`
	AllowDuplicateKeys     *bool          `yaml:"allow_duplicate_keys"`
	AllowTrailingCommas    *bool          `yaml:"allow_trailing_commas"`
	AllowDirectives        *bool          `yaml:"allow_directives"`
	MaxDepth               *uint32        `yaml:"max_depth"`
	StreamChunkThreshold   string         `yaml:"stream_chunk_threshold"`
	Numbers                NumberOptions  `yaml:"numbers"`
	Strings                StringOptions  `yaml:"strings"`
	Comments               CommentOptions `yaml:"comments"`
	PreserveStringEscapes  *bool          `yaml:"preserve_string_escapes"`
	EmitCommentSegments    *bool          `yaml:"emit_comment_segments"`
	EmitDirectiveSegments  *bool          `yaml:"emit_directive_segments"`
}

// Defaults returns the Settings defaults expressed as a fully-populated
// FileSettings, i.e. what a YAML document would look like if it spelled out
// every field explicitly. Load and Decode do not merge onto these values:
// a field absent from the document stays nil (or empty), and the caller
// that merges the result (ajis.LoadSettings) keeps its own default for it.
func Defaults() FileSettings {
	t, f := true, false
	zero := 0
	return FileSettings{
		TextMode:      "ajis",
		ParserProfile: "universal",
		Numbers: NumberOptions{
			EnableBasePrefixes:            &t,
			EnableDigitSeparators:         &t,
			EnforceSeparatorGroupingRules: &f,
			AllowNanAndInfinity:           &t,
			AllowLeadingPlus:              &t,
			MaxTokenBytes:                 &zero,
		},
		Strings: StringOptions{
			AllowMultiline:             &f,
			EnableEscapes:              &t,
			AllowSingleQuotes:          &t,
			AllowUnquotedPropertyNames: &t,
			MaxStringBytes:             &zero,
			MaxPropertyNameBytes:       &zero,
		},
		Comments: CommentOptions{
			AllowLineComments:         &t,
			AllowBlockComments:        &t,
			RejectNestedBlockComments: &t,
		},
		AllowDuplicateKeys:     &f,
		AllowTrailingCommas:    &f,
		AllowDirectives:        &t,
		MaxDepth:               uint32Ptr(256),
		StreamChunkThreshold:   "64k",
		PreserveStringEscapes:  &f,
		EmitCommentSegments:    &f,
		EmitDirectiveSegments:  &f,
	}
}

func uint32Ptr(v uint32) *uint32 { return &v }

// Load reads and decodes a Settings YAML document from path. Unknown fields
// are rejected so a typo in a config file fails fast rather than silently
// keeping a default.
func Load(path string) (FileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileSettings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a Settings YAML document already in memory.
func Decode(data []byte) (FileSettings, error) {
	var fs FileSettings
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.Decode(&fs); err != nil {
		return FileSettings{}, fmt.Errorf("config: decode: %w", err)
	}
	logOverrides(fs)
	return fs, nil
}

// logOverrides emits a debug-level summary of which top-level keys this file
// actually set, iterating a synthetic override map in deterministic order
// (util.CanonicalMapIter) so repeated loads of the same file always log
// identically.
func logOverrides(fs FileSettings) {
	set := map[string]bool{
		"text_mode":               fs.TextMode != "",
		"parser_profile":          fs.ParserProfile != "",
		"allow_duplicate_keys":    fs.AllowDuplicateKeys != nil,
		"allow_trailing_commas":   fs.AllowTrailingCommas != nil,
		"allow_directives":        fs.AllowDirectives != nil,
		"max_depth":               fs.MaxDepth != nil,
		"stream_chunk_threshold":  fs.StreamChunkThreshold != "",
		"preserve_string_escapes": fs.PreserveStringEscapes != nil,
		"emit_comment_segments":   fs.EmitCommentSegments != nil,
		"emit_directive_segments": fs.EmitDirectiveSegments != nil,
	}
	var present []string
	for k, v := range util.CanonicalMapIter(set) {
		if v {
			present = append(present, k)
		}
	}
	slog.Debug("config: settings file loaded", "overrides", present)
}
