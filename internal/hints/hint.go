// Package hints turns a language model's textual edit suggestions into
// document-exact edits.
//
// A conversion runs ParseArray, Normalize, then either Anchor (prefix/suffix
// hints) or MapLineRange (line-range hints), and wraps each resolved span in
// an Edit. Hints that cannot be placed unambiguously are skipped, never
// guessed.
package hints

import (
	"fmt"
	"strings"
)

// Schema selects which hint shape a request asked the model for
type Schema string

const (
	SchemaPrefixSuffix Schema = "prefix_suffix"
	SchemaLineRange    Schema = "line_range"
)

// ParseSchema accepts the config spelling and a few CLI-friendly aliases.
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix_suffix", "prefix-suffix", "prefixsuffix":
		return SchemaPrefixSuffix, nil
	case "line_range", "line-range", "lines", "line_number", "line-number":
		return SchemaLineRange, nil
	default:
		return "", fmt.Errorf("unknown hint schema %q (want prefix_suffix or line_range)", s)
	}
}

// Kind discriminates the Hint variants
type Kind int

const (
	KindPrefixSuffix Kind = iota
	KindLineRange
)

// Hint is one normalized edit suggestion. The concrete type is either
// PrefixSuffixHint or LineRangeHint.
type Hint interface {
	Kind() Kind
	// Replacement is the text that replaces the resolved span
	Replacement() string
	// Rationale is the optional model-supplied reason
	Rationale() string
}

// PrefixSuffixHint locates Existing by the context around it.
// Existing may be empty, meaning a pure insertion.
type PrefixSuffixHint struct {
	Prefix   string `json:"prefix"`
	Existing string `json:"existing"`
	Suffix   string `json:"suffix"`
	Text     string `json:"text"`
	Reason   string `json:"reason,omitempty"`
}

func (h PrefixSuffixHint) Kind() Kind          { return KindPrefixSuffix }
func (h PrefixSuffixHint) Replacement() string { return h.Text }
func (h PrefixSuffixHint) Rationale() string   { return h.Reason }

// LineRangeHint replaces whole lines. Lines are 1-based and inclusive.
type LineRangeHint struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Text      string `json:"text"`
	Reason    string `json:"reason,omitempty"`
}

func (h LineRangeHint) Kind() Kind          { return KindLineRange }
func (h LineRangeHint) Replacement() string { return h.Text }
func (h LineRangeHint) Rationale() string   { return h.Reason }

// Item is a normalized hint with its position in the response array.
type Item struct {
	Index int
	Hint  Hint
}
