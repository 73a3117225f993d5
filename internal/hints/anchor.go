package hints

import (
	"strings"

	"github.com/kvit-s/kvit-hints/internal/document"
)

// Strategy names the anchoring heuristic that resolved a span
type Strategy string

const (
	StrategyExact          Strategy = "exact"
	StrategyUniquePrefix   Strategy = "unique_prefix"
	StrategyInsertion      Strategy = "insertion"
	StrategyUniqueExisting Strategy = "unique_existing"
	StrategyLineRange      Strategy = "line_range"
)

// Span is a resolved half-open byte range [Start, End) in the document text.
type Span struct {
	Start    int
	End      int
	Strategy Strategy
}

// Anchor resolves a prefix/suffix hint to the span occupied by Existing.
//
// The hint must already be newline-normalized; nl is the document's newline
// style and is reapplied to the hint before matching. Strategies are tried in
// order and the first success wins:
//
//  1. exact: prefix+existing+suffix found verbatim (first occurrence).
//     Needs a non-empty prefix or suffix; bare existing is left to 4.
//  2. unique_prefix: prefix occurs once and is followed by existing.
//  3. insertion: existing is empty, prefix is non-empty and occurs at
//     least once; insert after the first occurrence.
//  4. unique_existing: existing is non-empty and occurs exactly once.
//
// ok is false when no strategy resolves unambiguously.
func Anchor(text string, h PrefixSuffixHint, nl document.Newline) (span Span, ok bool) {
	prefix := nl.Apply(h.Prefix)
	existing := nl.Apply(h.Existing)
	suffix := nl.Apply(h.Suffix)

	if prefix != "" || suffix != "" {
		if idx := strings.Index(text, prefix+existing+suffix); idx >= 0 {
			start := idx + len(prefix)
			return Span{Start: start, End: start + len(existing), Strategy: StrategyExact}, true
		}
	}

	first, count := countOccurrences(text, prefix, 2)
	if count == 1 {
		after := first + len(prefix)
		if strings.HasPrefix(text[after:], existing) {
			return Span{Start: after, End: after + len(existing), Strategy: StrategyUniquePrefix}, true
		}
	}

	if existing == "" {
		if prefix != "" && count >= 1 {
			after := first + len(prefix)
			return Span{Start: after, End: after, Strategy: StrategyInsertion}, true
		}
		return Span{}, false
	}

	if first, count := countOccurrences(text, existing, 2); count == 1 {
		return Span{Start: first, End: first + len(existing), Strategy: StrategyUniqueExisting}, true
	}
	return Span{}, false
}

// FindAllOccurrences returns the start offset of every occurrence of sub in
// text, left to right, including overlapping ones. An empty sub yields nil.
func FindAllOccurrences(text, sub string) []int {
	if sub == "" {
		return nil
	}
	var offsets []int
	for pos := 0; pos <= len(text)-len(sub); {
		idx := strings.Index(text[pos:], sub)
		if idx < 0 {
			break
		}
		offsets = append(offsets, pos+idx)
		pos += idx + 1
	}
	return offsets
}

// countOccurrences returns the first offset of sub in text and the number
// of (overlapping) occurrences, counting no further than limit. An empty
// sub occurs at every position.
func countOccurrences(text, sub string, limit int) (first, count int) {
	if sub == "" {
		return 0, min(len(text)+1, limit)
	}
	first = -1
	for pos := 0; count < limit && pos <= len(text)-len(sub); {
		idx := strings.Index(text[pos:], sub)
		if idx < 0 {
			break
		}
		if first < 0 {
			first = pos + idx
		}
		count++
		pos += idx + 1
	}
	return first, count
}
