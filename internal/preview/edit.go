// Package preview applies converted edits to a copy of the document text and
// renders the result as a diff. It sits outside the conversion core: the
// converter never applies anything itself.
package preview

import (
	"cmp"
	"fmt"
	"slices"

	"go.lsp.dev/protocol"

	"github.com/kvit-s/kvit-hints/internal/hints"
)

// Locator maps protocol positions back to byte offsets.
// *document.TextDocument implements it.
type Locator interface {
	Text() string
	PositionToOffset(pos protocol.Position) int
}

// Span is one converter edit resolved to a byte range of the base text.
type Span struct {
	Start int // inclusive
	End   int // exclusive
	Text  string
	Index int // position in the converter output
}

// RangeError reports an edit whose positions do not resolve inside the text.
type RangeError struct {
	Span Span
	Len  int
}

func (e *RangeError) Error() string {
	s := e.Span
	switch {
	case s.Start < 0:
		return fmt.Sprintf("edit %d: start offset %d is negative", s.Index, s.Start)
	case s.End < s.Start:
		return fmt.Sprintf("edit %d: end offset %d is before start %d", s.Index, s.End, s.Start)
	default:
		return fmt.Sprintf("edit %d: end offset %d is past the end of a %d byte text", s.Index, s.End, e.Len)
	}
}

// OverlapError reports two edits that claim the same bytes.
type OverlapError struct {
	First  Span
	Second Span
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("edits %d [%d:%d] and %d [%d:%d] overlap",
		e.First.Index, e.First.Start, e.First.End,
		e.Second.Index, e.Second.Start, e.Second.End)
}

// Plan is a set of non-overlapping spans over a base text, in document order.
type Plan struct {
	base  string
	spans []Span
}

// NewPlan resolves converter edits against doc and orders them for
// application. It fails on the first out-of-bounds or overlapping edit.
func NewPlan(doc Locator, edits []hints.Edit) (*Plan, error) {
	spans := make([]Span, len(edits))
	for i, e := range edits {
		spans[i] = Span{
			Start: doc.PositionToOffset(e.Range.Start),
			End:   doc.PositionToOffset(e.Range.End),
			Text:  e.Text,
			Index: i,
		}
	}
	return planSpans(doc.Text(), spans)
}

// planSpans orders a copy of spans by start then end. Equal spans keep
// converter order, so two insertions at one point land in hint order.
// Touching spans do not overlap.
func planSpans(base string, spans []Span) (*Plan, error) {
	for _, s := range spans {
		if s.Start < 0 || s.End < s.Start || s.End > len(base) {
			return nil, &RangeError{Span: s, Len: len(base)}
		}
	}

	ordered := slices.Clone(spans)
	slices.SortStableFunc(ordered, func(a, b Span) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Start < ordered[i-1].End {
			return nil, &OverlapError{First: ordered[i-1], Second: ordered[i]}
		}
	}
	return &Plan{base: base, spans: ordered}, nil
}

// Spans returns the planned spans in application order.
func (p *Plan) Spans() []Span {
	return p.spans
}
