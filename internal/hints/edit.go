package hints

import (
	"go.lsp.dev/protocol"

	"github.com/kvit-s/kvit-hints/internal/document"
)

// Edit is the strategy-independent output: replace Range with Text.
type Edit struct {
	Range  protocol.Range `json:"range"`
	Text   string         `json:"text"`
	Reason string         `json:"reason,omitempty"`
}

// NewEdit builds an Edit from a resolved byte span.
func NewEdit(doc document.Document, span Span, text, reason string) Edit {
	return NewEditFromPositions(doc.OffsetToPosition(span.Start), doc.OffsetToPosition(span.End), text, reason)
}

// NewEditFromPositions builds an Edit from positions, swapping them if they
// arrive out of order so that Start <= End.
func NewEditFromPositions(start, end protocol.Position, text, reason string) Edit {
	if comparePositions(start, end) > 0 {
		start, end = end, start
	}
	return Edit{
		Range:  protocol.Range{Start: start, End: end},
		Text:   text,
		Reason: reason,
	}
}

func comparePositions(a, b protocol.Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Character < b.Character:
		return -1
	case a.Character > b.Character:
		return 1
	default:
		return 0
	}
}
