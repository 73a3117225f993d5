package hints

import (
	"fmt"

	"github.com/kvit-s/kvit-hints/internal/document"
)

// MapLineRange converts a 1-based inclusive line range into a byte span
// covering those whole lines, including each line's terminator except past
// the last line of the document.
//
// A non-nil error means the hint is out of bounds or inverted; callers
// record it as a skip rather than failing the batch.
func MapLineRange(doc document.Document, h LineRangeHint) (Span, error) {
	lines := doc.LineCount()
	switch {
	case h.StartLine < 1 || h.EndLine < 1:
		return Span{}, fmt.Errorf("lines %d-%d: line numbers start at 1", h.StartLine, h.EndLine)
	case h.StartLine > lines || h.EndLine > lines:
		return Span{}, fmt.Errorf("lines %d-%d: document has %d lines", h.StartLine, h.EndLine, lines)
	case h.StartLine > h.EndLine:
		return Span{}, fmt.Errorf("lines %d-%d: start is after end", h.StartLine, h.EndLine)
	}

	start := doc.LineOffset(h.StartLine - 1)
	end := len(doc.Text())
	if h.EndLine < lines {
		end = doc.LineOffset(h.EndLine)
	}
	return Span{Start: start, End: end, Strategy: StrategyLineRange}, nil
}
