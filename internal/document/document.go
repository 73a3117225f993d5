// Package document provides the read-only document model that hint
// conversion runs against: the raw text, its line table and the mapping
// from byte offsets to editor positions.
package document

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// Encoding selects the unit used for the Character field of a position.
type Encoding string

const (
	// EncodingUTF16 counts UTF-16 code units (the LSP default)
	EncodingUTF16 Encoding = "utf-16"
	// EncodingUTF8 counts bytes
	EncodingUTF8 Encoding = "utf-8"
)

// ParseEncoding parses a position encoding name. Empty means UTF-16.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-16", "utf16":
		return EncodingUTF16, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unknown position encoding %q (want utf-16 or utf-8)", s)
	}
}

// Document is what the converter needs from the caller's document model.
// Offsets are byte offsets into Text(). Lines are 0-based.
type Document interface {
	Text() string
	OffsetToPosition(offset int) protocol.Position
	LineCount() int
	LineOffset(line int) int
}

// TextDocument is an immutable, line-indexed Document backed by a string.
type TextDocument struct {
	text       string
	encoding   Encoding
	newline    Newline
	lineStarts []int
}

var _ Document = (*TextDocument)(nil)

// NewTextDocument indexes text for position lookups.
// Lines are terminated by "\n"; a preceding "\r" belongs to the terminator.
func NewTextDocument(text string, enc Encoding) *TextDocument {
	if enc == "" {
		enc = EncodingUTF16
	}
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &TextDocument{
		text:       text,
		encoding:   enc,
		newline:    DetectNewline(text),
		lineStarts: starts,
	}
}

// Text returns the full document text.
func (d *TextDocument) Text() string { return d.text }

// Encoding returns the position encoding.
func (d *TextDocument) Encoding() Encoding { return d.encoding }

// Newline returns the detected newline style.
func (d *TextDocument) Newline() Newline { return d.newline }

// LineCount returns the number of lines. A trailing terminator starts an
// empty final line, the way editors count it.
func (d *TextDocument) LineCount() int { return len(d.lineStarts) }

// LineOffset returns the byte offset where the 0-based line starts.
// Lines past the end map to len(text).
func (d *TextDocument) LineOffset(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(d.lineStarts) {
		return len(d.text)
	}
	return d.lineStarts[line]
}

// lineContentEnd returns the offset just before the line's terminator.
func (d *TextDocument) lineContentEnd(line int) int {
	if line+1 >= len(d.lineStarts) {
		return len(d.text)
	}
	end := d.lineStarts[line+1] - 1
	if end > d.lineStarts[line] && d.text[end-1] == '\r' {
		end--
	}
	return end
}

// Line returns the 0-based line without its terminator.
func (d *TextDocument) Line(line int) string {
	if line < 0 || line >= len(d.lineStarts) {
		return ""
	}
	return d.text[d.lineStarts[line]:d.lineContentEnd(line)]
}

// OffsetToPosition converts a byte offset to a position. Out-of-range
// offsets are clamped to the document bounds.
func (d *TextDocument) OffsetToPosition(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	start := d.lineStarts[line]
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(d.units(d.text[start:offset])),
	}
}

// PositionToOffset is the inverse of OffsetToPosition. Characters past the
// end of a line clamp to the line end; lines past the end map to len(text).
func (d *TextDocument) PositionToOffset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(d.lineStarts) {
		return len(d.text)
	}
	start := d.lineStarts[line]
	content := d.text[start:d.lineContentEnd(line)]
	want := int(pos.Character)
	if d.encoding == EncodingUTF8 {
		return start + min(want, len(content))
	}

	units := 0
	for i, r := range content {
		if units >= want {
			return start + i
		}
		units += utf16Len(r)
	}
	return start + len(content)
}

func (d *TextDocument) units(s string) int {
	if d.encoding == EncodingUTF8 {
		return len(s)
	}
	n := 0
	for _, r := range s {
		n += utf16Len(r)
	}
	return n
}

func utf16Len(r rune) int {
	if r == utf8.RuneError {
		return 1
	}
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
