package preview

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Unified returns a unified diff between old and new content. It is empty
// when nothing changed.
func Unified(oldContent, newContent, filename string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: filename,
		ToFile:   filename,
		Context:  contextLines,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// Op is the kind of an inline diff segment.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Segment is one run of an inline diff.
type Segment struct {
	Op   Op
	Text string
}

// Inline returns a character-level diff cleaned up for human reading.
func Inline(oldContent, newContent string) []Segment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldContent, newContent, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		default:
			op = OpEqual
		}
		segments = append(segments, Segment{Op: op, Text: d.Text})
	}
	return segments
}

// Changed reports whether any segment inserts or deletes text.
func Changed(segments []Segment) bool {
	for _, s := range segments {
		if s.Op != OpEqual {
			return true
		}
	}
	return false
}
