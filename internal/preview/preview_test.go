package preview

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/kvit-s/kvit-hints/internal/document"
	"github.com/kvit-s/kvit-hints/internal/hints"
)

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestApply_ConverterOutput(t *testing.T) {
	doc := document.NewTextDocument("const x = 5;\nconst y = 10;\n", document.EncodingUTF16)
	res, err := hints.NewConverter(hints.DefaultOptions(), nil).Convert(`[
		{"prefix":"const y = ","existing":"10","suffix":";","text":"20"},
		{"prefix":"const x = ","existing":"5","suffix":";","text":"6"}
	]`, doc)
	require.NoError(t, err)

	got, err := Apply(doc, res.Edits)
	require.NoError(t, err)
	assert.Equal(t, "const x = 6;\nconst y = 20;\n", got)
	assert.Equal(t, "const x = 5;\nconst y = 10;\n", doc.Text(), "document is untouched")
}

func TestApply_MultibyteUTF16(t *testing.T) {
	doc := document.NewTextDocument("s := \"😀é\" // note\n", document.EncodingUTF16)
	res, err := hints.NewConverter(hints.DefaultOptions(), nil).Convert(
		`[{"prefix":"// ","existing":"note","suffix":"\n","text":"done"}]`, doc)
	require.NoError(t, err)
	require.Len(t, res.Edits, 1)

	got, err := Apply(doc, res.Edits)
	require.NoError(t, err)
	assert.Equal(t, "s := \"😀é\" // done\n", got)
}

func TestPlan_Order(t *testing.T) {
	spans := []Span{
		{Start: 8, End: 9, Text: "b", Index: 0},
		{Start: 2, End: 4, Text: "a", Index: 1},
		{Start: 4, End: 4, Text: "x", Index: 2},
		{Start: 4, End: 4, Text: "y", Index: 3},
	}
	plan, err := planSpans("0123456789", spans)
	require.NoError(t, err)

	var order []int
	for _, s := range plan.Spans() {
		order = append(order, s.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, order)
	assert.Equal(t, 0, spans[0].Index, "input slice is not reordered")

	assert.Equal(t, "01axy4567b9", plan.Result())
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		spans   []Span
		overlap bool
		wantMsg string
	}{
		{"negative start", []Span{{Start: -1, End: 0}}, false, "negative"},
		{"inverted", []Span{{Start: 3, End: 2}}, false, "before start"},
		{"past end", []Span{{Start: 3, End: 11}}, false, "past the end of a 10 byte text"},
		{"overlap", []Span{{Start: 0, End: 5}, {Start: 3, End: 6, Index: 1}}, true, "edits 0 [0:5] and 1 [3:6] overlap"},
		{"insertion inside replacement", []Span{{Start: 0, End: 5}, {Start: 2, End: 2, Index: 1}}, true, "overlap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planSpans("0123456789", tt.spans)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var overlap *OverlapError
			var bad *RangeError
			if tt.overlap {
				assert.True(t, errors.As(err, &overlap))
			} else {
				assert.True(t, errors.As(err, &bad))
			}
		})
	}
}

func TestPlan_Empty(t *testing.T) {
	plan, err := NewPlan(document.NewTextDocument("abc", document.EncodingUTF16), nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Spans())
	assert.Equal(t, "abc", plan.Result())
}

func TestNewPlan_ResolvesPositions(t *testing.T) {
	doc := document.NewTextDocument("ab\ncd\n", document.EncodingUTF16)
	edits := []hints.Edit{
		hints.NewEditFromPositions(pos(1, 0), pos(1, 2), "CD", ""),
		hints.NewEditFromPositions(pos(0, 1), pos(0, 1), "-", ""),
	}
	plan, err := NewPlan(doc, edits)
	require.NoError(t, err)
	assert.Equal(t, []Span{
		{Start: 1, End: 1, Text: "-", Index: 1},
		{Start: 3, End: 5, Text: "CD", Index: 0},
	}, plan.Spans())
	assert.Equal(t, "a-b\nCD\n", plan.Result())
}

func TestUnified(t *testing.T) {
	diff, err := Unified("a\nb\nc\n", "a\nB\nc\n", "main.go")
	require.NoError(t, err)
	assert.Contains(t, diff, "--- main.go")
	assert.Contains(t, diff, "+++ main.go")
	assert.Contains(t, diff, "-b\n")
	assert.Contains(t, diff, "+B\n")

	diff, err = Unified("same\n", "same\n", "main.go")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestInline(t *testing.T) {
	oldText := "const y = 10;"
	newText := "const y = 20;"
	segments := Inline(oldText, newText)
	require.True(t, Changed(segments))

	var before, after strings.Builder
	for _, s := range segments {
		if s.Op != OpInsert {
			before.WriteString(s.Text)
		}
		if s.Op != OpDelete {
			after.WriteString(s.Text)
		}
	}
	assert.Equal(t, oldText, before.String())
	assert.Equal(t, newText, after.String())

	assert.False(t, Changed(Inline("x", "x")))
}
