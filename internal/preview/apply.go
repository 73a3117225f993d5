package preview

import (
	"strings"

	"github.com/kvit-s/kvit-hints/internal/hints"
)

// Result returns the base text with every planned span replaced.
func (p *Plan) Result() string {
	if len(p.spans) == 0 {
		return p.base
	}

	size := len(p.base)
	for _, s := range p.spans {
		size += len(s.Text) - (s.End - s.Start)
	}

	var out strings.Builder
	out.Grow(size)
	cursor := 0
	for _, s := range p.spans {
		out.WriteString(p.base[cursor:s.Start])
		out.WriteString(s.Text)
		cursor = s.End
	}
	out.WriteString(p.base[cursor:])
	return out.String()
}

// Apply plans converter edits against doc and returns the edited copy of
// its text. The document itself is not modified.
func Apply(doc Locator, edits []hints.Edit) (string, error) {
	plan, err := NewPlan(doc, edits)
	if err != nil {
		return "", err
	}
	return plan.Result(), nil
}
