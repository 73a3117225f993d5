package hints

import (
	"fmt"
	"time"

	"github.com/kvit-s/kvit-hints/internal/document"
	"github.com/kvit-s/kvit-hints/internal/logging"
	"github.com/kvit-s/kvit-hints/internal/stats"
)

// ShapePolicy decides what a malformed hint does to its batch
type ShapePolicy string

const (
	// ShapeFailBatch - one malformed hint rejects the whole response
	ShapeFailBatch ShapePolicy = "fail_batch"
	// ShapeIsolate - malformed hints are reported, the rest still convert
	ShapeIsolate ShapePolicy = "isolate"
)

// ParseShapePolicy parses a shape policy name. Empty means ShapeFailBatch.
func ParseShapePolicy(s string) (ShapePolicy, error) {
	switch ShapePolicy(s) {
	case "", ShapeFailBatch:
		return ShapeFailBatch, nil
	case ShapeIsolate:
		return ShapeIsolate, nil
	default:
		return "", fmt.Errorf("unknown shape error policy %q (want fail_batch or isolate)", s)
	}
}

// Options configures a Converter.
type Options struct {
	Schema               Schema
	ShapeErrors          ShapePolicy
	CoerceNumericStrings bool
	PreviewChars         int
}

// DefaultOptions returns prefix/suffix conversion with fail-fast shape checks.
func DefaultOptions() Options {
	return Options{
		Schema:       SchemaPrefixSuffix,
		ShapeErrors:  ShapeFailBatch,
		PreviewChars: DefaultPreviewChars,
	}
}

// Result is the outcome of one conversion.
type Result struct {
	Edits    []Edit                `json:"edits"`
	Skips    []Skip                `json:"skips,omitempty"`
	Rejected []*ShapeError         `json:"-"`
	Stats    stats.ConversionStats `json:"-"`
}

// Converter turns raw model responses into edits for a document.
// It holds no per-call state and is safe for concurrent use.
type Converter struct {
	opts Options
	log  *logging.Logger
}

// NewConverter creates a Converter. A nil logger disables logging.
func NewConverter(opts Options, logger *logging.Logger) *Converter {
	if opts.Schema == "" {
		opts.Schema = SchemaPrefixSuffix
	}
	if opts.ShapeErrors == "" {
		opts.ShapeErrors = ShapeFailBatch
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Converter{opts: opts, log: logger}
}

// Options returns the converter's effective options.
func (c *Converter) Options() Options { return c.opts }

// Convert parses raw, validates every hint and resolves each one against
// doc. Parse and shape errors (under ShapeFailBatch) abort the conversion
// and no edits are returned; unresolvable hints become Skips.
func (c *Converter) Convert(raw string, doc document.Document) (*Result, error) {
	started := time.Now()
	res := &Result{Edits: []Edit{}}
	res.Stats.Conversions = 1

	elems, err := ParseArray(raw)
	if err != nil {
		return nil, c.reject(err, started)
	}
	res.Stats.Hints = len(elems)

	items, rejects, err := Normalize(elems, NormalizeOptions{
		Schema:               c.opts.Schema,
		Isolate:              c.opts.ShapeErrors == ShapeIsolate,
		CoerceNumericStrings: c.opts.CoerceNumericStrings,
		PreviewChars:         c.opts.PreviewChars,
	})
	if err != nil {
		return nil, c.reject(err, started)
	}
	for _, r := range rejects {
		c.log.ItemRejected(r.Index, r.Field, r.Preview)
	}
	res.Rejected = rejects
	res.Stats.Rejected = len(rejects)

	text := doc.Text()
	nl := document.DetectNewline(text)

	for _, item := range items {
		var (
			span   Span
			reason SkipReason
			detail string
		)
		switch h := item.Hint.(type) {
		case PrefixSuffixHint:
			var ok bool
			if span, ok = Anchor(text, h, nl); !ok {
				reason = SkipUnresolvedAnchor
				detail = unresolvedDetail(text, h, nl)
			}
		case LineRangeHint:
			var rangeErr error
			if span, rangeErr = MapLineRange(doc, h); rangeErr != nil {
				reason = SkipInvalidLineRange
				detail = rangeErr.Error()
			}
		default:
			return nil, fmt.Errorf("unsupported hint type %T", item.Hint)
		}

		if reason != "" {
			res.Skips = append(res.Skips, Skip{Index: item.Index, Reason: reason, Detail: detail})
			res.Stats.RecordSkip(string(reason))
			c.log.HintSkipped(item.Index, string(reason), detail)
			continue
		}

		res.Edits = append(res.Edits, NewEdit(doc, span, nl.Apply(item.Hint.Replacement()), item.Hint.Rationale()))
		res.Stats.RecordEdit(string(span.Strategy))
		c.log.EditResolved(item.Index, string(span.Strategy), span.Start, span.End)
	}

	res.Stats.Duration = time.Since(started)
	c.log.ConversionDone(string(c.opts.Schema), res.Stats.Hints, res.Stats.Edits, res.Stats.Skipped(), res.Stats.Duration)
	return res, nil
}

func (c *Converter) reject(err error, started time.Time) error {
	kind := "unknown"
	if k, ok := KindOf(err); ok {
		kind = k.String()
	}
	c.log.BatchRejected(kind, err)
	c.log.ConversionDone(string(c.opts.Schema), 0, 0, 0, time.Since(started))
	return fmt.Errorf("convert %s response: %w", c.opts.Schema, err)
}

// unresolvedDetail describes why a prefix/suffix hint found no location.
func unresolvedDetail(text string, h PrefixSuffixHint, nl document.Newline) string {
	return occurrenceDetail("prefix", text, nl.Apply(h.Prefix)) + ", " +
		occurrenceDetail("existing", text, nl.Apply(h.Existing))
}

// An empty field matches at every position, so it never pins a location.
func occurrenceDetail(field, text, needle string) string {
	if needle == "" {
		return field + " is empty (matches at every position)"
	}
	return fmt.Sprintf("%s %q occurs %d times", field, Clip(needle, 40), len(FindAllOccurrences(text, needle)))
}
