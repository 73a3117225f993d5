package hints

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultPreviewChars bounds the element preview carried by a ShapeError
const DefaultPreviewChars = 200

// NormalizeOptions controls shape validation.
type NormalizeOptions struct {
	Schema Schema

	// Isolate reports malformed elements individually instead of failing
	// the whole batch on the first one.
	Isolate bool

	// CoerceNumericStrings accepts "12" where a line number is expected.
	CoerceNumericStrings bool

	// PreviewChars bounds ShapeError.Preview (0 = DefaultPreviewChars)
	PreviewChars int
}

// NormalizeNewlines canonicalizes "\r\n" and lone "\r" to "\n".
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Clip shortens s to at most n runes, marking the cut with "...".
func Clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// Normalize validates every element against the schema and canonicalizes
// newlines in the string fields.
//
// By default the first malformed element fails the batch and no items are
// returned. With opts.Isolate the malformed elements are returned as
// rejects alongside the valid items and err is nil.
func Normalize(elems []json.RawMessage, opts NormalizeOptions) (items []Item, rejects []*ShapeError, err error) {
	previewChars := opts.PreviewChars
	if previewChars <= 0 {
		previewChars = DefaultPreviewChars
	}

	items = make([]Item, 0, len(elems))
	for i, raw := range elems {
		hint, shapeErr := normalizeOne(raw, opts)
		if shapeErr != nil {
			shapeErr.Index = i
			shapeErr.Preview = Clip(compactJSON(raw), previewChars)
			if !opts.Isolate {
				return nil, nil, shapeErr
			}
			rejects = append(rejects, shapeErr)
			continue
		}
		items = append(items, Item{Index: i, Hint: hint})
	}
	return items, rejects, nil
}

func normalizeOne(raw json.RawMessage, opts NormalizeOptions) (Hint, *ShapeError) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ShapeError{Message: "expected a JSON object"}
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, &ShapeError{Message: "expected a JSON object: " + err.Error()}
	}

	reason, err := optionalString(fields, "reason")
	if err != nil {
		return nil, err
	}

	switch opts.Schema {
	case SchemaLineRange:
		if opts.CoerceNumericStrings {
			coerceNumericFields(fields, "startLine", "endLine")
		}
		start, err := requiredInt(fields, "startLine")
		if err != nil {
			return nil, err
		}
		end, err := requiredInt(fields, "endLine")
		if err != nil {
			return nil, err
		}
		text, err := requiredString(fields, "text")
		if err != nil {
			return nil, err
		}
		return LineRangeHint{
			StartLine: start,
			EndLine:   end,
			Text:      NormalizeNewlines(text),
			Reason:    reason,
		}, nil

	default:
		var values [4]string
		for i, name := range []string{"prefix", "existing", "suffix", "text"} {
			v, err := requiredString(fields, name)
			if err != nil {
				return nil, err
			}
			values[i] = NormalizeNewlines(v)
		}
		return PrefixSuffixHint{
			Prefix:   values[0],
			Existing: values[1],
			Suffix:   values[2],
			Text:     values[3],
			Reason:   reason,
		}, nil
	}
}

func requiredString(fields map[string]any, name string) (string, *ShapeError) {
	v, ok := fields[name]
	if !ok {
		return "", &ShapeError{Field: name, Message: "missing required field"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Field: name, Message: "expected a string, got " + jsonTypeName(v)}
	}
	return s, nil
}

func optionalString(fields map[string]any, name string) (string, *ShapeError) {
	v, ok := fields[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ShapeError{Field: name, Message: "expected a string, got " + jsonTypeName(v)}
	}
	return s, nil
}

func requiredInt(fields map[string]any, name string) (int, *ShapeError) {
	v, ok := fields[name]
	if !ok {
		return 0, &ShapeError{Field: name, Message: "missing required field"}
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, &ShapeError{Field: name, Message: "expected a number, got " + jsonTypeName(v)}
	}
	if n, err := num.Int64(); err == nil {
		return clampInt(n), nil
	}
	// 3.0 and 1e2 are integral even though Int64 rejects them
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, &ShapeError{Field: name, Message: "expected an integer, got " + num.String()}
	}
	return clampInt(int64(f)), nil
}

func clampInt(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// coerceNumericFields converts string representations of integers to
// numbers, for models that send "12" instead of 12.
func coerceNumericFields(fields map[string]any, names ...string) {
	for _, name := range names {
		s, ok := fields[name].(string)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			fields[name] = json.Number(strconv.Itoa(n))
		}
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
