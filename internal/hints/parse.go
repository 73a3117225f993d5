package hints

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseArray recovers a JSON array from a model response.
//
// The whole response is tried first. If it is not valid JSON, the text
// between the first '[' and the last ']' (inclusive) is tried instead, which
// handles arrays wrapped in prose or markdown fences. The scan does not count
// brackets, so stray brackets in the surrounding prose defeat recovery.
func ParseArray(raw string) ([]json.RawMessage, error) {
	value, err := parseDelimited(raw, '[', ']')
	if err != nil {
		return nil, err
	}
	if value[0] != '[' {
		return nil, &ParseError{Kind: ErrorKindNotArray}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, &ParseError{Kind: ErrorKindNotJSON, Err: err}
	}
	return items, nil
}

// ParseObject is the single-object counterpart of ParseArray, scanning
// '{' .. '}' for recovery.
func ParseObject(raw string) (json.RawMessage, error) {
	value, err := parseDelimited(raw, '{', '}')
	if err != nil {
		return nil, err
	}
	if value[0] != '{' {
		return nil, &ParseError{Kind: ErrorKindNotObject}
	}
	return value, nil
}

// parseDelimited returns a syntactically valid JSON value, trimmed of
// surrounding whitespace.
func parseDelimited(raw string, open, close byte) (json.RawMessage, error) {
	strict := bytes.TrimSpace([]byte(raw))
	var scratch json.RawMessage
	strictErr := json.Unmarshal(strict, &scratch)
	if strictErr == nil {
		return strict, nil
	}

	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start < 0 || end < start {
		return nil, &ParseError{Kind: ErrorKindNotJSON, Err: strictErr}
	}

	candidate := []byte(raw[start : end+1])
	if err := json.Unmarshal(candidate, &scratch); err != nil {
		return nil, &ParseError{Kind: ErrorKindNotJSON, Err: err}
	}
	return candidate, nil
}
