package hints

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. Batch-level failures returned by
// ParseArray, ParseObject and Normalize match exactly one of these.
var (
	ErrNotJSON          = errors.New("response is not valid JSON")
	ErrNotArray         = errors.New("response JSON is not an array")
	ErrNotObject        = errors.New("response JSON is not an object")
	ErrInvalidHintShape = errors.New("invalid hint shape")
)

// ErrorKind classifies batch-level conversion failures
type ErrorKind int

const (
	// ErrorKindNotJSON - nothing parseable even after substring recovery
	ErrorKindNotJSON ErrorKind = iota

	// ErrorKindNotArray - valid JSON, wrong top-level type for ParseArray
	ErrorKindNotArray

	// ErrorKindNotObject - valid JSON, wrong top-level type for ParseObject
	ErrorKindNotObject

	// ErrorKindInvalidShape - an element is missing a field or has the wrong type
	ErrorKindInvalidShape
)

// String returns the snake_case name used in logs and JSON output
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNotJSON:
		return "not_json"
	case ErrorKindNotArray:
		return "not_array"
	case ErrorKindNotObject:
		return "not_object"
	case ErrorKindInvalidShape:
		return "invalid_hint_shape"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindNotJSON:
		return ErrNotJSON
	case ErrorKindNotArray:
		return ErrNotArray
	case ErrorKindNotObject:
		return ErrNotObject
	default:
		return ErrInvalidHintShape
	}
}

// ParseError is returned when the raw response cannot be turned into the
// expected JSON container.
type ParseError struct {
	Kind ErrorKind
	Err  error // underlying decoder error, if any
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
	}
	return e.Kind.sentinel().Error()
}

// Is matches the sentinel for the error's kind
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying decoder error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ToJSON returns structured details for CLI output
func (e *ParseError) ToJSON() map[string]any {
	result := map[string]any{
		"success": false,
		"kind":    e.Kind.String(),
		"error":   e.Error(),
	}
	return result
}

// ShapeError describes one malformed hint element.
type ShapeError struct {
	Index   int    // position of the element in the response array
	Field   string // offending field, empty when the element itself is wrong
	Message string
	Preview string // clipped JSON of the element
}

// Error implements the error interface
func (e *ShapeError) Error() string {
	where := fmt.Sprintf("item %d", e.Index)
	if e.Field != "" {
		where = fmt.Sprintf("item %d field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s (got %s)", ErrInvalidHintShape, where, e.Message, e.Preview)
}

// Is matches ErrInvalidHintShape
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidHintShape
}

// ToJSON returns structured details for CLI output
func (e *ShapeError) ToJSON() map[string]any {
	result := map[string]any{
		"success": false,
		"kind":    ErrorKindInvalidShape.String(),
		"error":   e.Message,
		"index":   e.Index,
		"preview": e.Preview,
	}
	if e.Field != "" {
		result["field"] = e.Field
	}
	return result
}

// KindOf reports the ErrorKind of a batch-level error.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	var se *ShapeError
	if errors.As(err, &se) {
		return ErrorKindInvalidShape, true
	}
	return 0, false
}

// SkipReason explains why a structurally valid hint produced no edit
type SkipReason string

const (
	// SkipUnresolvedAnchor - no strategy found a unique document location
	SkipUnresolvedAnchor SkipReason = "unresolved_anchor"

	// SkipInvalidLineRange - line numbers out of bounds or inverted
	SkipInvalidLineRange SkipReason = "invalid_line_range"
)

// Skip records a hint that was dropped without failing the batch.
type Skip struct {
	Index  int        `json:"index"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}
