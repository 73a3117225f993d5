// Package stats provides statistics tracking for hint conversions.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// ConversionStats tracks what happened to the hints of one or more conversions
type ConversionStats struct {
	Conversions int
	Hints       int // elements in the parsed response
	Edits       int // hints that became edits
	Rejected    int // elements that failed shape validation
	Failed      int // conversions aborted by a parse or shape error
	Duration    time.Duration

	// Skips by reason (unresolved_anchor, invalid_line_range)
	Skips map[string]int

	// Resolutions by anchoring strategy (exact, unique_prefix, ...)
	Strategies map[string]int
}

// ConversionStatsJSON is the JSON output format for conversion stats
type ConversionStatsJSON struct {
	Conversions int            `json:"conversions"`
	Hints       int            `json:"hints"`
	Edits       int            `json:"edits"`
	Skipped     int            `json:"skipped"`
	Rejected    int            `json:"rejected,omitempty"`
	Failed      int            `json:"failed,omitempty"`
	DurationMS  float64        `json:"duration_ms"`
	Skips       map[string]int `json:"skips,omitempty"`
	Strategies  map[string]int `json:"strategies,omitempty"`
}

// RecordEdit counts a resolved hint
func (s *ConversionStats) RecordEdit(strategy string) {
	s.Edits++
	if s.Strategies == nil {
		s.Strategies = make(map[string]int)
	}
	s.Strategies[strategy]++
}

// RecordSkip counts a hint dropped for the given reason
func (s *ConversionStats) RecordSkip(reason string) {
	if s.Skips == nil {
		s.Skips = make(map[string]int)
	}
	s.Skips[reason]++
}

// Skipped returns the total number of skipped hints
func (s *ConversionStats) Skipped() int {
	total := 0
	for _, n := range s.Skips {
		total += n
	}
	return total
}

// ToJSON converts ConversionStats to its JSON representation
func (s *ConversionStats) ToJSON() ConversionStatsJSON {
	return ConversionStatsJSON{
		Conversions: s.Conversions,
		Hints:       s.Hints,
		Edits:       s.Edits,
		Skipped:     s.Skipped(),
		Rejected:    s.Rejected,
		Failed:      s.Failed,
		DurationMS:  float64(s.Duration.Microseconds()) / 1000,
		Skips:       s.Skips,
		Strategies:  s.Strategies,
	}
}

// Summary returns a one-line human readable summary
func (s *ConversionStats) Summary() string {
	line := fmt.Sprintf("%d hints, %d edits, %d skipped", s.Hints, s.Edits, s.Skipped())
	if s.Rejected > 0 {
		line += fmt.Sprintf(", %d rejected", s.Rejected)
	}
	if len(s.Strategies) > 0 {
		names := make([]string, 0, len(s.Strategies))
		for name := range s.Strategies {
			names = append(names, name)
		}
		sort.Strings(names)
		line += " ("
		for i, name := range names {
			if i > 0 {
				line += ", "
			}
			line += fmt.Sprintf("%s=%d", name, s.Strategies[name])
		}
		line += ")"
	}
	return line
}

// PrintTo outputs the stats in a formatted JSON block to the given writer
func (s *ConversionStats) PrintTo(w io.Writer) {
	j := s.ToJSON()
	jsonBytes, _ := json.MarshalIndent(j, "", "  ")
	fmt.Fprintln(w, "=== CONVERSION STATS START ===")
	fmt.Fprintln(w, string(jsonBytes))
	fmt.Fprintln(w, "=== CONVERSION STATS END ===")
}
