package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionStats_Record(t *testing.T) {
	var s ConversionStats
	s.RecordEdit("exact")
	s.RecordEdit("exact")
	s.RecordEdit("insertion")
	s.RecordSkip("unresolved_anchor")

	assert.Equal(t, 3, s.Edits)
	assert.Equal(t, 1, s.Skipped())
	assert.Equal(t, map[string]int{"exact": 2, "insertion": 1}, s.Strategies)
}

func TestConversionStats_Summary(t *testing.T) {
	s := ConversionStats{Hints: 4, Rejected: 1}
	s.RecordEdit("unique_prefix")
	s.RecordEdit("exact")
	s.RecordSkip("unresolved_anchor")

	assert.Equal(t, "4 hints, 2 edits, 1 skipped, 1 rejected (exact=1, unique_prefix=1)", s.Summary())
	assert.Equal(t, "0 hints, 0 edits, 0 skipped", (&ConversionStats{}).Summary())
}

func TestConversionStats_PrintTo(t *testing.T) {
	s := ConversionStats{Conversions: 1, Hints: 1, Duration: 1500 * time.Microsecond}
	s.RecordEdit("exact")

	var buf bytes.Buffer
	s.PrintTo(&buf)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "=== CONVERSION STATS START ===\n"))
	require.True(t, strings.HasSuffix(out, "=== CONVERSION STATS END ===\n"))

	body := strings.TrimSuffix(strings.TrimPrefix(out, "=== CONVERSION STATS START ===\n"), "=== CONVERSION STATS END ===\n")
	var j ConversionStatsJSON
	require.NoError(t, json.Unmarshal([]byte(body), &j))
	assert.Equal(t, 1, j.Edits)
	assert.Equal(t, 1.5, j.DurationMS)
	assert.Equal(t, map[string]int{"exact": 1}, j.Strategies)
}
