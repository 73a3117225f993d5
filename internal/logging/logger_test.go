package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_EmptyPathIsNop(t *testing.T) {
	l, err := NewLogger("", false, "debug")
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Debug("dropped")
	assert.NoError(t, l.Close())
}

func TestNewLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hints.log")

	l, err := NewLogger(path, false, "info")
	require.NoError(t, err)
	l.ConversionDone("prefix_suffix", 3, 2, 1, 5*time.Millisecond)
	l.HintSkipped(2, "unresolved_anchor", "below level")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug events are filtered at info level")
	assert.Contains(t, lines[0], `"msg":"conversion done"`)
	assert.Contains(t, lines[0], `"edits":2`)
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(filepath.Join(t.TempDir(), "x.log"), false, "loud")
	assert.Error(t, err)
}

func TestLogger_Events(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core)).With(zap.String("doc", "main.go"))

	l.BatchRejected("not_json", errors.New("boom"))
	l.ItemRejected(4, "text", `{"prefix":"a"}`)
	l.EditResolved(0, "exact", 10, 12)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "batch rejected", entries[0].Message)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
	assert.Equal(t, "main.go", entries[0].ContextMap()["doc"])

	assert.Equal(t, "hint rejected", entries[1].Message)
	assert.Equal(t, "text", entries[1].ContextMap()["field"])

	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
	assert.Equal(t, "exact", entries[2].ContextMap()["strategy"])
	assert.Equal(t, int64(12), entries[2].ContextMap()["end"])
}

func TestNew_NilIsNop(t *testing.T) {
	l := New(nil)
	require.NotNil(t, l)
	l.Error("ignored", errors.New("x"))
}
