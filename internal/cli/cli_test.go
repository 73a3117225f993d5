package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "const x = 5;\nconst y = 10;\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command with the given stdin and arguments.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("KVIT_HINTS_LOG", "")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", CommitHash: "abc", CommitDate: "2026-01-01", BuildDate: "today"})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand(BuildInfo{})
	for _, name := range []string{"convert", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "kvit-hints 1.2.3-2026-01-01-abc (built today)\n", stdout)
}

func TestConvert_Text(t *testing.T) {
	doc := writeFile(t, "main.js", sampleDoc)
	response := `Sure:
[{"prefix":"const y = ","existing":"10","suffix":";","text":"20","reason":"bump"},
 {"prefix":"","existing":"const","suffix":"","text":"let"}]`

	stdout, _, err := run(t, response, "convert", "--doc", doc)
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, ExitCode(err))

	assert.Contains(t, stdout, "main.js: 1 edit, 1 skip")
	assert.Contains(t, stdout, `[0] 2:11-13 → "20"  (bump)`)
	assert.Contains(t, stdout, "[skip 1] unresolved_anchor")
	assert.Contains(t, stdout, "document 27 chars")
}

func TestConvert_JSONFromFile(t *testing.T) {
	doc := writeFile(t, "main.js", sampleDoc)
	resp := writeFile(t, "resp.txt", `[{"prefix":"const y = ","existing":"10","suffix":";","text":"20"}]`)

	stdout, _, err := run(t, "", "convert", "--doc", doc, "--response", resp, "--format", "json", "--diff", "unified")
	require.NoError(t, err)

	var out struct {
		Edits []struct {
			Range struct {
				Start struct{ Line, Character int }
				End   struct{ Line, Character int }
			}
			Text string
		}
		Skips []any
		Stats struct {
			Edits int `json:"edits"`
		}
		Diff string
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Edits, 1)
	assert.Equal(t, 1, out.Edits[0].Range.Start.Line)
	assert.Equal(t, 10, out.Edits[0].Range.Start.Character)
	assert.Equal(t, 12, out.Edits[0].Range.End.Character)
	assert.Equal(t, "20", out.Edits[0].Text)
	assert.Empty(t, out.Skips)
	assert.Equal(t, 1, out.Stats.Edits)
	assert.Contains(t, out.Diff, "+const y = 20;")
}

func TestConvert_LineRangeInlineDiff(t *testing.T) {
	doc := writeFile(t, "notes.txt", "one\ntwo\nthree\n")

	stdout, _, err := run(t, `[{"startLine":2,"endLine":2,"text":"TWO\n"}]`,
		"convert", "--doc", doc, "--schema", "line_range", "--diff", "inline", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[-two-]{+TWO+}")
}

func TestConvert_Rejected(t *testing.T) {
	doc := writeFile(t, "main.js", sampleDoc)

	_, stderr, err := run(t, "no hints here", "convert", "--doc", doc)
	require.Error(t, err)
	assert.Equal(t, ExitRejected, ExitCode(err))
	assert.True(t, errors.Is(err, ErrBatchRejected))
	assert.Contains(t, stderr, "[error]")

	stdout, _, err := run(t, `[{"prefix":"const y = "}]`, "convert", "--doc", doc, "--format", "json")
	assert.Equal(t, ExitRejected, ExitCode(err))

	var out struct {
		Edits []any          `json:"edits"`
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Empty(t, out.Edits)
	assert.Equal(t, "invalid_hint_shape", out.Error["kind"])
}

func TestConvert_Isolate(t *testing.T) {
	doc := writeFile(t, "main.js", sampleDoc)
	response := `[{"prefix":"const y = "},{"prefix":"const x = ","existing":"5","suffix":";","text":"6"}]`

	stdout, _, err := run(t, response, "convert", "--doc", doc, "--isolate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[rejected 0]")
	assert.Contains(t, stdout, `→ "6"`)
}

func TestConvert_UsageErrors(t *testing.T) {
	_, _, err := run(t, "[]", "convert")
	assert.Equal(t, ExitError, ExitCode(err), "missing --doc")

	_, _, err = run(t, "[]", "convert", "--doc", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, ExitError, ExitCode(err))

	doc := writeFile(t, "main.js", sampleDoc)
	_, _, err = run(t, "[]", "convert", "--doc", doc, "--schema", "fim")
	require.Error(t, err)
	assert.Equal(t, ExitError, ExitCode(err))
	assert.Contains(t, err.Error(), "hints.schema")
}

func TestConvert_ConfigFile(t *testing.T) {
	doc := writeFile(t, "notes.txt", "a\nb\n")
	logPath := filepath.Join(t.TempDir(), "hints.log")
	cfg := writeFile(t, "config.yaml", "hints:\n  schema: line_range\nlog:\n  path: "+logPath+"\n  level: debug\noutput:\n  format: json\n")

	stdout, stderr, err := run(t, `[{"startLine":1,"endLine":1,"text":"A\n"}]`, "convert", "--config", cfg, "--doc", doc)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[info] config: "+cfg)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(stdout), "{"))

	logged, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logged), `"msg":"conversion done"`)
	assert.Contains(t, string(logged), `"doc":"`+doc+`"`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("x")))
}
