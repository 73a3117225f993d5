package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"github.com/kvit-s/kvit-hints/internal/hints"
	"github.com/kvit-s/kvit-hints/internal/preview"
	"github.com/kvit-s/kvit-hints/internal/stats"
)

// JSONOutput is the structured output for --format json
type JSONOutput struct {
	Edits    []hints.Edit               `json:"edits"`
	Skips    []hints.Skip               `json:"skips"`
	Rejected []map[string]any           `json:"rejected,omitempty"`
	Stats    *stats.ConversionStatsJSON `json:"stats,omitempty"`
	Diff     string                     `json:"diff,omitempty"`
	Error    map[string]any             `json:"error,omitempty"`
}

// Writer renders conversion results. Text goes to stdout, diagnostics to stderr.
type Writer struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool

	// Color definitions, one set per writer so color can be toggled per output
	grayColor   *color.Color
	errorColor  *color.Color
	warnColor   *color.Color
	addColor    *color.Color
	removeColor *color.Color
	hunkColor   *color.Color

	header lipgloss.Style
}

// NewWriter creates a Writer. Color is enabled when useColor is true.
func NewWriter(stdout, stderr io.Writer, useColor bool) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	w := &Writer{
		stdout:      stdout,
		stderr:      stderr,
		grayColor:   color.New(color.FgWhite, color.Faint),
		errorColor:  color.New(color.FgRed),
		warnColor:   color.New(color.FgYellow),
		addColor:    color.New(color.FgGreen),
		removeColor: color.New(color.FgRed),
		hunkColor:   color.New(color.FgCyan),
	}
	w.SetColor(useColor)
	return w
}

// SetColor enables or disables ANSI styling.
func (w *Writer) SetColor(on bool) {
	for _, c := range []*color.Color{w.grayColor, w.errorColor, w.warnColor, w.addColor, w.removeColor, w.hunkColor} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	renderer := lipgloss.NewRenderer(w.stdout)
	if on {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	w.header = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
}

// SetQuiet suppresses everything except edits, diffs and JSON.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Header prints a bold title line for a converted document.
func (w *Writer) Header(title string) {
	if w.quiet {
		return
	}
	fmt.Fprintln(w.stdout, w.header.Render("── "+title+" ──"))
}

// Edits prints one line per edit.
func (w *Writer) Edits(edits []hints.Edit) {
	for i, e := range edits {
		line := fmt.Sprintf("  [%d] %s → %s", i, FormatRange(e.Range), FormatText(e.Text))
		fmt.Fprint(w.stdout, line)
		if e.Reason != "" {
			w.grayColor.Fprintf(w.stdout, "  (%s)", e.Reason)
		}
		fmt.Fprintln(w.stdout)
	}
}

// Skips prints hints that produced no edit, in yellow.
func (w *Writer) Skips(skips []hints.Skip) {
	if w.quiet {
		return
	}
	for _, s := range skips {
		w.warnColor.Fprintf(w.stdout, "  [skip %d] %s", s.Index, s.Reason)
		if s.Detail != "" {
			w.warnColor.Fprintf(w.stdout, ": %s", s.Detail)
		}
		fmt.Fprintln(w.stdout)
	}
}

// Rejected prints hints dropped by shape validation, in red.
func (w *Writer) Rejected(rejects []*hints.ShapeError) {
	if w.quiet {
		return
	}
	for _, r := range rejects {
		where := ""
		if r.Field != "" {
			where = fmt.Sprintf(" field %q", r.Field)
		}
		w.errorColor.Fprintf(w.stdout, "  [rejected %d]%s: %s\n", r.Index, where, r.Message)
	}
}

// Summary prints the stats line and the size of the converted document in gray.
func (w *Writer) Summary(s *stats.ConversionStats, docChars int) {
	if w.quiet {
		return
	}
	w.grayColor.Fprintf(w.stdout, "%s in %s, document %s chars\n", s.Summary(), FormatDuration(s.Duration), FormatChars(docChars))
}

// UnifiedDiff prints a unified diff with added and removed lines colored.
func (w *Writer) UnifiedDiff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(w.stdout, line)
		case strings.HasPrefix(line, "@@"):
			w.hunkColor.Fprint(w.stdout, line)
		case strings.HasPrefix(line, "+"):
			w.addColor.Fprint(w.stdout, line)
		case strings.HasPrefix(line, "-"):
			w.removeColor.Fprint(w.stdout, line)
		default:
			fmt.Fprint(w.stdout, line)
		}
	}
}

// InlineDiff prints the document with deletions as [-x-] and insertions as
// {+y+}, colored when color is on.
func (w *Writer) InlineDiff(segments []preview.Segment) {
	for _, s := range segments {
		switch s.Op {
		case preview.OpDelete:
			w.removeColor.Fprintf(w.stdout, "[-%s-]", s.Text)
		case preview.OpInsert:
			w.addColor.Fprintf(w.stdout, "{+%s+}", s.Text)
		default:
			fmt.Fprint(w.stdout, s.Text)
		}
	}
	if n := len(segments); n > 0 && !strings.HasSuffix(segments[n-1].Text, "\n") {
		fmt.Fprintln(w.stdout)
	}
}

// WriteJSON outputs the structured result to stdout.
func (w *Writer) WriteJSON(out JSONOutput) error {
	if out.Edits == nil {
		out.Edits = []hints.Edit{}
	}
	if out.Skips == nil {
		out.Skips = []hints.Skip{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.stdout, string(data))
	return err
}

// Info prints an info message with [info] prefix in gray.
func (w *Writer) Info(msg string) {
	if w.quiet {
		return
	}
	w.grayColor.Fprintf(w.stderr, "[info] %s\n", msg)
}

// Warn prints a warning message with [warn] prefix in yellow.
func (w *Writer) Warn(msg string) {
	if w.quiet {
		return
	}
	w.warnColor.Fprintf(w.stderr, "[warn] %s\n", msg)
}

// Error prints an error message with [error] prefix in red. Errors are
// printed even in quiet mode.
func (w *Writer) Error(msg string) {
	w.errorColor.Fprintf(w.stderr, "[error] %s\n", msg)
}
