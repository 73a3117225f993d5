package ui

import (
	"fmt"
	"strings"
	"time"

	"go.lsp.dev/protocol"
)

// FormatRange renders an LSP range as 1-based line:column pairs for humans.
func FormatRange(r protocol.Range) string {
	start := fmt.Sprintf("%d:%d", r.Start.Line+1, r.Start.Character+1)
	if r.Start == r.End {
		return start
	}
	if r.Start.Line == r.End.Line {
		return fmt.Sprintf("%s-%d", start, r.End.Character+1)
	}
	return fmt.Sprintf("%s-%d:%d", start, r.End.Line+1, r.End.Character+1)
}

// FormatText quotes replacement text for compact display, truncating long values
func FormatText(s string) string {
	if len([]rune(s)) > 50 {
		return fmt.Sprintf("%q", string([]rune(s)[:47])+"...")
	}
	return fmt.Sprintf("%q", s)
}

// FormatDuration formats a duration in a human-readable way, omitting zero values
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatChars formats character count in a human-readable way (e.g., "1.5k")
func FormatChars(chars int) string {
	if chars < 1000 {
		return fmt.Sprintf("%d", chars)
	}
	k := float64(chars) / 1000.0
	if k < 10 {
		return fmt.Sprintf("%.1fk", k)
	}
	return fmt.Sprintf("%.0fk", k)
}

// Plural returns "1 edit" / "2 edits"
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
