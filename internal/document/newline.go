package document

import "strings"

// Newline is a line terminator style.
type Newline string

const (
	NewlineLF   Newline = "\n"
	NewlineCRLF Newline = "\r\n"
)

// DetectNewline reports CRLF if text contains any "\r\n", else LF.
func DetectNewline(text string) Newline {
	if strings.Contains(text, "\r\n") {
		return NewlineCRLF
	}
	return NewlineLF
}

// Apply rewrites LF-normalized text into this newline style.
func (n Newline) Apply(s string) string {
	if n != NewlineCRLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// String returns a printable name for the style.
func (n Newline) String() string {
	if n == NewlineCRLF {
		return "crlf"
	}
	return "lf"
}
