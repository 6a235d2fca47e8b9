package logger

import (
	"fmt"
	"strings"
)

// SanitizeForLog escapes control characters in externally supplied strings
// (requirement fields, rejection reasons, provider error bodies) before they
// reach the log stream. Newlines and carriage returns could otherwise forge
// log entries, and ANSI escapes could manipulate terminal output. Unicode
// text is preserved as-is.
func SanitizeForLog(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		case '\t':
			result.WriteString("\\t")
		case '\x00':
			result.WriteString("\\x00")
		default:
			if r < 32 || r == 127 || r == '\x1b' {
				result.WriteString(fmt.Sprintf("\\x%02x", r))
			} else {
				result.WriteRune(r)
			}
		}
	}
	return result.String()
}
