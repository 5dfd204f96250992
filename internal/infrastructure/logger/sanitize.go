package logger

import (
	"fmt"
	"strings"
)

// SanitizeForLog escapes control characters in caller-supplied strings such
// as job paths and titles so they cannot forge log lines or drive the
// terminal. Printable Unicode and backslashes pass through unchanged.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 32 || r == 127 {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
