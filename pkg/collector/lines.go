package collector

import "strings"

// splitLines splits command output into lines, tolerating CRLF endings
// (Windows command output keeps them even when captured through a pipe).
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// nonBlankLines returns the trimmed non-empty lines of s, in order.
func nonBlankLines(s string) []string {
	out := []string{}
	for _, line := range splitLines(s) {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
