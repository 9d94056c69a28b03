// Package format implements line-level manifest formatting: canonical
// spacing around `=`, trailing whitespace removal, blank line collapsing
// and a final newline. It never reorders or rewrites values.
package format

import (
	"strings"
)

// Source formats manifest text. Formatting is idempotent: applying it to
// its own output changes nothing.
func Source(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	inMultiline := false
	var multilineDelim string

	for _, line := range lines {
		if inMultiline {
			out = append(out, line)
			if containsClosingDelim(line, multilineDelim) {
				inMultiline = false
			}
			continue
		}

		formatted := formatLine(line)
		if strings.TrimSpace(formatted) == "" {
			blanks++
			continue
		}
		// A blank run collapses to a single separator line.
		if blanks > 0 && len(out) > 0 {
			out = append(out, "")
		}
		blanks = 0
		out = append(out, formatted)

		if delim, open := opensMultiline(formatted); open {
			inMultiline = true
			multilineDelim = delim
		}
	}

	return strings.Join(out, "\n") + "\n"
}

// formatLine trims trailing whitespace and normalizes the spacing around a
// top-level `=`. Strings and comments pass through untouched.
func formatLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if line == "" {
		return ""
	}
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
		return trimmed
	}
	eq := topLevelEquals(trimmed)
	if eq < 0 {
		return trimmed
	}
	key := strings.TrimRight(trimmed[:eq], " \t")
	value := strings.TrimLeft(trimmed[eq+1:], " \t")
	return key + " = " + value
}

// topLevelEquals finds the first `=` outside of quotes, or -1.
func topLevelEquals(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else if c == '\\' && quote == '"' {
				i++
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return -1
		case c == '=':
			return i
		}
	}
	return -1
}

// opensMultiline reports whether the line opens a triple-quoted string that
// does not close on the same line.
func opensMultiline(line string) (string, bool) {
	for _, delim := range []string{`"""`, "'''"} {
		start := strings.Index(line, delim)
		if start < 0 {
			continue
		}
		rest := line[start+3:]
		if !strings.Contains(rest, delim) {
			return delim, true
		}
	}
	return "", false
}

func containsClosingDelim(line, delim string) bool {
	return strings.Contains(line, delim)
}
