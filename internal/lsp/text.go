package lsp

import "strings"

// applyChanges applies incremental content changes in order. A change
// without a range replaces the whole document.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition converts a 0-based line / UTF-16 character position into
// a byte offset, clamping past-the-end positions. It operates on the live
// editing buffer, whose bytes must survive exactly as the client sent them,
// so it never goes through the normalizing source.File constructors.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	base := 0
	rest := text
	for l := 0; l < pos.Line; l++ {
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return len(text)
		}
		base += nl + 1
		rest = rest[nl+1:]
	}
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return base + utf16Advance(rest, pos.Character)
}
