// Package completion computes structural completion candidates for a
// manifest position: table headers after `[`, key names inside a table,
// and enumerated values after `=` or inside an array.
package completion

import (
	"sort"
	"strings"

	"github.com/terror/pyproject/internal/toml"
)

// ItemKind classifies a completion candidate.
type ItemKind uint8

const (
	KindTable ItemKind = iota
	KindKey
	KindValue
)

// Item is one completion candidate.
type Item struct {
	Label  string
	Detail string
	Kind   ItemKind
}

// position describes where in the document the cursor sits.
type position struct {
	table  string // dot path of the enclosing table, "" at top level
	key    string // key left of `=` when in a value position
	prefix string // text already typed for the current candidate
	kind   contextKind
}

type contextKind uint8

const (
	ctxNone contextKind = iota
	ctxTableHeader
	ctxKey
	ctxValue
	ctxArrayItem
)

// Complete returns the candidates for the given byte offset, filtered by
// the already-typed prefix and ranked prefix matches first. Unknown
// contexts and comments yield nothing.
func Complete(doc *toml.Document, offset uint32) []Item {
	pos := locate(doc, offset)
	var items []Item
	switch pos.kind {
	case ctxTableHeader:
		items = headerItems()
	case ctxKey:
		items = keyItems(doc, pos.table)
	case ctxValue, ctxArrayItem:
		items = valueItems(pos.table, pos.key)
	default:
		return nil
	}
	return rank(items, pos.prefix)
}

// locate classifies the offset by inspecting its line and the headers that
// precede it. It works on raw text so it behaves sanely mid-edit, when the
// tree around the cursor may not have parsed.
func locate(doc *toml.Document, offset uint32) position {
	content := string(doc.File.Content)
	if offset > uint32(len(content)) {
		offset = uint32(len(content))
	}
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	before := content[lineStart:offset]

	pos := position{table: enclosingTable(content, lineStart)}

	// Inside a comment nothing completes.
	if i := strings.IndexByte(before, '#'); i >= 0 {
		return pos
	}

	trimmed := strings.TrimLeft(before, " \t")
	if strings.HasPrefix(trimmed, "[") && !strings.Contains(trimmed, "]") {
		pos.kind = ctxTableHeader
		pos.prefix = strings.TrimLeft(trimmed, "[")
		return pos
	}

	if eq := strings.IndexByte(before, '='); eq >= 0 {
		pos.key = strings.Trim(strings.TrimSpace(before[:eq]), `"'`)
		after := before[eq+1:]
		pos.kind = ctxValue
		if bracket := strings.LastIndexByte(after, '['); bracket >= 0 && strings.IndexByte(after[bracket:], ']') < 0 {
			pos.kind = ctxArrayItem
			after = after[bracket+1:]
			if comma := strings.LastIndexByte(after, ','); comma >= 0 {
				after = after[comma+1:]
			}
		}
		pos.prefix = strings.Trim(strings.TrimSpace(after), `"'`)
		return pos
	}

	pos.kind = ctxKey
	pos.prefix = trimmed
	return pos
}

// enclosingTable scans backwards for the nearest `[header]` line above
// lineStart and returns its dot path.
func enclosingTable(content string, lineStart int) string {
	rest := content[:lineStart]
	for len(rest) > 0 {
		start := strings.LastIndexByte(rest[:len(rest)-1], '\n') + 1
		line := strings.TrimSpace(strings.TrimSuffix(rest[start:], "\n"))
		rest = rest[:start]
		if !strings.HasPrefix(line, "[") {
			continue
		}
		header := strings.TrimPrefix(strings.TrimPrefix(line, "["), "[")
		if end := strings.IndexByte(header, ']'); end >= 0 {
			header = header[:end]
		}
		return strings.TrimSpace(header)
	}
	return ""
}

// rank filters items by the typed prefix (matches first by prefix, then by
// substring) and orders each group alphabetically.
func rank(items []Item, prefix string) []Item {
	if prefix == "" {
		sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
		return items
	}
	needle := strings.ToLower(prefix)
	var prefixed, contained []Item
	for _, item := range items {
		label := strings.ToLower(item.Label)
		switch {
		case strings.HasPrefix(label, needle):
			prefixed = append(prefixed, item)
		case strings.Contains(label, needle):
			contained = append(contained, item)
		}
	}
	sort.Slice(prefixed, func(i, j int) bool { return prefixed[i].Label < prefixed[j].Label })
	sort.Slice(contained, func(i, j int) bool { return contained[i].Label < contained[j].Label })
	return append(prefixed, contained...)
}
