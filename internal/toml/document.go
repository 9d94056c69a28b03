package toml

import (
	"strings"

	"github.com/terror/pyproject/internal/source"
)

// ParseError is a recovered syntax error. Parsing never aborts: the
// offending stretch is skipped and recorded here instead.
type ParseError struct {
	Span source.Span
	Msg  string
}

// KeyConflict records a key defined twice at the same nesting level. The
// first occurrence wins; the duplicate is reported, never silently applied.
type KeyConflict struct {
	Key    string
	First  source.Span
	Second source.Span
}

// Document is an immutable snapshot of one parsed manifest: the node tree,
// the original text it was parsed from, and the recovered errors. A session
// rebuilds the whole Document on every edit under a new version number.
type Document struct {
	File      *source.File
	Root      *Node
	Version   int32
	Errors    []ParseError
	Conflicts []KeyConflict
}

// Parse builds a Document from raw text. It always returns a usable
// Document: malformed stretches become entries in Errors and parsing
// continues on the next line.
func Parse(text string, version int32) *Document {
	return ParseFile(source.NewVirtual("pyproject.toml", text), version)
}

// ParseFile parses an already-loaded file.
func ParseFile(f *source.File, version int32) *Document {
	p := newParser(f)
	p.run()
	return &Document{
		File:      f,
		Root:      p.root,
		Version:   version,
		Errors:    p.errors,
		Conflicts: p.conflicts,
	}
}

// Get navigates the tree by a dot-separated path ("project.name") and
// returns the node there, or nil if any segment is missing or not a table.
func (d *Document) Get(path string) *Node {
	current := d.Root
	if path == "" {
		return current
	}
	for _, key := range strings.Split(path, ".") {
		if key == "" || current == nil || current.Kind != KindTable {
			return nil
		}
		current = current.Get(key)
	}
	return current
}

// Slice returns the original text covered by span.
func (d *Document) Slice(span source.Span) string {
	return d.File.Slice(span)
}
