package toml

import (
	"github.com/terror/pyproject/internal/source"
)

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	KindTable NodeKind = iota
	KindArray
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDateTime
)

func (k NodeKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindDateTime:
		return "datetime"
	}
	return "unknown"
}

// Key is a table key together with the span of its occurrence.
type Key struct {
	Text string
	Span source.Span
}

// Entry is one key/value pair inside a table. Tables keep entries in
// insertion order.
type Entry struct {
	Key   Key
	Value *Node
}

// Node is a tagged union over the TOML value kinds. Every node carries the
// byte span of the source text that produced it; nodes are never mutated
// after parsing completes.
type Node struct {
	Kind NodeKind
	Span source.Span

	Str   string // KindString and KindDateTime (raw text)
	Int   int64  // KindInteger
	Float float64
	Bool  bool

	Items   []*Node  // KindArray
	Entries []*Entry // KindTable

	// Implicit marks tables created as a side effect of a dotted key or a
	// deeper header, as opposed to an explicit [header] or inline table.
	Implicit bool
}

// IsStr reports whether the node is a string.
func (n *Node) IsStr() bool { return n != nil && n.Kind == KindString }

// IsTable reports whether the node is a table.
func (n *Node) IsTable() bool { return n != nil && n.Kind == KindTable }

// IsArray reports whether the node is an array.
func (n *Node) IsArray() bool { return n != nil && n.Kind == KindArray }

// Get returns the child value for key within a table, or nil.
func (n *Node) Get(key string) *Node {
	if e := n.Entry(key); e != nil {
		return e.Value
	}
	return nil
}

// Entry returns the table entry for key, or nil.
func (n *Node) Entry(key string) *Entry {
	if n == nil || n.Kind != KindTable {
		return nil
	}
	for _, e := range n.Entries {
		if e.Key.Text == key {
			return e
		}
	}
	return nil
}

// Keys returns the table's key texts in insertion order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindTable {
		return nil
	}
	out := make([]string, 0, len(n.Entries))
	for _, e := range n.Entries {
		out = append(out, e.Key.Text)
	}
	return out
}
