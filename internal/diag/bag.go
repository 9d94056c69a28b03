package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics and produces the stable output order.
type Bag struct {
	items []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic has Error severity.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity == SevError {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the collected diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by start offset, breaking ties by rule
// identifier, for a deterministic output order regardless of rule
// evaluation order. Remaining ties fall back to end offset and message.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Span.Start != dj.Span.Start {
			return di.Span.Start < dj.Span.Start
		}
		if di.Rule != dj.Rule {
			return di.Rule < dj.Rule
		}
		if di.Span.End != dj.Span.End {
			return di.Span.End < dj.Span.End
		}
		return di.Message < dj.Message
	})
}

// Dedup collapses exact duplicates (same rule, same span, same message).
// Distinct rules flagging the same span are deliberately kept.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Rule, d.Span, d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
