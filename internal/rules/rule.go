// Package rules implements the analysis rules run against a parsed
// manifest. Each rule is independent: it inspects the document tree and
// emits findings, never touching severity or other rules' output.
package rules

import (
	"sort"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/toml"
)

// Rule is one analysis check over a manifest.
type Rule interface {
	ID() string
	Description() string
	DefaultSeverity() diag.Severity
	Check(ctx *Context) []diag.Finding
}

// Context carries the document under analysis plus cached lookups shared by
// the rules. Rules only read from it.
type Context struct {
	Doc *toml.Document
}

// NewContext wraps a parsed document for rule evaluation.
func NewContext(doc *toml.Document) *Context {
	return &Context{Doc: doc}
}

// Project returns the `[project]` table, or nil when absent or not a table.
func (c *Context) Project() *toml.Node {
	n := c.Doc.Root.Get("project")
	if n.IsTable() {
		return n
	}
	return nil
}

// ProjectEntry returns the `[project]` table entry together with its key
// span, or nil.
func (c *Context) ProjectEntry() *toml.Entry {
	return c.Doc.Root.Entry("project")
}

var registry []Rule

func register(r Rule) {
	registry = append(registry, r)
}

// All returns every registered rule sorted by identifier.
func All() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Lookup returns the rule with the given identifier, or nil.
func Lookup(id string) Rule {
	for _, r := range registry {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// IDs returns every registered rule identifier, sorted.
func IDs() []string {
	all := All()
	out := make([]string, len(all))
	for i, r := range all {
		out[i] = r.ID()
	}
	return out
}
