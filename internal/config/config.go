// Package config reads the linter's own configuration out of the manifest
// being analyzed: the `[tool.pyproject]` table, currently a `rules` map of
// per-rule severity overrides.
package config

import (
	"fmt"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/rules"
	"github.com/terror/pyproject/internal/source"
	"github.com/terror/pyproject/internal/toml"
)

// Config holds the resolved severity overrides for one document.
type Config struct {
	overrides map[string]diag.Severity

	// Findings collects problems found while reading the configuration
	// itself: unknown rule identifiers, unknown severity literals, wrong
	// value shapes. They surface under the `config` rule identifier.
	Findings []diag.Finding
}

// Load extracts configuration from the document. A manifest without a
// `[tool.pyproject]` table yields an empty Config; malformed entries are
// recorded as findings and otherwise ignored.
func Load(doc *toml.Document) *Config {
	cfg := &Config{overrides: make(map[string]diag.Severity)}
	table := doc.Get("tool.pyproject")
	if table == nil {
		return cfg
	}
	if !table.IsTable() {
		cfg.report(table.Span, "`tool.pyproject` must be a table, found %s", table.Kind)
		return cfg
	}
	for _, e := range table.Entries {
		switch e.Key.Text {
		case "rules":
			cfg.loadRules(e.Value)
		default:
			cfg.report(e.Key.Span, "unknown key `%s` in `tool.pyproject`", e.Key.Text)
		}
	}
	return cfg
}

func (c *Config) loadRules(node *toml.Node) {
	if !node.IsTable() {
		c.report(node.Span, "`tool.pyproject.rules` must be a table, found %s", node.Kind)
		return
	}
	for _, e := range node.Entries {
		if rules.Lookup(e.Key.Text) == nil {
			c.report(e.Key.Span, "unknown rule `%s`", e.Key.Text)
			continue
		}
		sev, ok := c.severityOf(e.Value)
		if !ok {
			continue
		}
		c.overrides[e.Key.Text] = sev
	}
}

// severityOf accepts a bare severity literal or the `{level = "..."}` form.
func (c *Config) severityOf(node *toml.Node) (diag.Severity, bool) {
	switch {
	case node.IsStr():
		sev, err := diag.ParseSeverity(node.Str)
		if err != nil {
			c.report(node.Span, "`%s` is not a severity level", node.Str)
			return 0, false
		}
		return sev, true
	case node.IsTable():
		level := node.Entry("level")
		if level == nil {
			c.report(node.Span, "rule override table must set `level`")
			return 0, false
		}
		for _, e := range node.Entries {
			if e.Key.Text != "level" {
				c.report(e.Key.Span, "unknown key `%s` in rule override", e.Key.Text)
			}
		}
		if !level.Value.IsStr() {
			c.report(level.Value.Span, "`level` must be a string, found %s", level.Value.Kind)
			return 0, false
		}
		sev, err := diag.ParseSeverity(level.Value.Str)
		if err != nil {
			c.report(level.Value.Span, "`%s` is not a severity level", level.Value.Str)
			return 0, false
		}
		return sev, true
	default:
		c.report(node.Span, "rule override must be a severity string or table, found %s", node.Kind)
		return 0, false
	}
}

func (c *Config) report(span source.Span, format string, args ...any) {
	c.Findings = append(c.Findings, diag.NewFinding("config", span, fmt.Sprintf(format, args...)))
}

// Resolve returns the severity in effect for a rule: the override when one
// is configured, the rule's default otherwise.
func (c *Config) Resolve(id string, def diag.Severity) diag.Severity {
	if sev, ok := c.overrides[id]; ok {
		return sev
	}
	return def
}

// Overridden reports whether the configuration overrides the given rule.
func (c *Config) Overridden(id string) bool {
	_, ok := c.overrides[id]
	return ok
}
