package completion

import (
	"strings"

	"github.com/terror/pyproject/internal/rules"
	"github.com/terror/pyproject/internal/schema"
	"github.com/terror/pyproject/internal/toml"
)

func headerItems() []Item {
	var out []Item
	for _, h := range schema.TableHeaders() {
		out = append(out, Item{Label: h.Name, Detail: h.Doc, Kind: KindTable})
	}
	return out
}

// keyItems returns the schema keys for the enclosing table, excluding keys
// the table already defines.
func keyItems(doc *toml.Document, table string) []Item {
	var keys []schema.Key
	switch table {
	case "":
		keys = schema.RootKeys()
	case "project":
		keys = schema.ProjectKeys()
	case "build-system":
		keys = schema.BuildSystemKeys()
	case "project.urls":
		return urlLabels
	case "tool.pyproject.rules":
		return ruleItems()
	case "tool.pyproject":
		return []Item{{Label: "rules", Detail: "Per-rule severity overrides", Kind: KindKey}}
	default:
		return nil
	}
	existing := doc.Get(table)
	var out []Item
	for _, key := range keys {
		if existing.Get(key.Name) != nil {
			continue
		}
		out = append(out, Item{Label: key.Name, Detail: key.Doc, Kind: KindKey})
	}
	return out
}

func ruleItems() []Item {
	var out []Item
	for _, r := range rules.All() {
		out = append(out, Item{Label: r.ID(), Detail: r.Description(), Kind: KindKey})
	}
	return out
}

var severityLevels = []Item{
	{Label: "error", Detail: "Report as an error", Kind: KindValue},
	{Label: "warning", Detail: "Report as a warning", Kind: KindValue},
	{Label: "information", Detail: "Report as information", Kind: KindValue},
	{Label: "hint", Detail: "Report as a hint", Kind: KindValue},
	{Label: "off", Detail: "Disable the rule", Kind: KindValue},
}

var urlLabels = []Item{
	{Label: "Homepage", Detail: "Project homepage", Kind: KindKey},
	{Label: "Repository", Detail: "Source repository", Kind: KindKey},
	{Label: "Documentation", Detail: "Project documentation", Kind: KindKey},
	{Label: "Issues", Detail: "Issue tracker", Kind: KindKey},
	{Label: "Changelog", Detail: "Release notes", Kind: KindKey},
}

// valueItems returns the enumerated candidates for a value position, keyed
// by the enclosing table and the key being assigned.
func valueItems(table, key string) []Item {
	if table == "tool.pyproject.rules" {
		return severityLevels
	}
	if strings.HasPrefix(table, "project.optional-dependencies") {
		return fromValues(schema.CommonPackages())
	}
	if table == "dependency-groups" {
		return fromValues(schema.CommonPackages())
	}
	switch table + "." + key {
	case "project.requires-python":
		return fromValues(schema.RequiresPythonRanges())
	case "project.license":
		return fromValues(schema.CommonLicenses())
	case "project.readme":
		return fromValues(schema.ReadmeFiles())
	case "project.dependencies":
		return fromValues(schema.CommonPackages())
	case "project.dynamic":
		return fromStrings(schema.DynamicFields())
	case "project.classifiers":
		return fromStrings(schema.Classifiers())
	case "build-system.build-backend":
		return fromValues(schema.BuildBackends())
	case "build-system.requires":
		return fromValues(schema.BuildRequires())
	}
	return nil
}

func fromValues(values []schema.Value) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Label: v.Name, Detail: v.Doc, Kind: KindValue}
	}
	return out
}

func fromStrings(values []string) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Label: v, Kind: KindValue}
	}
	return out
}
