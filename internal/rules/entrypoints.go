package rules

import (
	"fmt"
	"strings"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/toml"
)

func init() {
	register(projectEntryPoints{})
	register(projectEntryPointsExtras{})
	register(projectImportNames{})
}

// pythonIdentifier reports whether s is a plain Python identifier.
func pythonIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 && !alpha {
			return false
		}
		if !alpha && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// dottedIdentifier reports whether s is a dot-separated chain of Python
// identifiers.
func dottedIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !pythonIdentifier(part) {
			return false
		}
	}
	return true
}

// stripEntryPointExtras removes a trailing ` [extras]` marker from an entry
// point object reference.
func stripEntryPointExtras(ref string) string {
	if i := strings.Index(ref, "["); i >= 0 {
		return strings.TrimSpace(ref[:i])
	}
	return ref
}

// validObjectRef reports whether ref is `module` or `module:attr` with
// dotted identifiers on both sides.
func validObjectRef(ref string) bool {
	ref = stripEntryPointExtras(ref)
	module, attr, hasAttr := strings.Cut(ref, ":")
	if !dottedIdentifier(strings.TrimSpace(module)) {
		return false
	}
	if hasAttr && !dottedIdentifier(strings.TrimSpace(attr)) {
		return false
	}
	return true
}

// projectEntryPoints checks `project.scripts`, `project.gui-scripts` and
// `project.entry-points` map names to importable object references, and
// that the reserved script groups are not redeclared under entry-points.
type projectEntryPoints struct{}

func (projectEntryPoints) ID() string                     { return "project-entry-points" }
func (projectEntryPoints) Description() string            { return "entry points reference importable objects" }
func (projectEntryPoints) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectEntryPoints) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	var out []diag.Finding
	for _, field := range []string{"scripts", "gui-scripts"} {
		if entry := project.Entry(field); entry != nil {
			out = append(out, r.checkGroup("project."+field, entry.Value)...)
		}
	}
	entry := project.Entry("entry-points")
	if entry == nil {
		return out
	}
	value := entry.Value
	if !value.IsTable() {
		msg := fmt.Sprintf("`project.entry-points` must be a table, found %s", value.Kind)
		return append(out, diag.NewFinding(r.ID(), value.Span, msg))
	}
	for _, group := range value.Entries {
		switch group.Key.Text {
		case "console_scripts", "scripts":
			msg := fmt.Sprintf("use `project.scripts` instead of the `%s` entry point group", group.Key.Text)
			out = append(out, diag.NewFinding(r.ID(), group.Key.Span, msg))
			continue
		case "gui_scripts", "gui-scripts":
			msg := fmt.Sprintf("use `project.gui-scripts` instead of the `%s` entry point group", group.Key.Text)
			out = append(out, diag.NewFinding(r.ID(), group.Key.Span, msg))
			continue
		}
		label := fmt.Sprintf("project.entry-points.%s", group.Key.Text)
		out = append(out, r.checkGroup(label, group.Value)...)
	}
	return out
}

func (r projectEntryPoints) checkGroup(label string, group *toml.Node) []diag.Finding {
	if !group.IsTable() {
		msg := fmt.Sprintf("`%s` must be a table, found %s", label, group.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), group.Span, msg)}
	}
	var out []diag.Finding
	for _, e := range group.Entries {
		if !e.Value.IsStr() {
			msg := fmt.Sprintf("entry point `%s` must be a string, found %s", e.Key.Text, e.Value.Kind)
			out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			continue
		}
		if !validObjectRef(e.Value.Str) {
			msg := fmt.Sprintf("`%s` is not a valid object reference (expected `module` or `module:attribute`)", e.Value.Str)
			out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
		}
	}
	return out
}

// projectEntryPointsExtras warns about the deprecated ` [extras]` marker in
// entry point object references.
type projectEntryPointsExtras struct{}

func (projectEntryPointsExtras) ID() string { return "project-entry-points-extras" }
func (projectEntryPointsExtras) Description() string {
	return "entry point extras markers are deprecated"
}
func (projectEntryPointsExtras) DefaultSeverity() diag.Severity { return diag.SevWarning }

func (r projectEntryPointsExtras) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	var out []diag.Finding
	check := func(group *toml.Node) {
		if !group.IsTable() {
			return
		}
		for _, e := range group.Entries {
			if e.Value.IsStr() && strings.Contains(e.Value.Str, "[") {
				msg := fmt.Sprintf("extras marker in `%s` is deprecated and ignored by modern tools", e.Value.Str)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			}
		}
	}
	check(project.Get("scripts"))
	check(project.Get("gui-scripts"))
	if groups := project.Get("entry-points"); groups.IsTable() {
		for _, group := range groups.Entries {
			check(group.Value)
		}
	}
	return out
}

// projectImportNames checks `project.import-names` and
// `project.import-namespaces` list dotted Python module names.
type projectImportNames struct{}

func (projectImportNames) ID() string                     { return "project-import-names" }
func (projectImportNames) Description() string            { return "import names are valid module paths" }
func (projectImportNames) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectImportNames) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	var out []diag.Finding
	for _, field := range []string{"import-names", "import-namespaces"} {
		entry := project.Entry(field)
		if entry == nil {
			continue
		}
		value := entry.Value
		if !value.IsArray() {
			msg := fmt.Sprintf("`project.%s` must be an array, found %s", field, value.Kind)
			out = append(out, diag.NewFinding(r.ID(), value.Span, msg))
			continue
		}
		seen := make(map[string]bool)
		for _, item := range value.Items {
			if !item.IsStr() {
				msg := fmt.Sprintf("import name must be a string, found %s", item.Kind)
				out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
				continue
			}
			if !dottedIdentifier(item.Str) {
				msg := fmt.Sprintf("`%s` is not a valid module name", item.Str)
				out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
				continue
			}
			if seen[item.Str] {
				msg := fmt.Sprintf("duplicate import name `%s`", item.Str)
				out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			}
			seen[item.Str] = true
		}
	}
	return out
}
