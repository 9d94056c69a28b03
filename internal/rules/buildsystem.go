package rules

import (
	"fmt"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/pep508"
	"github.com/terror/pyproject/internal/schema"
	"github.com/terror/pyproject/internal/toml"
)

func init() {
	register(buildSystem{})
	register(dependencyGroups{})
}

// buildSystem checks the `[build-system]` table: `requires` is mandatory,
// the backend is an importable reference, and no stray keys appear.
type buildSystem struct{}

func (buildSystem) ID() string                     { return "build-system" }
func (buildSystem) Description() string            { return "the build system table is well-formed" }
func (buildSystem) DefaultSeverity() diag.Severity { return diag.SevError }

func (r buildSystem) Check(ctx *Context) []diag.Finding {
	entry := ctx.Doc.Root.Entry("build-system")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsTable() {
		msg := fmt.Sprintf("`build-system` must be a table, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	if value.Get("requires") == nil {
		out = append(out, diag.NewFinding(r.ID(), entry.Key.Span, "`build-system.requires` is required"))
	}
	known := make([]string, 0, len(schema.BuildSystemKeys()))
	for _, key := range schema.BuildSystemKeys() {
		known = append(known, key.Name)
	}
	for _, e := range value.Entries {
		switch e.Key.Text {
		case "requires":
			out = append(out, checkRequirementArray(r.ID(), "build-system.requires", e.Value)...)
		case "build-backend":
			if !e.Value.IsStr() {
				msg := fmt.Sprintf("`build-system.build-backend` must be a string, found %s", e.Value.Kind)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			} else if !validObjectRef(e.Value.Str) {
				msg := fmt.Sprintf("`%s` is not a valid build backend reference", e.Value.Str)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			}
		case "backend-path":
			if !e.Value.IsArray() {
				msg := fmt.Sprintf("`build-system.backend-path` must be an array, found %s", e.Value.Kind)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
				continue
			}
			for _, item := range e.Value.Items {
				if !item.IsStr() {
					msg := fmt.Sprintf("backend path must be a string, found %s", item.Kind)
					out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
				}
			}
		default:
			msg := fmt.Sprintf("unknown key `%s` in `build-system`", e.Key.Text)
			f := diag.NewFinding(r.ID(), e.Key.Span, msg)
			if match := closestMatch(e.Key.Text, known, 3); match != "" {
				f = f.WithSuggestion(match)
				f.Message = fmt.Sprintf("unknown key `%s` in `build-system`, did you mean `%s`?", e.Key.Text, match)
			}
			out = append(out, f)
		}
	}
	return out
}

// dependencyGroups checks the `[dependency-groups]` table: groups hold
// requirement strings or `include-group` references to existing groups.
type dependencyGroups struct{}

func (dependencyGroups) ID() string                     { return "dependency-groups" }
func (dependencyGroups) Description() string            { return "dependency groups are well-formed" }
func (dependencyGroups) DefaultSeverity() diag.Severity { return diag.SevError }

func (r dependencyGroups) Check(ctx *Context) []diag.Finding {
	entry := ctx.Doc.Root.Entry("dependency-groups")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsTable() {
		msg := fmt.Sprintf("`dependency-groups` must be a table, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}

	groups := make(map[string]bool, len(value.Entries))
	for _, group := range value.Entries {
		groups[pep508.NormalizeName(group.Key.Text)] = true
	}

	var out []diag.Finding
	seen := make(map[string]bool)
	for _, group := range value.Entries {
		if !pep508.ValidName(group.Key.Text) {
			msg := fmt.Sprintf("`%s` is not a valid dependency group name", group.Key.Text)
			out = append(out, diag.NewFinding(r.ID(), group.Key.Span, msg))
		} else {
			name := pep508.NormalizeName(group.Key.Text)
			if seen[name] {
				msg := fmt.Sprintf("duplicate dependency group `%s`", name)
				out = append(out, diag.NewFinding(r.ID(), group.Key.Span, msg))
			}
			seen[name] = true
		}
		if !group.Value.IsArray() {
			msg := fmt.Sprintf("dependency group `%s` must be an array, found %s", group.Key.Text, group.Value.Kind)
			out = append(out, diag.NewFinding(r.ID(), group.Value.Span, msg))
			continue
		}
		for _, item := range group.Value.Items {
			switch {
			case item.IsStr():
				if _, err := pep508.Parse(item.Str); err != nil {
					out = append(out, diag.NewFinding(r.ID(), item.Span, err.Error()))
				}
			case item.IsTable():
				out = append(out, r.checkInclude(item, groups)...)
			default:
				msg := fmt.Sprintf("dependency group entry must be a string or include table, found %s", item.Kind)
				out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			}
		}
	}
	return out
}

func (r dependencyGroups) checkInclude(item *toml.Node, groups map[string]bool) []diag.Finding {
	var out []diag.Finding
	include := item.Entry("include-group")
	if include == nil {
		out = append(out, diag.NewFinding(r.ID(), item.Span, "include table must set `include-group`"))
	} else if !include.Value.IsStr() {
		msg := fmt.Sprintf("`include-group` must be a string, found %s", include.Value.Kind)
		out = append(out, diag.NewFinding(r.ID(), include.Value.Span, msg))
	} else if !groups[pep508.NormalizeName(include.Value.Str)] {
		msg := fmt.Sprintf("`%s` is not a defined dependency group", include.Value.Str)
		out = append(out, diag.NewFinding(r.ID(), include.Value.Span, msg))
	}
	for _, e := range item.Entries {
		if e.Key.Text != "include-group" {
			msg := fmt.Sprintf("unknown key `%s` in dependency group include", e.Key.Text)
			out = append(out, diag.NewFinding(r.ID(), e.Key.Span, msg))
		}
	}
	return out
}
