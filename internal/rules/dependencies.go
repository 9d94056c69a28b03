package rules

import (
	"fmt"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/pep440"
	"github.com/terror/pyproject/internal/pep508"
	"github.com/terror/pyproject/internal/toml"
)

func init() {
	register(projectDependencies{})
	register(projectDependenciesVersionBounds{})
	register(projectOptionalDependencies{})
	register(projectRequiresPython{})
	register(projectRequiresPythonBounds{})
}

// checkRequirementArray validates one array of dependency strings and
// reports duplicates by normalized name.
func checkRequirementArray(rule, label string, value *toml.Node) []diag.Finding {
	if !value.IsArray() {
		msg := fmt.Sprintf("`%s` must be an array, found %s", label, value.Kind)
		return []diag.Finding{diag.NewFinding(rule, value.Span, msg)}
	}
	var out []diag.Finding
	seen := make(map[string]bool)
	for _, item := range value.Items {
		if !item.IsStr() {
			msg := fmt.Sprintf("dependency must be a string, found %s", item.Kind)
			out = append(out, diag.NewFinding(rule, item.Span, msg))
			continue
		}
		req, err := pep508.Parse(item.Str)
		if err != nil {
			out = append(out, diag.NewFinding(rule, item.Span, err.Error()))
			continue
		}
		name := req.NormalizedName()
		if seen[name] {
			msg := fmt.Sprintf("duplicate dependency `%s`", name)
			out = append(out, diag.NewFinding(rule, item.Span, msg))
		}
		seen[name] = true
	}
	return out
}

// projectDependencies checks `project.dependencies` entries parse as
// dependency strings and are not listed twice.
type projectDependencies struct{}

func (projectDependencies) ID() string                     { return "project-dependencies" }
func (projectDependencies) Description() string            { return "dependencies are valid requirement strings" }
func (projectDependencies) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectDependencies) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("dependencies")
	if entry == nil {
		return nil
	}
	return checkRequirementArray(r.ID(), "project.dependencies", entry.Value)
}

// projectDependenciesVersionBounds hints at dependencies whose specifiers
// leave the upper version end open.
type projectDependenciesVersionBounds struct{}

func (projectDependenciesVersionBounds) ID() string { return "project-dependencies-version-bounds" }
func (projectDependenciesVersionBounds) Description() string {
	return "dependencies carry an upper version bound"
}
func (projectDependenciesVersionBounds) DefaultSeverity() diag.Severity { return diag.SevHint }

func (r projectDependenciesVersionBounds) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	var out []diag.Finding
	check := func(value *toml.Node) {
		if !value.IsArray() {
			return
		}
		for _, item := range value.Items {
			if !item.IsStr() {
				continue
			}
			req, err := pep508.Parse(item.Str)
			if err != nil || req.URL != "" {
				continue
			}
			if !req.Specifiers.HasUpperBound() {
				msg := fmt.Sprintf("`%s` does not set an upper version bound", req.Name)
				out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			}
		}
	}
	if deps := project.Get("dependencies"); deps != nil {
		check(deps)
	}
	if optional := project.Get("optional-dependencies"); optional.IsTable() {
		for _, group := range optional.Entries {
			check(group.Value)
		}
	}
	return out
}

// projectOptionalDependencies checks `project.optional-dependencies` groups
// have well-formed extra names and requirement arrays.
type projectOptionalDependencies struct{}

func (projectOptionalDependencies) ID() string { return "project-optional-dependencies" }
func (projectOptionalDependencies) Description() string {
	return "optional dependency groups are well-formed"
}
func (projectOptionalDependencies) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectOptionalDependencies) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("optional-dependencies")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsTable() {
		msg := fmt.Sprintf("`project.optional-dependencies` must be a table, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	seen := make(map[string]bool)
	for _, group := range value.Entries {
		if !pep508.ValidName(group.Key.Text) {
			msg := fmt.Sprintf("`%s` is not a valid extra name", group.Key.Text)
			out = append(out, diag.NewFinding(r.ID(), group.Key.Span, msg))
		} else {
			name := pep508.NormalizeName(group.Key.Text)
			if seen[name] {
				msg := fmt.Sprintf("duplicate optional dependency group `%s`", name)
				out = append(out, diag.NewFinding(r.ID(), group.Key.Span, msg))
			}
			seen[name] = true
		}
		label := fmt.Sprintf("project.optional-dependencies.%s", group.Key.Text)
		out = append(out, checkRequirementArray(r.ID(), label, group.Value)...)
	}
	return out
}

// projectRequiresPython checks `project.requires-python` parses as a
// version specifier set.
type projectRequiresPython struct{}

func (projectRequiresPython) ID() string { return "project-requires-python" }
func (projectRequiresPython) Description() string {
	return "the python requirement is a valid specifier set"
}
func (projectRequiresPython) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectRequiresPython) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("requires-python")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsStr() {
		msg := fmt.Sprintf("`project.requires-python` must be a string, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	if _, err := pep440.ParseSpecifiers(value.Str); err != nil {
		msg := fmt.Sprintf("`%s` is not a valid version specifier set", value.Str)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	return nil
}

// projectRequiresPythonBounds hints when the python requirement leaves the
// upper end open.
type projectRequiresPythonBounds struct{}

func (projectRequiresPythonBounds) ID() string { return "project-requires-python-bounds" }
func (projectRequiresPythonBounds) Description() string {
	return "the python requirement carries an upper bound"
}
func (projectRequiresPythonBounds) DefaultSeverity() diag.Severity { return diag.SevHint }

func (r projectRequiresPythonBounds) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("requires-python")
	if entry == nil || !entry.Value.IsStr() {
		return nil
	}
	specifiers, err := pep440.ParseSpecifiers(entry.Value.Str)
	if err != nil {
		return nil
	}
	if !specifiers.HasUpperBound() {
		msg := fmt.Sprintf("`%s` does not set an upper version bound", entry.Value.Str)
		return []diag.Finding{diag.NewFinding(r.ID(), entry.Value.Span, msg)}
	}
	return nil
}
