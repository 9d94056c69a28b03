package rules

import (
	"fmt"
	"strings"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/pep440"
	"github.com/terror/pyproject/internal/pep508"
	"github.com/terror/pyproject/internal/schema"
	"github.com/terror/pyproject/internal/toml"
)

func init() {
	register(projectName{})
	register(projectVersion{})
	register(projectDescription{})
	register(projectKeywords{})
	register(projectURLs{})
	register(projectUnknownKeys{})
	register(projectDynamic{})
}

// dynamicContains reports whether the `project.dynamic` array names field.
func dynamicContains(project *toml.Node, field string) bool {
	dynamic := project.Get("dynamic")
	if !dynamic.IsArray() {
		return false
	}
	for _, item := range dynamic.Items {
		if item.IsStr() && item.Str == field {
			return true
		}
	}
	return false
}

// projectName requires `project.name` and checks it is a well-formed
// package name. The name may never be dynamic.
type projectName struct{}

func (projectName) ID() string                     { return "project-name" }
func (projectName) Description() string            { return "the project name is present and well-formed" }
func (projectName) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectName) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("name")
	if entry == nil {
		span := ctx.ProjectEntry().Key.Span
		return []diag.Finding{diag.NewFinding(r.ID(), span, "`project.name` is required")}
	}
	if dynamicContains(project, "name") {
		return []diag.Finding{diag.NewFinding(r.ID(), entry.Key.Span, "`project.name` must not be listed in `project.dynamic`")}
	}
	value := entry.Value
	if !value.IsStr() {
		msg := fmt.Sprintf("`project.name` must be a string, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	if !pep508.ValidName(value.Str) {
		msg := fmt.Sprintf("`%s` is not a valid package name", value.Str)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	return nil
}

// projectVersion requires `project.version` (unless declared dynamic) and
// checks it parses as a version.
type projectVersion struct{}

func (projectVersion) ID() string                     { return "project-version" }
func (projectVersion) Description() string            { return "the project version is present and parses" }
func (projectVersion) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectVersion) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("version")
	if entry == nil {
		if dynamicContains(project, "version") {
			return nil
		}
		span := ctx.ProjectEntry().Key.Span
		return []diag.Finding{diag.NewFinding(r.ID(), span, "`project.version` is required unless listed in `project.dynamic`")}
	}
	if dynamicContains(project, "version") {
		return []diag.Finding{diag.NewFinding(r.ID(), entry.Key.Span, "`project.version` is declared dynamic but defined statically")}
	}
	value := entry.Value
	if !value.IsStr() {
		msg := fmt.Sprintf("`project.version` must be a string, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	if _, err := pep440.Parse(value.Str); err != nil {
		msg := fmt.Sprintf("`%s` is not a valid version", value.Str)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	return nil
}

// projectDescription checks `project.description` is a single-line string.
type projectDescription struct{}

func (projectDescription) ID() string { return "project-description" }
func (projectDescription) Description() string {
	return "the project description is a single-line string"
}
func (projectDescription) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectDescription) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("description")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsStr() {
		msg := fmt.Sprintf("`project.description` must be a string, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	if strings.ContainsAny(value.Str, "\n\r") {
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, "`project.description` must not contain newlines")}
	}
	return nil
}

// projectKeywords checks `project.keywords` is an array of unique strings.
type projectKeywords struct{}

func (projectKeywords) ID() string                     { return "project-keywords" }
func (projectKeywords) Description() string            { return "project keywords are unique strings" }
func (projectKeywords) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectKeywords) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("keywords")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsArray() {
		msg := fmt.Sprintf("`project.keywords` must be an array, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	seen := make(map[string]bool)
	for _, item := range value.Items {
		if !item.IsStr() {
			msg := fmt.Sprintf("keyword must be a string, found %s", item.Kind)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			continue
		}
		if seen[item.Str] {
			msg := fmt.Sprintf("duplicate keyword `%s`", item.Str)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		}
		seen[item.Str] = true
	}
	return out
}

// projectURLs checks `project.urls` maps labels to http(s) URLs.
type projectURLs struct{}

func (projectURLs) ID() string                     { return "project-urls" }
func (projectURLs) Description() string            { return "project URLs are well-formed" }
func (projectURLs) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectURLs) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("urls")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsTable() {
		msg := fmt.Sprintf("`project.urls` must be a table, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	for _, e := range value.Entries {
		if !e.Value.IsStr() {
			msg := fmt.Sprintf("URL for `%s` must be a string, found %s", e.Key.Text, e.Value.Kind)
			out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			continue
		}
		url := e.Value.Str
		if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
			msg := fmt.Sprintf("`%s` is not a valid URL", url)
			out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
		}
	}
	return out
}

// projectUnknownKeys flags keys in `[project]` that the metadata
// specification does not define, with a closest-match suggestion.
type projectUnknownKeys struct{}

func (projectUnknownKeys) ID() string                     { return "project-unknown-keys" }
func (projectUnknownKeys) Description() string            { return "only specified keys appear under [project]" }
func (projectUnknownKeys) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectUnknownKeys) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	known := schema.KnownProjectKeys()
	var out []diag.Finding
	for _, e := range project.Entries {
		if schema.IsProjectKey(e.Key.Text) {
			continue
		}
		msg := fmt.Sprintf("unknown key `%s`", e.Key.Text)
		f := diag.NewFinding(r.ID(), e.Key.Span, msg)
		if match := closestMatch(e.Key.Text, known, 3); match != "" {
			f = f.WithSuggestion(match)
			f.Message = fmt.Sprintf("unknown key `%s`, did you mean `%s`?", e.Key.Text, match)
		}
		out = append(out, f)
	}
	return out
}

// projectDynamic checks `project.dynamic` lists known field names and that
// no listed field is also defined statically.
type projectDynamic struct{}

func (projectDynamic) ID() string { return "project-dynamic" }
func (projectDynamic) Description() string {
	return "dynamic fields are known and not statically defined"
}
func (projectDynamic) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectDynamic) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("dynamic")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsArray() {
		msg := fmt.Sprintf("`project.dynamic` must be an array, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	seen := make(map[string]bool)
	for _, item := range value.Items {
		if !item.IsStr() {
			msg := fmt.Sprintf("dynamic field must be a string, found %s", item.Kind)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			continue
		}
		field := item.Str
		if field == "name" {
			out = append(out, diag.NewFinding(r.ID(), item.Span, "`name` must not be dynamic"))
			continue
		}
		if !schema.IsDynamicField(field) {
			msg := fmt.Sprintf("`%s` is not a field that may be dynamic", field)
			f := diag.NewFinding(r.ID(), item.Span, msg)
			if match := closestMatch(field, schema.DynamicFields(), 3); match != "" {
				f = f.WithSuggestion(match)
			}
			out = append(out, f)
			continue
		}
		if seen[field] {
			msg := fmt.Sprintf("duplicate dynamic field `%s`", field)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		}
		seen[field] = true
		// version is checked by its own rule
		if field != "version" && project.Get(field) != nil {
			msg := fmt.Sprintf("`%s` is declared dynamic but defined statically", field)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		}
	}
	return out
}
