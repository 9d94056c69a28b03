package rules

import (
	"fmt"
	"strings"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/schema"
	"github.com/terror/pyproject/internal/toml"
)

func init() {
	register(projectClassifiers{})
	register(projectReadme{})
	register(projectReadmeContentType{})
	register(projectPeople{})
}

// projectClassifiers checks `project.classifiers` entries are known trove
// classifiers and not repeated.
type projectClassifiers struct{}

func (projectClassifiers) ID() string                     { return "project-classifiers" }
func (projectClassifiers) Description() string            { return "classifiers are known and unique" }
func (projectClassifiers) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectClassifiers) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("classifiers")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsArray() {
		msg := fmt.Sprintf("`project.classifiers` must be an array, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	seen := make(map[string]bool)
	for _, item := range value.Items {
		if !item.IsStr() {
			msg := fmt.Sprintf("classifier must be a string, found %s", item.Kind)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			continue
		}
		if !schema.IsKnownClassifier(item.Str) {
			msg := fmt.Sprintf("`%s` is not a known classifier", item.Str)
			f := diag.NewFinding(r.ID(), item.Span, msg)
			if match := closestMatch(item.Str, schema.Classifiers(), 5); match != "" {
				f = f.WithSuggestion(match)
			}
			out = append(out, f)
			continue
		}
		if seen[item.Str] {
			msg := fmt.Sprintf("duplicate classifier `%s`", item.Str)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		}
		seen[item.Str] = true
	}
	return out
}

// projectReadme checks the shape of `project.readme`: a path string with a
// recognized suffix, or a table with `file` xor `text` plus `content-type`.
type projectReadme struct{}

func (projectReadme) ID() string                     { return "project-readme" }
func (projectReadme) Description() string            { return "the readme field has a valid shape" }
func (projectReadme) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectReadme) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("readme")
	if entry == nil {
		return nil
	}
	value := entry.Value
	switch {
	case value.IsStr():
		if schema.ContentTypeForSuffix(value.Str) == "" {
			msg := fmt.Sprintf("`%s` has no recognized readme suffix (.md, .rst or .txt)", value.Str)
			return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
		}
		return nil
	case value.IsTable():
		var out []diag.Finding
		file := value.Get("file")
		text := value.Get("text")
		if file != nil && text != nil {
			out = append(out, diag.NewFinding(r.ID(), value.Span, "`project.readme` must not set both `file` and `text`"))
		}
		if file == nil && text == nil {
			out = append(out, diag.NewFinding(r.ID(), value.Span, "`project.readme` table must set `file` or `text`"))
		}
		if value.Get("content-type") == nil {
			out = append(out, diag.NewFinding(r.ID(), value.Span, "`project.readme` table must set `content-type`"))
		}
		for _, e := range value.Entries {
			switch e.Key.Text {
			case "file", "text", "content-type", "charset":
				if !e.Value.IsStr() {
					msg := fmt.Sprintf("`project.readme.%s` must be a string, found %s", e.Key.Text, e.Value.Kind)
					out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
				}
			default:
				msg := fmt.Sprintf("unknown key `%s` in `project.readme`", e.Key.Text)
				out = append(out, diag.NewFinding(r.ID(), e.Key.Span, msg))
			}
		}
		return out
	default:
		msg := fmt.Sprintf("`project.readme` must be a string or table, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
}

// projectReadmeContentType checks the declared content type is one of the
// accepted values and agrees with the file suffix.
type projectReadmeContentType struct{}

func (projectReadmeContentType) ID() string { return "project-readme-content-type" }
func (projectReadmeContentType) Description() string {
	return "the readme content type matches the file"
}
func (projectReadmeContentType) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectReadmeContentType) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	readme := project.Get("readme")
	if !readme.IsTable() {
		return nil
	}
	entry := readme.Entry("content-type")
	if entry == nil || !entry.Value.IsStr() {
		return nil
	}
	declared := entry.Value.Str
	known := false
	for _, ct := range schema.ReadmeContentTypes() {
		if ct == declared {
			known = true
			break
		}
	}
	if !known {
		msg := fmt.Sprintf("`%s` is not a valid readme content type", declared)
		f := diag.NewFinding(r.ID(), entry.Value.Span, msg)
		if match := closestMatch(declared, schema.ReadmeContentTypes(), 5); match != "" {
			f = f.WithSuggestion(match)
		}
		return []diag.Finding{f}
	}
	if file := readme.Get("file"); file.IsStr() {
		if expected := schema.ContentTypeForSuffix(file.Str); expected != "" && expected != declared {
			msg := fmt.Sprintf("content type `%s` does not match `%s`, expected `%s`", declared, file.Str, expected)
			return []diag.Finding{diag.NewFinding(r.ID(), entry.Value.Span, msg).WithSuggestion(expected)}
		}
	}
	return nil
}

// projectPeople checks `project.authors` and `project.maintainers` are
// arrays of tables carrying `name` and/or `email` strings.
type projectPeople struct{}

func (projectPeople) ID() string                     { return "project-people" }
func (projectPeople) Description() string            { return "author and maintainer entries are well-formed" }
func (projectPeople) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectPeople) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	var out []diag.Finding
	for _, field := range []string{"authors", "maintainers"} {
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
		for _, item := range value.Items {
			out = append(out, r.checkPerson(field, item)...)
		}
	}
	return out
}

func (r projectPeople) checkPerson(field string, item *toml.Node) []diag.Finding {
	if !item.IsTable() {
		msg := fmt.Sprintf("`project.%s` entry must be a table, found %s", field, item.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), item.Span, msg)}
	}
	var out []diag.Finding
	if item.Get("name") == nil && item.Get("email") == nil {
		msg := fmt.Sprintf("`project.%s` entry must set `name` or `email`", field)
		out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
	}
	for _, e := range item.Entries {
		switch e.Key.Text {
		case "name":
			if !e.Value.IsStr() {
				msg := fmt.Sprintf("`name` must be a string, found %s", e.Value.Kind)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			} else if strings.ContainsAny(e.Value.Str, ",\n") {
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, "`name` must not contain commas or newlines"))
			}
		case "email":
			if !e.Value.IsStr() {
				msg := fmt.Sprintf("`email` must be a string, found %s", e.Value.Kind)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			} else if !validEmail(e.Value.Str) {
				msg := fmt.Sprintf("`%s` is not a valid email address", e.Value.Str)
				out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
			}
		default:
			msg := fmt.Sprintf("unknown key `%s` in `project.%s` entry", e.Key.Text, field)
			out = append(out, diag.NewFinding(r.ID(), e.Key.Span, msg))
		}
	}
	return out
}

func validEmail(addr string) bool {
	at := strings.LastIndex(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return false
	}
	domain := addr[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(addr, " \t\n")
}
