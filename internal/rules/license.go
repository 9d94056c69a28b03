package rules

import (
	"fmt"
	"path"
	"strings"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/schema"
)

func init() {
	register(projectLicense{})
	register(projectLicenseValue{})
	register(projectLicenseValueDeprecations{})
	register(projectLicenseFiles{})
	register(projectLicenseClassifiers{})
	register(projectLicenseClassifiersDeprecated{})
}

// projectLicense checks the shape of `project.license`: an expression
// string, or the legacy table form with exactly one of `file` or `text`.
type projectLicense struct{}

func (projectLicense) ID() string                     { return "project-license" }
func (projectLicense) Description() string            { return "the license field has a valid shape" }
func (projectLicense) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectLicense) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("license")
	if entry == nil {
		return nil
	}
	value := entry.Value
	switch {
	case value.IsStr():
		return nil
	case value.IsTable():
		var out []diag.Finding
		file := value.Get("file")
		text := value.Get("text")
		if file != nil && text != nil {
			out = append(out, diag.NewFinding(r.ID(), value.Span, "`project.license` must not set both `file` and `text`"))
		}
		if file == nil && text == nil {
			out = append(out, diag.NewFinding(r.ID(), value.Span, "`project.license` table must set `file` or `text`"))
		}
		for _, e := range value.Entries {
			switch e.Key.Text {
			case "file", "text":
				if !e.Value.IsStr() {
					msg := fmt.Sprintf("`project.license.%s` must be a string, found %s", e.Key.Text, e.Value.Kind)
					out = append(out, diag.NewFinding(r.ID(), e.Value.Span, msg))
				}
			default:
				msg := fmt.Sprintf("unknown key `%s` in `project.license`", e.Key.Text)
				out = append(out, diag.NewFinding(r.ID(), e.Key.Span, msg))
			}
		}
		return out
	default:
		msg := fmt.Sprintf("`project.license` must be a string or table, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
}

// projectLicenseValue checks a string license against the SPDX expression
// grammar and suggests the canonical spelling of a lone identifier.
type projectLicenseValue struct{}

func (projectLicenseValue) ID() string                     { return "project-license-value" }
func (projectLicenseValue) Description() string            { return "the license expression is valid SPDX" }
func (projectLicenseValue) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectLicenseValue) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("license")
	if entry == nil || !entry.Value.IsStr() {
		return nil
	}
	value := entry.Value
	if err := schema.ValidateLicenseExpression(value.Str); err != nil {
		f := diag.NewFinding(r.ID(), value.Span, err.Error())
		if match := closestLicense(value.Str); match != "" {
			f = f.WithSuggestion(match)
		}
		return []diag.Finding{f}
	}
	// A lone identifier in non-canonical case still validates; nudge
	// toward the canonical spelling.
	if canon, ok := schema.LookupLicense(strings.TrimSpace(value.Str)); ok && canon != strings.TrimSpace(value.Str) {
		msg := fmt.Sprintf("license identifier `%s` should be spelled `%s`", value.Str, canon)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg).WithSuggestion(canon)}
	}
	return nil
}

func closestLicense(expr string) string {
	if strings.ContainsAny(expr, " \t()") {
		return ""
	}
	var names []string
	for _, lic := range schema.CommonLicenses() {
		names = append(names, lic.Name)
	}
	return closestMatch(expr, names, 3)
}

// projectLicenseValueDeprecations warns about the legacy license table
// form, superseded by expression strings.
type projectLicenseValueDeprecations struct{}

func (projectLicenseValueDeprecations) ID() string { return "project-license-value-deprecations" }
func (projectLicenseValueDeprecations) Description() string {
	return "the legacy license table form is deprecated"
}
func (projectLicenseValueDeprecations) DefaultSeverity() diag.Severity { return diag.SevWarning }

func (r projectLicenseValueDeprecations) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("license")
	if entry == nil || !entry.Value.IsTable() {
		return nil
	}
	msg := "the `project.license` table form is deprecated, use an SPDX expression string"
	return []diag.Finding{diag.NewFinding(r.ID(), entry.Value.Span, msg)}
}

// projectLicenseFiles checks `project.license-files` holds relative glob
// patterns.
type projectLicenseFiles struct{}

func (projectLicenseFiles) ID() string                     { return "project-license-files" }
func (projectLicenseFiles) Description() string            { return "license file patterns are relative globs" }
func (projectLicenseFiles) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectLicenseFiles) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	entry := project.Entry("license-files")
	if entry == nil {
		return nil
	}
	value := entry.Value
	if !value.IsArray() {
		msg := fmt.Sprintf("`project.license-files` must be an array, found %s", value.Kind)
		return []diag.Finding{diag.NewFinding(r.ID(), value.Span, msg)}
	}
	var out []diag.Finding
	for _, item := range value.Items {
		if !item.IsStr() {
			msg := fmt.Sprintf("license file pattern must be a string, found %s", item.Kind)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			continue
		}
		pattern := item.Str
		switch {
		case strings.HasPrefix(pattern, "/") || strings.Contains(pattern, "\\"):
			msg := fmt.Sprintf("`%s` must be a relative path with `/` separators", pattern)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		case pattern == ".." || strings.HasPrefix(pattern, "../") || strings.Contains(pattern, "/../"):
			msg := fmt.Sprintf("`%s` must not point outside the project directory", pattern)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		default:
			if _, err := path.Match(pattern, ""); err != nil {
				msg := fmt.Sprintf("`%s` is not a valid glob pattern", pattern)
				out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
			}
		}
	}
	return out
}

// projectLicenseClassifiers flags license classifiers that duplicate an
// SPDX expression already present in `project.license`.
type projectLicenseClassifiers struct{}

func (projectLicenseClassifiers) ID() string { return "project-license-classifiers" }
func (projectLicenseClassifiers) Description() string {
	return "license classifiers do not duplicate the license expression"
}
func (projectLicenseClassifiers) DefaultSeverity() diag.Severity { return diag.SevError }

func (r projectLicenseClassifiers) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	license := project.Get("license")
	if !license.IsStr() {
		return nil
	}
	classifiers := project.Get("classifiers")
	if !classifiers.IsArray() {
		return nil
	}
	var out []diag.Finding
	for _, item := range classifiers.Items {
		if item.IsStr() && schema.IsLicenseClassifier(item.Str) {
			msg := fmt.Sprintf("`%s` is redundant with the `project.license` expression", item.Str)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		}
	}
	return out
}

// projectLicenseClassifiersDeprecated warns about `License ::` classifiers,
// superseded by license expressions.
type projectLicenseClassifiersDeprecated struct{}

func (projectLicenseClassifiersDeprecated) ID() string {
	return "project-license-classifiers-deprecated"
}
func (projectLicenseClassifiersDeprecated) Description() string {
	return "license classifiers are deprecated"
}
func (projectLicenseClassifiersDeprecated) DefaultSeverity() diag.Severity { return diag.SevWarning }

func (r projectLicenseClassifiersDeprecated) Check(ctx *Context) []diag.Finding {
	project := ctx.Project()
	if project == nil {
		return nil
	}
	classifiers := project.Get("classifiers")
	if !classifiers.IsArray() {
		return nil
	}
	var out []diag.Finding
	for _, item := range classifiers.Items {
		if item.IsStr() && schema.IsLicenseClassifier(item.Str) {
			msg := fmt.Sprintf("`%s` is deprecated, declare the license with an SPDX expression instead", item.Str)
			out = append(out, diag.NewFinding(r.ID(), item.Span, msg))
		}
	}
	return out
}
