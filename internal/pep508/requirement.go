// Package pep508 parses dependency requirement strings: a package name,
// optional extras, an optional version specifier set or direct URL, and an
// optional environment marker tail.
package pep508

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/terror/pyproject/internal/pep440"
)

var (
	nameRe      = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	extraRe     = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	normalizeRe = regexp.MustCompile(`[-_.]+`)
)

// Requirement is a parsed dependency string.
type Requirement struct {
	Name       string // as written, not normalized
	Extras     []string
	Specifiers pep440.Specifiers
	URL        string
	Marker     string
}

// NormalizedName returns the PEP 503 normalization of the requirement name.
func (r *Requirement) NormalizedName() string {
	return NormalizeName(r.Name)
}

// ValidName reports whether name is a well-formed package name: it starts
// and ends with a letter or digit, with `.`, `-` and `_` allowed between.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// NormalizeName lowercases a package name and collapses runs of `-`, `_`
// and `.` into a single `-` (PEP 503).
func NormalizeName(name string) string {
	return strings.ToLower(normalizeRe.ReplaceAllString(name, "-"))
}

// ExtractName returns the raw package name prefix of a dependency string
// before any normalization, or "" if there is none.
func ExtractName(value string) string {
	trimmed := strings.TrimLeft(value, " \t")
	end := strings.IndexAny(trimmed, " \t[(!=<>~;@,")
	if end < 0 {
		end = len(trimmed)
	}
	return strings.TrimRight(trimmed[:end], " \t")
}

// Parse parses a PEP 508 requirement string.
func Parse(text string) (*Requirement, error) {
	rest := strings.TrimSpace(text)
	if rest == "" {
		return nil, fmt.Errorf("expected a package name")
	}

	// Environment marker tail.
	req := &Requirement{}
	if i := strings.Index(rest, ";"); i >= 0 {
		req.Marker = strings.TrimSpace(rest[i+1:])
		rest = strings.TrimSpace(rest[:i])
		if req.Marker == "" {
			return nil, fmt.Errorf("expected an environment marker after `;`")
		}
	}

	name := ExtractName(rest)
	if name == "" {
		return nil, fmt.Errorf("expected a package name")
	}
	if !nameRe.MatchString(name) {
		return nil, fmt.Errorf("`%s` is not a valid package name", name)
	}
	req.Name = name
	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(rest, " \t"), name))

	// Extras: [extra1, extra2]
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return nil, fmt.Errorf("unclosed extras bracket")
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if !extraRe.MatchString(extra) {
				return nil, fmt.Errorf("`%s` is not a valid extra name", extra)
			}
			req.Extras = append(req.Extras, extra)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	if rest == "" {
		return req, nil
	}

	// Direct URL reference: name @ url
	if strings.HasPrefix(rest, "@") {
		req.URL = strings.TrimSpace(rest[1:])
		if req.URL == "" {
			return nil, fmt.Errorf("expected a URL after `@`")
		}
		return req, nil
	}

	// Version specifiers, optionally parenthesized.
	if strings.HasPrefix(rest, "(") {
		if !strings.HasSuffix(rest, ")") {
			return nil, fmt.Errorf("unclosed version specifier parenthesis")
		}
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}
	specifiers, err := pep440.ParseSpecifiers(rest)
	if err != nil {
		return nil, err
	}
	req.Specifiers = specifiers
	return req, nil
}
