package schema

import (
	"fmt"
	"strings"
)

// spdxLicenses is a curated subset of the SPDX license list, keyed by the
// lowercased identifier for case-insensitive lookup.
var spdxLicenses = map[string]string{
	"0bsd":               "0BSD",
	"afl-3.0":            "AFL-3.0",
	"agpl-3.0-only":      "AGPL-3.0-only",
	"agpl-3.0-or-later":  "AGPL-3.0-or-later",
	"apache-1.1":         "Apache-1.1",
	"apache-2.0":         "Apache-2.0",
	"artistic-2.0":       "Artistic-2.0",
	"bsd-2-clause":       "BSD-2-Clause",
	"bsd-3-clause":       "BSD-3-Clause",
	"bsd-3-clause-clear": "BSD-3-Clause-Clear",
	"bsd-4-clause":       "BSD-4-Clause",
	"bsl-1.0":            "BSL-1.0",
	"cc0-1.0":            "CC0-1.0",
	"cc-by-4.0":          "CC-BY-4.0",
	"cc-by-sa-4.0":       "CC-BY-SA-4.0",
	"cddl-1.0":           "CDDL-1.0",
	"ecl-2.0":            "ECL-2.0",
	"epl-1.0":            "EPL-1.0",
	"epl-2.0":            "EPL-2.0",
	"eupl-1.2":           "EUPL-1.2",
	"gpl-2.0-only":       "GPL-2.0-only",
	"gpl-2.0-or-later":   "GPL-2.0-or-later",
	"gpl-3.0-only":       "GPL-3.0-only",
	"gpl-3.0-or-later":   "GPL-3.0-or-later",
	"isc":                "ISC",
	"lgpl-2.1-only":      "LGPL-2.1-only",
	"lgpl-2.1-or-later":  "LGPL-2.1-or-later",
	"lgpl-3.0-only":      "LGPL-3.0-only",
	"lgpl-3.0-or-later":  "LGPL-3.0-or-later",
	"mit":                "MIT",
	"mit-0":              "MIT-0",
	"mpl-2.0":            "MPL-2.0",
	"ms-pl":              "MS-PL",
	"ms-rl":              "MS-RL",
	"ncsa":               "NCSA",
	"ofl-1.1":            "OFL-1.1",
	"osl-3.0":            "OSL-3.0",
	"postgresql":         "PostgreSQL",
	"psf-2.0":            "PSF-2.0",
	"python-2.0":         "Python-2.0",
	"unlicense":          "Unlicense",
	"upl-1.0":            "UPL-1.0",
	"vim":                "Vim",
	"wtfpl":              "WTFPL",
	"zlib":               "Zlib",
	"zpl-2.1":            "ZPL-2.1",
}

// spdxExceptions is a curated subset of the SPDX exception list.
var spdxExceptions = map[string]string{
	"classpath-exception-2.0":      "Classpath-exception-2.0",
	"gcc-exception-3.1":            "GCC-exception-3.1",
	"llvm-exception":               "LLVM-exception",
	"linux-syscall-note":           "Linux-syscall-note",
	"openvpn-openssl-exception":    "openvpn-openssl-exception",
	"gpl-3.0-linking-exception":    "GPL-3.0-linking-exception",
	"lgpl-3.0-linking-exception":   "LGPL-3.0-linking-exception",
	"universal-foss-exception-1.0": "Universal-FOSS-exception-1.0",
}

// CommonLicenses are license expressions offered in `project.license`
// completion items.
func CommonLicenses() []Value {
	return []Value{
		{"MIT", "MIT License"},
		{"Apache-2.0", "Apache License 2.0"},
		{"BSD-3-Clause", "BSD 3-Clause License"},
		{"BSD-2-Clause", "BSD 2-Clause License"},
		{"GPL-3.0-only", "GNU GPL v3 only"},
		{"GPL-3.0-or-later", "GNU GPL v3 or later"},
		{"GPL-2.0-only", "GNU GPL v2 only"},
		{"LGPL-3.0-only", "GNU LGPL v3 only"},
		{"MPL-2.0", "Mozilla Public License 2.0"},
		{"ISC", "ISC License"},
		{"Unlicense", "The Unlicense"},
		{"CC0-1.0", "Creative Commons Zero v1.0"},
		{"Zlib", "zlib License"},
		{"MIT OR Apache-2.0", "Dual MIT / Apache 2.0"},
	}
}

// LookupLicense resolves a license identifier case-insensitively. It returns
// the canonical spelling and whether the identifier is known.
func LookupLicense(id string) (string, bool) {
	canon, ok := spdxLicenses[strings.ToLower(id)]
	return canon, ok
}

// ValidateLicenseExpression checks a PEP 639 license expression against the
// SPDX expression grammar: identifiers optionally suffixed with `+`, joined
// by AND/OR, qualified by WITH <exception>, with parenthesized groups.
// LicenseRef-* identifiers are accepted without lookup.
func ValidateLicenseExpression(expr string) error {
	p := &licenseParser{tokens: tokenizeLicense(expr)}
	if len(p.tokens) == 0 {
		return fmt.Errorf("license expression is empty")
	}
	if err := p.parseExpr(); err != nil {
		return err
	}
	if p.pos != len(p.tokens) {
		return fmt.Errorf("unexpected `%s` in license expression", p.tokens[p.pos])
	}
	return nil
}

func tokenizeLicense(expr string) []string {
	var tokens []string
	fields := strings.FieldsFunc(expr, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	for _, field := range fields {
		for len(field) > 0 && field[0] == '(' {
			tokens = append(tokens, "(")
			field = field[1:]
		}
		var closers int
		for len(field) > 0 && field[len(field)-1] == ')' {
			closers++
			field = field[:len(field)-1]
		}
		if field != "" {
			tokens = append(tokens, field)
		}
		for ; closers > 0; closers-- {
			tokens = append(tokens, ")")
		}
	}
	return tokens
}

type licenseParser struct {
	tokens []string
	pos    int
}

func (p *licenseParser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

// parseExpr handles `term (AND|OR term)*`.
func (p *licenseParser) parseExpr() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for {
		switch strings.ToUpper(p.peek()) {
		case "AND", "OR":
			p.pos++
			if err := p.parseTerm(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parseTerm handles a single identifier or parenthesized group, with an
// optional `WITH <exception>` qualifier.
func (p *licenseParser) parseTerm() error {
	tok := p.peek()
	switch {
	case tok == "":
		return fmt.Errorf("license expression ends unexpectedly")
	case tok == "(":
		p.pos++
		if err := p.parseExpr(); err != nil {
			return err
		}
		if p.peek() != ")" {
			return fmt.Errorf("unclosed `(` in license expression")
		}
		p.pos++
	case tok == ")":
		return fmt.Errorf("unexpected `)` in license expression")
	default:
		upper := strings.ToUpper(tok)
		if upper == "AND" || upper == "OR" || upper == "WITH" {
			return fmt.Errorf("unexpected `%s` in license expression", tok)
		}
		id := strings.TrimSuffix(tok, "+")
		if !strings.HasPrefix(id, "LicenseRef-") {
			if _, ok := LookupLicense(id); !ok {
				return fmt.Errorf("unknown license identifier `%s`", id)
			}
		}
		p.pos++
	}
	if strings.ToUpper(p.peek()) == "WITH" {
		p.pos++
		exc := p.peek()
		if exc == "" || exc == "(" || exc == ")" {
			return fmt.Errorf("`WITH` must be followed by an exception identifier")
		}
		if _, ok := spdxExceptions[strings.ToLower(exc)]; !ok {
			return fmt.Errorf("unknown license exception `%s`", exc)
		}
		p.pos++
	}
	return nil
}
