// Package pep440 implements the subset of PEP 440 version and version
// specifier grammar the rules need: parsing and bound classification.
// Ordering beyond what the rules require is deliberately out of scope.
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionRe is the canonical appendix-B regex from PEP 440, anchored.
var versionRe = regexp.MustCompile(`^v?(?:(?P<epoch>[0-9]+)!)?(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<preL>a|b|c|rc|alpha|beta|pre|preview)[-_.]?(?P<preN>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<postN1>[0-9]+))|(?:[-_.]?(?:post|rev|r)[-_.]?(?P<postN2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?dev[-_.]?(?P<devN>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?$`)

// PreRelease is an alpha/beta/rc segment.
type PreRelease struct {
	Phase  string // "a", "b" or "rc"
	Number int
}

// Version is a parsed PEP 440 version.
type Version struct {
	Epoch   int
	Release []int
	Pre     *PreRelease
	Post    *int
	Dev     *int
	Local   string
}

// Parse parses a PEP 440 version string.
func Parse(text string) (*Version, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	m := versionRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, fmt.Errorf("`%s` is not a valid PEP 440 version", text)
	}
	group := func(name string) string {
		return m[versionRe.SubexpIndex(name)]
	}

	v := &Version{}
	if epoch := group("epoch"); epoch != "" {
		v.Epoch, _ = strconv.Atoi(epoch)
	}
	for _, part := range strings.Split(group("release"), ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("`%s` is not a valid PEP 440 version: release segment too large", text)
		}
		v.Release = append(v.Release, n)
	}
	if group("pre") != "" {
		phase := group("preL")
		switch phase {
		case "alpha":
			phase = "a"
		case "beta":
			phase = "b"
		case "c", "pre", "preview":
			phase = "rc"
		}
		number, _ := strconv.Atoi(group("preN"))
		v.Pre = &PreRelease{Phase: phase, Number: number}
	}
	if group("post") != "" {
		number := 0
		if n := group("postN1"); n != "" {
			number, _ = strconv.Atoi(n)
		} else if n := group("postN2"); n != "" {
			number, _ = strconv.Atoi(n)
		}
		v.Post = &number
	}
	if group("dev") != "" {
		number, _ := strconv.Atoi(group("devN"))
		v.Dev = &number
	}
	v.Local = group("local")
	return v, nil
}

func (v *Version) String() string {
	var sb strings.Builder
	if v.Epoch != 0 {
		fmt.Fprintf(&sb, "%d!", v.Epoch)
	}
	for i, part := range v.Release {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(part))
	}
	if v.Pre != nil {
		fmt.Fprintf(&sb, "%s%d", v.Pre.Phase, v.Pre.Number)
	}
	if v.Post != nil {
		fmt.Fprintf(&sb, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&sb, ".dev%d", *v.Dev)
	}
	if v.Local != "" {
		fmt.Fprintf(&sb, "+%s", v.Local)
	}
	return sb.String()
}
