package pep440

import (
	"fmt"
	"strings"
)

// Operator is a PEP 440 comparison operator.
type Operator string

const (
	OpTildeEqual   Operator = "~="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpArbitrary    Operator = "==="
)

// operators ordered longest first so prefix matching is unambiguous.
var operators = []Operator{OpArbitrary, OpTildeEqual, OpEqual, OpNotEqual, OpLessEqual, OpGreaterEqual, OpLess, OpGreater}

// Specifier is a single version constraint, e.g. `>=2.0` or `==1.*`.
type Specifier struct {
	Op       Operator
	Version  *Version
	Wildcard bool // `.*` suffix, only valid with == and !=
}

// Specifiers is a comma-separated constraint list.
type Specifiers []Specifier

// ParseSpecifiers parses a constraint list like `>=3.9,<4`.
// The empty string parses to an empty list.
func ParseSpecifiers(text string) (Specifiers, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	var out Specifiers
	for _, part := range strings.Split(trimmed, ",") {
		spec, err := ParseSpecifier(part)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

// ParseSpecifier parses a single constraint.
func ParseSpecifier(text string) (Specifier, error) {
	trimmed := strings.TrimSpace(text)
	var op Operator
	for _, candidate := range operators {
		if strings.HasPrefix(trimmed, string(candidate)) {
			op = candidate
			break
		}
	}
	if op == "" {
		return Specifier{}, fmt.Errorf("`%s` is missing a version operator (expected one of ~=, ==, !=, <=, >=, <, >, ===)", trimmed)
	}

	rest := strings.TrimSpace(trimmed[len(op):])
	wildcard := false
	if strings.HasSuffix(rest, ".*") {
		if op != OpEqual && op != OpNotEqual {
			return Specifier{}, fmt.Errorf("wildcard `.*` is only allowed with == and !=, not %s", op)
		}
		wildcard = true
		rest = strings.TrimSuffix(rest, ".*")
	}

	if op == OpArbitrary {
		// Arbitrary equality accepts any non-empty string.
		if rest == "" {
			return Specifier{}, fmt.Errorf("`===` requires a version")
		}
		return Specifier{Op: op}, nil
	}

	version, err := Parse(rest)
	if err != nil {
		return Specifier{}, err
	}
	if op == OpTildeEqual && len(version.Release) < 2 {
		return Specifier{}, fmt.Errorf("`~=%s` requires at least two release segments", rest)
	}
	return Specifier{Op: op, Version: version, Wildcard: wildcard}, nil
}

// HasUpperBound reports whether any constraint bounds the version from
// above: <, <=, ~=, === and == (exact or wildcard) all do.
func (s Specifiers) HasUpperBound() bool {
	for _, spec := range s {
		switch spec.Op {
		case OpLess, OpLessEqual, OpTildeEqual, OpEqual, OpArbitrary:
			return true
		}
	}
	return false
}

// HasExact reports whether any constraint pins an exact version.
func (s Specifiers) HasExact() bool {
	for _, spec := range s {
		if spec.Wildcard {
			continue
		}
		if spec.Op == OpEqual || spec.Op == OpArbitrary {
			return true
		}
	}
	return false
}
