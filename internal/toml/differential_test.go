package toml

import (
	"reflect"
	"sort"
	"testing"

	bstoml "github.com/BurntSushi/toml"
)

// toPlain converts a parsed node into the shape BurntSushi/toml decodes into,
// so the two parsers can be compared structurally.
func toPlain(n *Node) any {
	switch n.Kind {
	case KindTable:
		out := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			out[e.Key.Text] = toPlain(e.Value)
		}
		return out
	case KindArray:
		out := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			out = append(out, toPlain(item))
		}
		return out
	case KindString, KindDateTime:
		return n.Str
	case KindInteger:
		return n.Int
	case KindFloat:
		return n.Float
	case KindBool:
		return n.Bool
	}
	return nil
}

// normalize rewrites BurntSushi's decoded values into the same plain shape:
// datetimes become their raw text, and map ordering is irrelevant since both
// sides end up as map[string]any.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, normalize(item))
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, normalize(item))
		}
		return out
	default:
		return v
	}
}

var differentialManifests = []string{
	`[project]
name = "demo"
version = "1.0.0"
description = "a demo package"
requires-python = ">=3.9"
keywords = ["cli", "tooling"]
dependencies = [
  "requests>=2.31,<3",
  "click>=8.0",
]

[project.urls]
Homepage = "https://example.com"

[project.optional-dependencies]
test = ["pytest>=8"]

[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"
`,
	`title = "mixed scalars"
count = 42
hex = 0x10
big = 1_000_000
ratio = 0.25
exp = 1e3
neg = -7
on = true
off = false

[nested.deep]
leaf = "value"
`,
	`[[tool.things]]
name = "first"
n = 1

[[tool.things]]
name = "second"
n = 2

[tool.other]
inline = { a = 1, b = "two" }
empty = []
matrix = [[1, 2], [3, 4]]
`,
	`[tool.pyproject.rules]
project-name = "off"
project-version = { level = "error" }
`,
}

func TestParserMatchesBurntSushi(t *testing.T) {
	for i, text := range differentialManifests {
		doc := Parse(text, 0)
		if len(doc.Errors) != 0 {
			t.Fatalf("manifest %d: unexpected errors: %v", i, doc.Errors)
		}

		var reference map[string]any
		if _, err := bstoml.Decode(text, &reference); err != nil {
			t.Fatalf("manifest %d: reference decode: %v", i, err)
		}

		got := toPlain(doc.Root)
		want := normalize(reference)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("manifest %d: parser disagreement\n got: %#v\nwant: %#v", i, got, want)
		}
	}
}

func TestParserKeyOrderIsSourceOrder(t *testing.T) {
	// BurntSushi loses declaration order in its maps; ours must not, since
	// diagnostics and completions depend on it.
	doc := Parse("b = 1\na = 2\nc = 3\n", 0)
	got := doc.Root.Keys()
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
	if sort.StringsAreSorted(got) {
		t.Error("test input must not already be sorted")
	}
}
