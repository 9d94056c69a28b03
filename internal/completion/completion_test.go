package completion

import (
	"strings"
	"testing"

	"github.com/terror/pyproject/internal/toml"
)

// completeAt parses text with a `|` marker for the cursor and completes
// there.
func completeAt(t *testing.T, marked string) []Item {
	t.Helper()
	offset := strings.IndexByte(marked, '|')
	if offset < 0 {
		t.Fatal("test input has no cursor marker")
	}
	text := marked[:offset] + marked[offset+1:]
	return Complete(toml.Parse(text, 0), uint32(offset))
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Label
	}
	return out
}

func hasLabel(items []Item, label string) bool {
	for _, item := range items {
		if item.Label == label {
			return true
		}
	}
	return false
}

func TestCompleteTableHeaders(t *testing.T) {
	items := completeAt(t, "[|")
	if !hasLabel(items, "project") || !hasLabel(items, "build-system") {
		t.Errorf("labels = %v", labels(items))
	}
	for _, item := range items {
		if item.Kind != KindTable {
			t.Errorf("%s: kind = %v, want table", item.Label, item.Kind)
		}
	}
}

func TestCompleteTableHeaderPrefix(t *testing.T) {
	items := completeAt(t, "[projec|")
	if len(items) == 0 {
		t.Fatal("no candidates")
	}
	for _, item := range items {
		if !strings.Contains(strings.ToLower(item.Label), "projec") {
			t.Errorf("%s does not match the typed prefix", item.Label)
		}
	}
}

func TestCompleteProjectKeys(t *testing.T) {
	items := completeAt(t, "[project]\nname = \"demo\"\n|")
	if hasLabel(items, "name") {
		t.Error("already-defined key still offered")
	}
	if !hasLabel(items, "version") || !hasLabel(items, "dependencies") {
		t.Errorf("labels = %v", labels(items))
	}
}

func TestCompleteKeyPrefixRanking(t *testing.T) {
	items := completeAt(t, "[project]\nauth|")
	if len(items) == 0 {
		t.Fatal("no candidates")
	}
	if items[0].Label != "authors" {
		t.Errorf("first candidate = %q, want authors", items[0].Label)
	}
}

func TestCompleteRootKeys(t *testing.T) {
	items := completeAt(t, "|")
	if !hasLabel(items, "project") || !hasLabel(items, "dependency-groups") {
		t.Errorf("labels = %v", labels(items))
	}
}

func TestCompleteValues(t *testing.T) {
	items := completeAt(t, "[project]\nrequires-python = \"|\"")
	if !hasLabel(items, ">=3.9") {
		t.Errorf("labels = %v", labels(items))
	}

	items = completeAt(t, "[project]\nlicense = \"|\"")
	if !hasLabel(items, "MIT") || !hasLabel(items, "Apache-2.0") {
		t.Errorf("labels = %v", labels(items))
	}

	items = completeAt(t, "[build-system]\nbuild-backend = \"|\"")
	if !hasLabel(items, "hatchling.build") {
		t.Errorf("labels = %v", labels(items))
	}
}

func TestCompleteArrayItems(t *testing.T) {
	items := completeAt(t, "[project]\ndynamic = [\"version\", \"|\"]")
	if !hasLabel(items, "readme") {
		t.Errorf("labels = %v", labels(items))
	}

	items = completeAt(t, "[project]\ndependencies = [\"|\"]")
	if !hasLabel(items, "requests") {
		t.Errorf("labels = %v", labels(items))
	}
}

func TestCompleteSeverityLevels(t *testing.T) {
	items := completeAt(t, "[tool.pyproject.rules]\nproject-name = \"|\"")
	want := []string{"error", "hint", "information", "off", "warning"}
	got := labels(items)
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
}

func TestCompleteRuleIDs(t *testing.T) {
	items := completeAt(t, "[tool.pyproject.rules]\n|")
	if !hasLabel(items, "project-name") || !hasLabel(items, "build-system") {
		t.Errorf("labels = %v", labels(items))
	}
}

func TestCompleteURLLabels(t *testing.T) {
	items := completeAt(t, "[project.urls]\n|")
	if !hasLabel(items, "Homepage") || !hasLabel(items, "Repository") {
		t.Errorf("labels = %v", labels(items))
	}
}

func TestCompleteNothingInComments(t *testing.T) {
	if items := completeAt(t, "[project]\n# na|"); len(items) != 0 {
		t.Errorf("comment completed: %v", labels(items))
	}
}

func TestCompleteUnknownTable(t *testing.T) {
	if items := completeAt(t, "[tool.black]\n|"); len(items) != 0 {
		t.Errorf("unknown table completed: %v", labels(items))
	}
}

func TestCompleteOffsetClamped(t *testing.T) {
	doc := toml.Parse("[project]\n", 0)
	if items := Complete(doc, 9999); items == nil {
		// Past-end offsets clamp to the end of the document, which sits in
		// key position under [project].
		t.Error("clamped offset produced no candidates")
	}
}
