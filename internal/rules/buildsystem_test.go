package rules

import "testing"

func TestBuildSystemClean(t *testing.T) {
	text := `[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"
`
	wantFindings(t, "build-system", text, 0)
}

func TestBuildSystemMissingRequires(t *testing.T) {
	findings := wantFindings(t, "build-system", "[build-system]\nbuild-backend = \"hatchling.build\"\n", 1)
	if !hasFinding(findings, "`build-system.requires` is required") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestBuildSystemBadBackend(t *testing.T) {
	text := `[build-system]
requires = ["hatchling"]
build-backend = "not a backend!"
`
	findings := wantFindings(t, "build-system", text, 1)
	if !hasFinding(findings, "not a valid build backend reference") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestBuildSystemUnknownKey(t *testing.T) {
	text := `[build-system]
requires = ["hatchling"]
build-backed = "hatchling.build"
`
	findings := wantFindings(t, "build-system", text, 1)
	if findings[0].Suggestion != "build-backend" {
		t.Errorf("suggestion = %q, want build-backend", findings[0].Suggestion)
	}
}

func TestBuildSystemBackendPath(t *testing.T) {
	text := `[build-system]
requires = ["hatchling"]
backend-path = ["_backend", 3]
`
	findings := wantFindings(t, "build-system", text, 1)
	if !hasFinding(findings, "backend path must be a string, found integer") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestBuildSystemAbsent(t *testing.T) {
	wantFindings(t, "build-system", "[project]\nname = \"demo\"\n", 0)
}

func TestDependencyGroupsClean(t *testing.T) {
	text := `[dependency-groups]
test = ["pytest>=8"]
dev = [
  "ruff",
  { include-group = "test" },
]
`
	wantFindings(t, "dependency-groups", text, 0)
}

func TestDependencyGroupsErrors(t *testing.T) {
	text := `[dependency-groups]
test = ["-broken-"]
dev = [{ include-group = "missing" }, { include-group = 3 }, { oops = 1 }]
lint = "ruff"
`
	findings := check(t, "dependency-groups", text)
	if !hasFinding(findings, "not a valid package name") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "`missing` is not a defined dependency group") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "`include-group` must be a string, found integer") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "include table must set `include-group`") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "unknown key `oops` in dependency group include") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "dependency group `lint` must be an array, found string") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestDependencyGroupsNormalizedInclude(t *testing.T) {
	// Group references resolve on the normalized name.
	text := `[dependency-groups]
My-Tools = ["ruff"]
dev = [{ include-group = "my_tools" }]
`
	wantFindings(t, "dependency-groups", text, 0)
}

func TestDependencyGroupsDuplicateNames(t *testing.T) {
	text := `[dependency-groups]
test = ["pytest"]
TEST = ["pytest"]
`
	findings := wantFindings(t, "dependency-groups", text, 1)
	if !hasFinding(findings, "duplicate dependency group `test`") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestSuggestClosestMatch(t *testing.T) {
	candidates := []string{"alpha", "beta", "gamma"}
	if got := closestMatch("alpa", candidates, 3); got != "alpha" {
		t.Errorf("closestMatch(alpa) = %q, want alpha", got)
	}
	if got := closestMatch("zzzzzz", candidates, 3); got != "" {
		t.Errorf("closestMatch(zzzzzz) = %q, want none", got)
	}
	if got := closestMatch("alpha", nil, 3); got != "" {
		t.Errorf("closestMatch with no candidates = %q", got)
	}
}
