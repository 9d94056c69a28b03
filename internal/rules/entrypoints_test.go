package rules

import "testing"

func TestValidObjectRef(t *testing.T) {
	valid := []string{"mod", "pkg.mod", "pkg.mod:main", "pkg.mod:cli.run", "mod:main [extra]"}
	invalid := []string{"", "1mod", "pkg..mod", "pkg.mod:", "pkg.mod:1bad", "pkg-mod"}
	for _, ref := range valid {
		if !validObjectRef(ref) {
			t.Errorf("validObjectRef(%q) = false, want true", ref)
		}
	}
	for _, ref := range invalid {
		if validObjectRef(ref) {
			t.Errorf("validObjectRef(%q) = true, want false", ref)
		}
	}
}

func TestProjectEntryPointsClean(t *testing.T) {
	text := `[project.scripts]
demo = "demo.cli:main"

[project.gui-scripts]
demo-gui = "demo.gui:run"

[project.entry-points."demo.plugins"]
builtin = "demo.plugins.builtin"
`
	wantFindings(t, "project-entry-points", text, 0)
}

func TestProjectEntryPointsBadRefs(t *testing.T) {
	text := `[project.scripts]
demo = "not a module!"
count = 3
`
	findings := wantFindings(t, "project-entry-points", text, 2)
	if !hasFinding(findings, "not a valid object reference") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "must be a string, found integer") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestProjectEntryPointsReservedGroups(t *testing.T) {
	text := `[project.entry-points.console_scripts]
demo = "demo.cli:main"

[project.entry-points.gui_scripts]
demo-gui = "demo.gui:run"
`
	findings := wantFindings(t, "project-entry-points", text, 2)
	if !hasFinding(findings, "use `project.scripts` instead of the `console_scripts` entry point group") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "use `project.gui-scripts` instead of the `gui_scripts` entry point group") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestProjectEntryPointsExtras(t *testing.T) {
	text := `[project.scripts]
demo = "demo.cli:main [cli]"
plain = "demo.cli:other"
`
	findings := wantFindings(t, "project-entry-points-extras", text, 1)
	if !hasFinding(findings, "extras marker in `demo.cli:main [cli]` is deprecated") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
}

func TestProjectImportNames(t *testing.T) {
	wantFindings(t, "project-import-names", "[project]\nimport-names = [\"demo\", \"demo.core\"]\n", 0)

	text := "[project]\nimport-names = [\"demo\", \"demo\", \"not-a-module\", 1]\n"
	findings := wantFindings(t, "project-import-names", text, 3)
	if !hasFinding(findings, "duplicate import name `demo`") {
		t.Errorf("messages = %v", findingMessages(findings))
	}
	if !hasFinding(findings, "`not-a-module` is not a valid module name") {
		t.Errorf("messages = %v", findingMessages(findings))
	}

	wantFindings(t, "project-import-names", "[project]\nimport-namespaces = \"demo\"\n", 1)
}
