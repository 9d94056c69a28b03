package config

import (
	"strings"
	"testing"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/toml"
)

func load(text string) *Config {
	return Load(toml.Parse(text, 0))
}

func TestLoadEmpty(t *testing.T) {
	cfg := load("[project]\nname = \"demo\"\n")
	if len(cfg.Findings) != 0 {
		t.Errorf("unexpected findings: %v", cfg.Findings)
	}
	if cfg.Overridden("project-name") {
		t.Error("override reported with no configuration")
	}
	if got := cfg.Resolve("project-name", diag.SevError); got != diag.SevError {
		t.Errorf("Resolve = %v, want default", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg := load(`[tool.pyproject.rules]
project-name = "off"
project-version = { level = "hint" }
project-description = "info"
`)
	if len(cfg.Findings) != 0 {
		t.Fatalf("unexpected findings: %v", cfg.Findings)
	}
	cases := map[string]diag.Severity{
		"project-name":        diag.SevOff,
		"project-version":     diag.SevHint,
		"project-description": diag.SevInformation,
	}
	for id, want := range cases {
		if !cfg.Overridden(id) {
			t.Errorf("%s: Overridden = false", id)
		}
		if got := cfg.Resolve(id, diag.SevError); got != want {
			t.Errorf("%s: Resolve = %v, want %v", id, got, want)
		}
	}
	if got := cfg.Resolve("project-urls", diag.SevWarning); got != diag.SevWarning {
		t.Errorf("unconfigured rule: Resolve = %v, want default", got)
	}
}

func TestLoadUnknownRule(t *testing.T) {
	cfg := load("[tool.pyproject.rules]\nno-such-rule = \"off\"\n")
	wantFinding(t, cfg, "unknown rule `no-such-rule`")
}

func TestLoadUnknownSeverity(t *testing.T) {
	cfg := load("[tool.pyproject.rules]\nproject-name = \"loud\"\n")
	wantFinding(t, cfg, "`loud` is not a severity level")
	if cfg.Overridden("project-name") {
		t.Error("malformed override still applied")
	}
}

func TestLoadOverrideTableShapes(t *testing.T) {
	cfg := load("[tool.pyproject.rules]\nproject-name = { }\n")
	wantFinding(t, cfg, "must set `level`")

	cfg = load("[tool.pyproject.rules]\nproject-name = { level = \"error\", extra = 1 }\n")
	wantFinding(t, cfg, "unknown key `extra` in rule override")
	if !cfg.Overridden("project-name") {
		t.Error("valid level discarded because of a stray key")
	}

	cfg = load("[tool.pyproject.rules]\nproject-name = { level = 3 }\n")
	wantFinding(t, cfg, "`level` must be a string, found integer")

	cfg = load("[tool.pyproject.rules]\nproject-name = 3\n")
	wantFinding(t, cfg, "must be a severity string or table, found integer")
}

func TestLoadUnknownConfigKey(t *testing.T) {
	cfg := load("[tool.pyproject]\nextra = 1\n")
	wantFinding(t, cfg, "unknown key `extra` in `tool.pyproject`")
}

func TestLoadRulesNotTable(t *testing.T) {
	cfg := load("[tool.pyproject]\nrules = \"off\"\n")
	wantFinding(t, cfg, "`tool.pyproject.rules` must be a table, found string")
}

func TestLoadToolPyprojectNotTable(t *testing.T) {
	cfg := load("[tool]\npyproject = 3\n")
	wantFinding(t, cfg, "`tool.pyproject` must be a table, found integer")
}

func wantFinding(t *testing.T, cfg *Config, fragment string) {
	t.Helper()
	for _, f := range cfg.Findings {
		if f.Rule != "config" {
			t.Errorf("finding filed under %q, want config", f.Rule)
		}
		if strings.Contains(f.Message, fragment) {
			return
		}
	}
	t.Errorf("no finding mentions %q; findings: %v", fragment, cfg.Findings)
}
