package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/terror/pyproject/internal/diag"
	"github.com/terror/pyproject/internal/source"
)

func testFile() *source.File {
	return source.NewFile("pyproject.toml", []byte("[project]\nname = \"-bad-\"\nversion = \"1.0\"\n"), 0)
}

// nameDiag covers the "-bad-" value on line 2 (bytes 17..24).
func nameDiag() diag.Diagnostic {
	return diag.Diagnostic{
		Rule:     "project-name",
		Severity: diag.SevError,
		Span:     source.Span{Start: 17, End: 24},
		Message:  "`-bad-` is not a valid package name",
	}
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, testFile(), []diag.Diagnostic{nameDiag()}, PrettyOpts{})
	got := buf.String()
	want := "pyproject.toml:2:8: error[project-name]: `-bad-` is not a valid package name\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyShowSource(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, testFile(), []diag.Diagnostic{nameDiag()}, PrettyOpts{ShowSource: true})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output too short: %q", buf.String())
	}
	if lines[1] != "  name = \"-bad-\"" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "         ^~~~~~~" {
		t.Errorf("marker line = %q", lines[2])
	}
}

func TestPrettySuggestion(t *testing.T) {
	d := nameDiag()
	d.Suggestion = "bad"
	var buf bytes.Buffer
	Pretty(&buf, testFile(), []diag.Diagnostic{d}, PrettyOpts{})
	if !strings.Contains(buf.String(), "suggestion: `bad`") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrettyNoColorCodes(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, testFile(), []diag.Diagnostic{nameDiag()}, PrettyOpts{ShowSource: true})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("color disabled but escape codes present: %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testFile(), []diag.Diagnostic{nameDiag()}, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Rule != "project-name" {
		t.Errorf("diagnostic = %+v", d)
	}
	loc := d.Location
	if loc.File != "pyproject.toml" || loc.StartByte != 17 || loc.EndByte != 24 {
		t.Errorf("location = %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 8 {
		t.Errorf("position = %d:%d, want 2:8", loc.StartLine, loc.StartCol)
	}
}

func TestWriteJSONOmitsPositions(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testFile(), []diag.Diagnostic{nameDiag()}, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "start_line") {
		t.Errorf("positions included without opt-in: %s", buf.String())
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testFile(), nil, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 0 || out.Diagnostics == nil {
		t.Errorf("empty output = %+v", out)
	}
}
