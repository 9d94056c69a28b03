package lsp

import (
	"strings"
	"testing"
)

func TestURIRoundTrip(t *testing.T) {
	uri := pathToURI("/tmp/demo/pyproject.toml")
	if !strings.HasPrefix(uri, "file:///") {
		t.Fatalf("uri = %q", uri)
	}
	if got := uriToPath(uri); got != "/tmp/demo/pyproject.toml" {
		t.Errorf("uriToPath = %q", got)
	}
}

func TestURIEscapedPath(t *testing.T) {
	got := uriToPath("file:///tmp/with%20space/pyproject.toml")
	if got != "/tmp/with space/pyproject.toml" {
		t.Errorf("got %q", got)
	}
}

func TestURIRejectsOtherSchemes(t *testing.T) {
	if got := uriToPath("https://example.com/pyproject.toml"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCanonicalURIStable(t *testing.T) {
	a := canonicalURI("file:///tmp/demo/pyproject.toml")
	b := canonicalURI("file:///tmp/demo//pyproject.toml")
	if a != b {
		t.Errorf("canonical forms differ: %q vs %q", a, b)
	}
}

func TestCanonicalURIPassthrough(t *testing.T) {
	if got := canonicalURI(""); got != "" {
		t.Errorf("got %q", got)
	}
}
