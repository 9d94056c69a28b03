package schema

import "testing"

func TestIsProjectKey(t *testing.T) {
	for _, name := range []string{"name", "version", "optional-dependencies", "import-names", "license-files"} {
		if !IsProjectKey(name) {
			t.Errorf("IsProjectKey(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "Name", "depends", "tool"} {
		if IsProjectKey(name) {
			t.Errorf("IsProjectKey(%q) = true, want false", name)
		}
	}
}

func TestKnownProjectKeysCoversProjectKeys(t *testing.T) {
	known := KnownProjectKeys()
	set := make(map[string]bool, len(known))
	for _, name := range known {
		set[name] = true
	}
	for _, key := range ProjectKeys() {
		if !set[key.Name] {
			t.Errorf("%q missing from KnownProjectKeys", key.Name)
		}
	}
}

func TestDynamicFields(t *testing.T) {
	if IsDynamicField("name") {
		t.Error("`name` must never be dynamic")
	}
	if !IsDynamicField("version") {
		t.Error("`version` should be a dynamic field")
	}
	for _, field := range DynamicFields() {
		if !IsProjectKey(field) {
			t.Errorf("dynamic field %q is not a project key", field)
		}
	}
}

func TestContentTypeForSuffix(t *testing.T) {
	cases := map[string]string{
		"README.md":      "text/markdown",
		"readme.MD":      "text/markdown",
		"docs/intro.rst": "text/x-rst",
		"README.txt":     "text/plain",
		"README":         "",
		"readme.html":    "",
	}
	for path, want := range cases {
		if got := ContentTypeForSuffix(path); got != want {
			t.Errorf("ContentTypeForSuffix(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestBuildBackendsHaveDocs(t *testing.T) {
	for _, backend := range BuildBackends() {
		if backend.Name == "" || backend.Doc == "" {
			t.Errorf("backend entry incomplete: %+v", backend)
		}
	}
}

func TestClassifiers(t *testing.T) {
	if !IsKnownClassifier("Programming Language :: Python :: 3") {
		t.Error("well-known classifier rejected")
	}
	if IsKnownClassifier("Programming Language :: Rust :: 3") {
		t.Error("made-up classifier accepted")
	}
	if !IsLicenseClassifier("License :: OSI Approved :: MIT License") {
		t.Error("license classifier not recognized")
	}
	if IsLicenseClassifier("Development Status :: 4 - Beta") {
		t.Error("non-license classifier flagged as license")
	}
}
