// Package schema describes the pyproject.toml schema family: the known keys
// of each table, their expected value kinds, and the enumerated value
// domains used by rules and completion.
package schema

// Key describes one schema-known key at a given table level.
type Key struct {
	Name string
	Kind string // expected value kind, for completion detail
	Doc  string
}

// Value describes one member of an enumerated value domain.
type Value struct {
	Name string
	Doc  string
}

// RootKeys are the top-level tables a manifest may contain.
func RootKeys() []Key {
	return []Key{
		{"project", "table", "PEP 621 project metadata table"},
		{"build-system", "table", "PEP 517 build system configuration"},
		{"tool", "table", "Tool-specific configuration sections"},
		{"dependency-groups", "table", "PEP 735 dependency groups"},
	}
}

// ProjectKeys are the keys of the `[project]` table defined by PEP 621 plus
// accepted extensions.
func ProjectKeys() []Key {
	return []Key{
		{"name", "string", "The name of the project (required)"},
		{"version", "string", "The version of the project"},
		{"description", "string", "A short summary description"},
		{"readme", "string/table", "Path to README or inline readme config"},
		{"requires-python", "string", "Python version requirement (PEP 440)"},
		{"license", "string/table", "License expression or license file config"},
		{"license-files", "array", "Paths/globs for license files"},
		{"authors", "array", "List of author entries with name/email"},
		{"maintainers", "array", "List of maintainer entries with name/email"},
		{"keywords", "array", "Keywords for the project"},
		{"classifiers", "array", "Trove classifiers for the project"},
		{"urls", "table", "Project URLs (homepage, repository, etc.)"},
		{"dependencies", "array", "Runtime dependencies (PEP 508 strings)"},
		{"optional-dependencies", "table", "Optional dependency groups"},
		{"scripts", "table", "Console script entry points"},
		{"gui-scripts", "table", "GUI script entry points"},
		{"entry-points", "table", "Other entry point groups"},
		{"dynamic", "array", "Fields that are dynamically set by the build backend"},
	}
}

// projectExtensions are accepted keys defined outside of PEP 621.
var projectExtensions = []string{"import-names", "import-namespaces", "license-files"}

// IsProjectKey reports whether name is accepted inside `[project]`.
func IsProjectKey(name string) bool {
	for _, key := range ProjectKeys() {
		if key.Name == name {
			return true
		}
	}
	for _, ext := range projectExtensions {
		if ext == name {
			return true
		}
	}
	return false
}

// KnownProjectKeys returns every accepted `[project]` key name.
func KnownProjectKeys() []string {
	out := make([]string, 0, len(ProjectKeys())+len(projectExtensions))
	for _, key := range ProjectKeys() {
		out = append(out, key.Name)
	}
	out = append(out, projectExtensions...)
	return out
}

// BuildSystemKeys are the keys of the `[build-system]` table (PEP 517/518).
func BuildSystemKeys() []Key {
	return []Key{
		{"requires", "array", "Build dependencies (PEP 508 strings)"},
		{"build-backend", "string", "The build backend to use"},
		{"backend-path", "array", "Paths to add to sys.path for the backend"},
	}
}

// TableHeaders are the well-known section paths offered in `[` completion.
func TableHeaders() []Value {
	return []Value{
		{"project", "PEP 621 project metadata"},
		{"project.scripts", "Console script entry points"},
		{"project.gui-scripts", "GUI script entry points"},
		{"project.entry-points", "Entry point groups"},
		{"project.optional-dependencies", "Optional dependency groups"},
		{"project.urls", "Project URLs"},
		{"build-system", "PEP 517 build system configuration"},
		{"dependency-groups", "PEP 735 dependency groups"},
		{"tool", "Tool-specific configuration"},
		{"tool.pyproject", "pyproject linter configuration"},
		{"tool.pyproject.rules", "Per-rule severity overrides"},
	}
}

// DynamicFields are the values accepted inside `project.dynamic`.
// `name` is deliberately absent: it may never be dynamic.
func DynamicFields() []string {
	return []string{
		"version",
		"description",
		"readme",
		"license",
		"license-files",
		"authors",
		"maintainers",
		"keywords",
		"classifiers",
		"urls",
		"dependencies",
		"optional-dependencies",
		"scripts",
		"gui-scripts",
		"entry-points",
	}
}

// IsDynamicField reports whether name may appear in `project.dynamic`.
func IsDynamicField(name string) bool {
	for _, field := range DynamicFields() {
		if field == name {
			return true
		}
	}
	return false
}

// BuildBackends are well-known `build-system.build-backend` values.
func BuildBackends() []Value {
	return []Value{
		{"hatchling.build", "Hatchling - Modern Python build backend"},
		{"setuptools.build_meta", "Setuptools - Traditional Python build backend"},
		{"flit_core.buildapi", "Flit - Simple PEP 517 build backend"},
		{"pdm.backend", "PDM - Modern Python package manager backend"},
		{"poetry.core.masonry.api", "Poetry - Python packaging and dependency management"},
		{"maturin", "Maturin - Build backend for Rust Python extensions"},
		{"scikit_build_core.build", "Scikit-build-core - CMake-based build system"},
		{"meson-python", "Meson-python - Meson build system for Python"},
	}
}

// BuildRequires are common `build-system.requires` entries.
func BuildRequires() []Value {
	return []Value{
		{"hatchling", "Modern Python build backend"},
		{"setuptools>=61.0", "Setuptools with pyproject.toml support"},
		{"wheel", "Wheel package format support"},
		{"flit_core>=3.4", "Flit build backend"},
		{"pdm-backend", "PDM build backend"},
		{"poetry-core>=1.0.0", "Poetry build backend"},
		{"maturin>=1.0", "Rust extension build backend"},
		{"scikit-build-core>=0.4", "CMake build backend"},
		{"meson-python", "Meson build system"},
		{"cython>=3.0", "Cython compilation support"},
	}
}

// CommonPackages are frequently used dependency names offered in
// `project.dependencies` completion.
func CommonPackages() []Value {
	return []Value{
		{"requests", "HTTP library for Python"},
		{"numpy", "Numerical computing library"},
		{"pandas", "Data analysis library"},
		{"pytest", "Testing framework"},
		{"black", "Code formatter"},
		{"ruff", "Fast Python linter"},
		{"mypy", "Static type checker"},
		{"click", "CLI framework"},
		{"fastapi", "Modern web framework"},
		{"flask", "Web microframework"},
		{"django", "Web framework"},
		{"sqlalchemy", "Database toolkit"},
		{"pydantic", "Data validation library"},
		{"httpx", "Async HTTP client"},
		{"rich", "Terminal formatting library"},
		{"typer", "CLI builder"},
	}
}

// ReadmeFiles are conventional `project.readme` values.
func ReadmeFiles() []Value {
	return []Value{
		{"README.md", "Markdown readme file"},
		{"README.rst", "reStructuredText readme file"},
		{"README.txt", "Plain text readme file"},
	}
}

// RequiresPythonRanges are conventional `project.requires-python` values.
func RequiresPythonRanges() []Value {
	return []Value{
		{">=3.9", "Python 3.9 or later"},
		{">=3.10", "Python 3.10 or later"},
		{">=3.11", "Python 3.11 or later"},
		{">=3.12", "Python 3.12 or later"},
		{">=3.13", "Python 3.13 or later"},
		{">=3.9,<4", "Python 3.9 to 3.x (recommended)"},
		{">=3.10,<4", "Python 3.10 to 3.x (recommended)"},
		{">=3.11,<4", "Python 3.11 to 3.x (recommended)"},
		{">=3.12,<4", "Python 3.12 to 3.x (recommended)"},
	}
}

// ReadmeContentTypes are the accepted `project.readme` content types.
func ReadmeContentTypes() []string {
	return []string{"text/markdown", "text/x-rst", "text/plain"}
}

// ContentTypeForSuffix maps a readme file suffix to its content type, or "".
func ContentTypeForSuffix(path string) string {
	switch {
	case hasSuffixFold(path, ".md"):
		return "text/markdown"
	case hasSuffixFold(path, ".rst"):
		return "text/x-rst"
	case hasSuffixFold(path, ".txt"):
		return "text/plain"
	}
	return ""
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	for i := 0; i < len(suffix); i++ {
		a, b := tail[i], suffix[i]
		if a >= 'A' && a <= 'Z' {
			a += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
