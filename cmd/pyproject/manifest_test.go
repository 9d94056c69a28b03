package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte("[project]\nname = \"demo\"\nversion = \"1.0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindManifestExplicitFile(t *testing.T) {
	path := writeManifest(t, t.TempDir())
	got, err := findManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("got %q, want %q", got, path)
	}
}

func TestFindManifestMissingFile(t *testing.T) {
	if _, err := findManifest(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestFindManifestDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir)
	got, err := findManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("got %q, want %q", got, path)
	}
}

func TestFindManifestDirectoryWithout(t *testing.T) {
	if _, err := findManifest(t.TempDir()); err == nil {
		t.Error("directory without manifest accepted")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root)
	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	got, err := findManifest("")
	if err != nil {
		t.Fatal(err)
	}
	// Temp dirs may sit behind symlinks, so compare resolved paths.
	wantReal, _ := filepath.EvalSymlinks(path)
	gotReal, _ := filepath.EvalSymlinks(got)
	if gotReal != wantReal {
		t.Errorf("got %q, want %q", got, path)
	}
}
