package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const manifestName = "pyproject.toml"

// findManifest resolves the manifest to operate on. An explicit file path
// is used as-is, a directory is searched for pyproject.toml, and with no
// argument the search walks up from the working directory to the nearest
// ancestor holding one.
func findManifest(arg string) (string, error) {
	if arg != "" {
		info, err := os.Stat(arg)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return arg, nil
		}
		candidate := filepath.Join(arg, manifestName)
		if _, err := os.Stat(candidate); err != nil {
			return "", fmt.Errorf("no %s in %s", manifestName, arg)
		}
		return candidate, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in the current directory or any parent", manifestName)
		}
		dir = parent
	}
}
