// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to directory/name and returns the full path.
// Intermediate directories are created.
func WriteFile(t *testing.T, directory, name, content string) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Mkdir creates directory/name with parents and returns the full path.
func Mkdir(t *testing.T, directory, name string) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	return path
}

// Tree creates a temporary root holding an empty home directory and a
// project directory nested two levels deep. It returns the root, home
// and project paths.
func Tree(t *testing.T) (root, home, project string) {
	t.Helper()
	root = t.TempDir()
	home = Mkdir(t, root, "home")
	project = Mkdir(t, root, filepath.Join("work", "project", "src"))
	return root, home, project
}
