// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shwrap/shwrap/lib/testutil"
)

func TestFindLocal_WalksUpward(t *testing.T) {
	t.Parallel()

	root, _, project := testutil.Tree(t)
	workDirectory := filepath.Join(root, "work")
	testutil.WriteFile(t, workDirectory, LocalFileName, "node:\n")

	directory, found, err := FindLocal(project)
	if err != nil {
		t.Fatalf("FindLocal: %v", err)
	}
	if !found {
		t.Fatal("expected local config to be found in an ancestor")
	}
	if directory != workDirectory {
		t.Errorf("expected %s, got %s", workDirectory, directory)
	}
}

func TestFindLocal_NearestWins(t *testing.T) {
	t.Parallel()

	root, _, project := testutil.Tree(t)
	testutil.WriteFile(t, root, LocalFileName, "outer:\n")
	inner := filepath.Join(root, "work", "project")
	testutil.WriteFile(t, inner, LocalFileName, "inner:\n")

	directory, found, err := FindLocal(project)
	if err != nil || !found {
		t.Fatalf("FindLocal: found=%v err=%v", found, err)
	}
	if directory != inner {
		t.Errorf("expected nearest directory %s, got %s", inner, directory)
	}
}

func TestFindLocal_StartDirectoryItself(t *testing.T) {
	t.Parallel()

	_, _, project := testutil.Tree(t)
	testutil.WriteFile(t, project, LocalFileName, "node:\n")

	directory, found, err := FindLocal(project)
	if err != nil || !found {
		t.Fatalf("FindLocal: found=%v err=%v", found, err)
	}
	if directory != project {
		t.Errorf("expected %s, got %s", project, directory)
	}
}

func TestFindLocal_IgnoresDirectoryWithConfigName(t *testing.T) {
	t.Parallel()

	root, _, project := testutil.Tree(t)
	testutil.Mkdir(t, project, LocalFileName)
	testutil.WriteFile(t, root, LocalFileName, "node:\n")

	directory, found, err := FindLocal(project)
	if err != nil || !found {
		t.Fatalf("FindLocal: found=%v err=%v", found, err)
	}
	if directory != root {
		t.Errorf("expected directory named %s to be skipped, got %s", LocalFileName, directory)
	}
}

func TestFindLocal_TerminatesAtRoot(t *testing.T) {
	t.Parallel()

	// The filesystem root has no parent; the search must stop there.
	_, _, err := FindLocal(string(filepath.Separator))
	if err != nil {
		t.Fatalf("FindLocal(/): %v", err)
	}
}

func TestFindLocal_PermissionDenied(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}

	_, _, project := testutil.Tree(t)
	locked := testutil.Mkdir(t, project, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, _, err := FindLocal(locked)
	var discoveryError *DiscoveryError
	if !errors.As(err, &discoveryError) {
		t.Fatalf("expected *DiscoveryError, got %v", err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected permission error, got %v", err)
	}
}

func TestFindUser(t *testing.T) {
	t.Parallel()

	_, home, _ := testutil.Tree(t)

	if _, found, err := FindUser(home); err != nil || found {
		t.Fatalf("expected no user config yet, got found=%v err=%v", found, err)
	}

	expected := testutil.WriteFile(t, home, filepath.Join(".config", "shwrap", UserFileName), "node:\n")
	path, found, err := FindUser(home)
	if err != nil {
		t.Fatalf("FindUser: %v", err)
	}
	if !found {
		t.Fatal("expected user config to be found")
	}
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

func TestFindUser_EmptyHome(t *testing.T) {
	t.Parallel()

	path, found, err := FindUser("")
	if err != nil {
		t.Fatalf("expected an unknown home to mean no user config, got %v", err)
	}
	if found || path != "" {
		t.Errorf("expected not found, got %q found=%v", path, found)
	}
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
	}{
		{path: "~", expected: "/home/user"},
		{path: "~/.config/shwrap", expected: "/home/user/.config/shwrap"},
		{path: "/etc/shwrap", expected: "/etc/shwrap"},
		{path: "~other/file", expected: "~other/file"},
		{path: "relative/~", expected: "relative/~"},
	}
	for _, test := range tests {
		if got := ExpandHome(test.path, "/home/user"); got != test.expected {
			t.Errorf("ExpandHome(%q): expected %q, got %q", test.path, test.expected, got)
		}
	}
}
