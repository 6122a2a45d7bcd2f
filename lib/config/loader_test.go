// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shwrap/shwrap/lib/testutil"
)

func writeUserConfig(t *testing.T, home, content string) string {
	t.Helper()
	return testutil.WriteFile(t, home, filepath.Join(".config", "shwrap", UserFileName), content)
}

func TestLoader_NoConfiguration(t *testing.T) {
	t.Parallel()

	_, home, project := testutil.Tree(t)
	config, err := NewLoader(project, home).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config when no file exists, got %d entries", config.Len())
	}
}

func TestLoader_UserOnly(t *testing.T) {
	t.Parallel()

	_, home, project := testutil.Tree(t)
	writeUserConfig(t, home, "node:\n  share: [user]\n")

	config, err := NewLoader(project, home).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config == nil || config.Len() != 1 {
		t.Fatalf("expected 1 entry from the user config, got %v", config)
	}
}

func TestLoader_LocalOnlyWithoutHome(t *testing.T) {
	t.Parallel()

	_, _, project := testutil.Tree(t)
	testutil.WriteFile(t, project, LocalFileName, "node:\n  share: [network]\n")

	loader := NewLoader(project, "")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load with unknown home: %v", err)
	}
	if config == nil {
		t.Fatal("expected the local config to load")
	}
	node, ok := config.Resolve("node")
	if !ok {
		t.Fatal("expected node to resolve")
	}
	if diff := cmp.Diff([]string{"network"}, node.Share); diff != "" {
		t.Errorf("share mismatch (-expected +got):\n%s", diff)
	}

	if _, found, err := loader.UserFile(); err != nil || found {
		t.Errorf("expected no user file, got found=%v err=%v", found, err)
	}
}

func TestLoader_NothingWithoutHome(t *testing.T) {
	t.Parallel()

	_, _, project := testutil.Tree(t)
	config, err := NewLoader(project, "").Load()
	if err != nil || config != nil {
		t.Errorf("expected (nil, nil), got %v, %v", config, err)
	}
}

func TestHomeDirectory_PrefersEnvironment(t *testing.T) {
	testutil.Setenv(t, "HOME", "/home/shwrap-test")

	if got := HomeDirectory(); got != "/home/shwrap-test" {
		t.Errorf("expected $HOME, got %q", got)
	}
}

func TestLoader_MergesLocalOverUser(t *testing.T) {
	t.Parallel()

	root, home, project := testutil.Tree(t)
	writeUserConfig(t, home, `
base:
  type: model
  ro_bind: [/usr]
node:
  share: [user]
  env: {MODE: user}
python:
  share: [network]
cargo:
  share: [user]
`)
	testutil.WriteFile(t, filepath.Join(root, "work"), LocalFileName, `
node:
  extends: base
  share: [network]
  env: {MODE: local}
python:
  override: true
  tmpfs: [/tmp]
cargo:
  enabled: false
  share: [pid]
deno:
  share: [user]
`)

	config, err := NewLoader(project, home).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	node, ok := config.Resolve("node")
	if !ok {
		t.Fatal("expected node to resolve")
	}
	if diff := cmp.Diff([]string{"user", "network"}, node.Share); diff != "" {
		t.Errorf("node share mismatch (-expected +got):\n%s", diff)
	}
	if node.Env["MODE"] != "local" {
		t.Errorf("expected local env to win, got %q", node.Env["MODE"])
	}
	if diff := cmp.Diff([]BindMount{mount("/usr")}, node.ROBind); diff != "" {
		t.Errorf("node ro_bind mismatch (-expected +got):\n%s", diff)
	}

	python, _ := config.Entry("python")
	if len(python.Share) != 0 {
		t.Errorf("expected override to drop user share, got %v", python.Share)
	}

	cargo, _ := config.Entry("cargo")
	if !cargo.Enabled {
		t.Error("expected disabled local entry to leave the user entry enabled")
	}
	if diff := cmp.Diff([]string{"user"}, cargo.Share); diff != "" {
		t.Errorf("cargo share mismatch (-expected +got):\n%s", diff)
	}

	if _, ok := config.Command("deno"); !ok {
		t.Error("expected local-only command deno")
	}
}

func TestLoader_ParseErrorIsFatal(t *testing.T) {
	t.Parallel()

	_, home, project := testutil.Tree(t)
	path := writeUserConfig(t, home, "node:\n  type: bogus\n")
	testutil.WriteFile(t, project, LocalFileName, "python:\n")

	config, err := NewLoader(project, home).Load()
	if err == nil {
		t.Fatalf("expected malformed user config to fail, got %v", config)
	}
	var parseError *ParseError
	if !errors.As(err, &parseError) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseError.Path != path {
		t.Errorf("expected path %s, got %s", path, parseError.Path)
	}
}

func TestLoader_ConfigFile(t *testing.T) {
	t.Parallel()

	_, home, project := testutil.Tree(t)
	loader := NewLoader(project, home)

	if _, found, err := loader.ConfigFile(); err != nil || found {
		t.Fatalf("expected no config file, got found=%v err=%v", found, err)
	}

	userPath := writeUserConfig(t, home, "node:\n")
	path, found, err := loader.ConfigFile()
	if err != nil || !found || path != userPath {
		t.Fatalf("expected user file %s, got %s found=%v err=%v", userPath, path, found, err)
	}

	localPath := testutil.WriteFile(t, project, LocalFileName, "node:\n")
	path, found, err = loader.ConfigFile()
	if err != nil || !found || path != localPath {
		t.Fatalf("expected local file %s first, got %s found=%v err=%v", localPath, path, found, err)
	}
}

func TestLoader_LogsDecisions(t *testing.T) {
	t.Parallel()

	_, home, project := testutil.Tree(t)
	writeUserConfig(t, home, "node:\n  share: [user]\n")
	testutil.WriteFile(t, project, LocalFileName, "node:\n  enabled: false\n")

	var buffer bytes.Buffer
	loader := NewLoader(project, home)
	loader.SetLogger(slog.New(slog.NewTextHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if _, err := loader.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	output := buffer.String()
	for _, expected := range []string{"config file loaded", "local entry disabled, keeping user entry", "configuration loaded"} {
		if !strings.Contains(output, expected) {
			t.Errorf("expected log to contain %q, got:\n%s", expected, output)
		}
	}
}
