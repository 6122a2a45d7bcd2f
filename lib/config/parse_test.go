// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shwrap/shwrap/lib/testutil"
)

func TestParse_FullEntry(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(`
node:
  type: command
  enabled: true
  override: true
  extends: [base, network]
  share: [user, network]
  bind: ["/src:/dst", /work]
  ro_bind: [/usr]
  dev_bind: [/dev/dri]
  bind_try: [~/.npm]
  ro_bind_try: [[/etc/ssl, /etc/ssl]]
  dev_bind_try: [{source: /dev/kvm}]
  tmpfs: [/tmp]
  chdir: /work
  die_with_parent: true
  new_session: true
  cap: [CAP_NET_ADMIN]
  env:
    NODE_ENV: production
  unset_env: [AWS_SECRET_ACCESS_KEY]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	entry, ok := config.Entry("node")
	if !ok {
		t.Fatal("expected entry node to exist")
	}

	expected := Entry{
		Type:          EntryTypeCommand,
		Enabled:       true,
		Override:      true,
		Extends:       []string{"base", "network"},
		Share:         []string{"user", "network"},
		Bind:          []BindMount{{Source: "/src", Dest: "/dst"}, {Source: "/work", Dest: "/work"}},
		ROBind:        []BindMount{{Source: "/usr", Dest: "/usr"}},
		DevBind:       []BindMount{{Source: "/dev/dri", Dest: "/dev/dri"}},
		BindTry:       []BindMount{{Source: "~/.npm", Dest: "~/.npm"}},
		ROBindTry:     []BindMount{{Source: "/etc/ssl", Dest: "/etc/ssl"}},
		DevBindTry:    []BindMount{{Source: "/dev/kvm", Dest: "/dev/kvm"}},
		Tmpfs:         []string{"/tmp"},
		Chdir:         "/work",
		DieWithParent: true,
		NewSession:    true,
		Cap:           []string{"CAP_NET_ADMIN"},
		Env:           map[string]string{"NODE_ENV": "production"},
		UnsetEnv:      []string{"AWS_SECRET_ACCESS_KEY"},
	}
	if diff := cmp.Diff(expected, entry); diff != "" {
		t.Errorf("entry mismatch (-expected +got):\n%s", diff)
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(`
empty:
minimal:
  share: [user]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	empty, ok := config.Entry("empty")
	if !ok {
		t.Fatal("expected entry with null body to exist")
	}
	if diff := cmp.Diff(DefaultEntry(), empty); diff != "" {
		t.Errorf("null body should yield defaults (-expected +got):\n%s", diff)
	}

	minimal, _ := config.Entry("minimal")
	if minimal.Type != EntryTypeCommand {
		t.Errorf("expected type=command, got %s", minimal.Type)
	}
	if !minimal.Enabled {
		t.Error("expected enabled=true by default")
	}
	if minimal.Override || minimal.DieWithParent || minimal.NewSession {
		t.Error("expected override, die_with_parent and new_session to default to false")
	}
	if minimal.Chdir != "" {
		t.Errorf("expected no chdir, got %q", minimal.Chdir)
	}
	if minimal.Extends != nil {
		t.Errorf("expected no extends, got %v", minimal.Extends)
	}
}

func TestParse_ExtendsScalarMatchesList(t *testing.T) {
	t.Parallel()

	scalar, err := Parse([]byte("node:\n  extends: base\n"))
	if err != nil {
		t.Fatalf("Parse scalar: %v", err)
	}
	list, err := Parse([]byte("node:\n  extends: [base]\n"))
	if err != nil {
		t.Fatalf("Parse list: %v", err)
	}

	fromScalar, _ := scalar.Entry("node")
	fromList, _ := list.Entry("node")
	if diff := cmp.Diff(fromList, fromScalar); diff != "" {
		t.Errorf("scalar extends should match one-element list (-list +scalar):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"base"}, fromScalar.Extends); diff != "" {
		t.Errorf("extends mismatch (-expected +got):\n%s", diff)
	}
}

func TestParse_TypeCaseInsensitive(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte("base:\n  type: Model\nnode:\n  type: COMMAND\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := config.Model("base"); !ok {
		t.Error("expected base to be a model")
	}
	if _, ok := config.Command("node"); !ok {
		t.Error("expected node to be a command")
	}
}

func TestParse_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(`
node:
  share: [user]
  description: not a known key
  future_option: {nested: true}
`))
	if err != nil {
		t.Fatalf("unknown fields should be ignored, got error: %v", err)
	}
	entry, _ := config.Entry("node")
	if diff := cmp.Diff([]string{"user"}, entry.Share); diff != "" {
		t.Errorf("share mismatch (-expected +got):\n%s", diff)
	}
}

func TestParse_YAMLAnchors(t *testing.T) {
	t.Parallel()

	config, err := Parse([]byte(`
node: &shared
  share: [user]
deno: *shared
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	deno, ok := config.Entry("deno")
	if !ok {
		t.Fatal("expected aliased entry deno to exist")
	}
	if diff := cmp.Diff([]string{"user"}, deno.Share); diff != "" {
		t.Errorf("share mismatch (-expected +got):\n%s", diff)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	for _, document := range []string{"", "# only a comment\n", "~\n"} {
		config, err := Parse([]byte(document))
		if err != nil {
			t.Errorf("Parse(%q): %v", document, err)
			continue
		}
		if config.Len() != 0 {
			t.Errorf("Parse(%q): expected 0 entries, got %d", document, config.Len())
		}
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		entry    string
		contains string
	}{
		{
			name:     "invalid yaml",
			document: "node: [unterminated\n",
			contains: "failed to parse config",
		},
		{
			name:     "top level sequence",
			document: "- node\n- python\n",
			contains: "must be a mapping",
		},
		{
			name:     "unknown type",
			document: "node:\n  type: script\n",
			entry:    "node",
			contains: "unknown entry type",
		},
		{
			name:     "entry is a list",
			document: "node: [user]\n",
			entry:    "node",
			contains: "entry must be a mapping",
		},
		{
			name:     "share is a string",
			document: "node:\n  share: user\n",
			entry:    "node",
		},
		{
			name:     "bind with too many colons",
			document: "node:\n  bind: [\"/a:/b:/c\"]\n",
			entry:    "node",
			contains: "must be source:dest",
		},
		{
			name:     "bind with empty dest",
			document: "node:\n  bind: [\"/a:\"]\n",
			entry:    "node",
			contains: "must both be set",
		},
		{
			name:     "bind sequence of three",
			document: "node:\n  bind: [[/a, /b, /c]]\n",
			entry:    "node",
			contains: "bind pair must be",
		},
		{
			name:     "extends mapping",
			document: "node:\n  extends: {base: true}\n",
			entry:    "node",
			contains: "expected a name or a list of names",
		},
		{
			name:     "duplicate names",
			document: "node:\n  share: [user]\nnode:\n  share: [pid]\n",
			entry:    "node",
			contains: "more than once",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(test.document))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var parseError *ParseError
			if !errors.As(err, &parseError) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseError.Entry != test.entry {
				t.Errorf("expected entry %q, got %q", test.entry, parseError.Entry)
			}
			if test.contains != "" && !strings.Contains(err.Error(), test.contains) {
				t.Errorf("expected error containing %q, got %q", test.contains, err.Error())
			}
		})
	}
}

func TestParseError_Line(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("ok:\n  share: [user]\nbad:\n  type: nope\n"))
	var parseError *ParseError
	if !errors.As(err, &parseError) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseError.Line != 4 {
		t.Errorf("expected line 4, got %d", parseError.Line)
	}
	if !strings.Contains(err.Error(), `entry "bad" (line 4)`) {
		t.Errorf("expected entry and line in message, got %q", err.Error())
	}
}

func TestParseFile_SetsPath(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	path := testutil.WriteFile(t, directory, LocalFileName, "node:\n  type: 42\n")

	_, err := ParseFile(path)
	var parseError *ParseError
	if !errors.As(err, &parseError) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseError.Path != path {
		t.Errorf("expected path %q, got %q", path, parseError.Path)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected path in message, got %q", err.Error())
	}
}

func TestParseFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var parseError *ParseError
	if errors.As(err, &parseError) {
		t.Errorf("missing file should not be a *ParseError, got %v", err)
	}
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	config, err := ParseReader(strings.NewReader("node:\n  share: [user]\n"))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if config.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", config.Len())
	}
}

func TestParseBindMount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec     string
		expected BindMount
		wantErr  bool
	}{
		{spec: "/usr", expected: BindMount{Source: "/usr", Dest: "/usr"}},
		{spec: "/host:/guest", expected: BindMount{Source: "/host", Dest: "/guest"}},
		{spec: "", wantErr: true},
		{spec: ":/guest", wantErr: true},
		{spec: "/a:/b:/c", wantErr: true},
	}

	for _, test := range tests {
		mount, err := ParseBindMount(test.spec)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseBindMount(%q): expected error, got %v", test.spec, mount)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBindMount(%q): %v", test.spec, err)
			continue
		}
		if mount != test.expected {
			t.Errorf("ParseBindMount(%q): expected %v, got %v", test.spec, test.expected, mount)
		}
	}
}
