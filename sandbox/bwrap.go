// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/shwrap/shwrap/lib/config"
)

// BwrapEnvironment names the environment variable that overrides the
// bwrap binary location.
const BwrapEnvironment = "SHWRAP_BWRAP"

// Namespace is a Linux namespace bwrap can unshare.
type Namespace struct {
	// Name is the spelling used in an entry's share list.
	Name string

	// Flag is the bwrap option that unshares it.
	Flag string
}

// Namespaces lists every namespace in the order its unshare flag is
// emitted. A namespace not named in an entry's share list is unshared.
var Namespaces = []Namespace{
	{Name: "user", Flag: "--unshare-user"},
	{Name: "pid", Flag: "--unshare-pid"},
	{Name: "network", Flag: "--unshare-net"},
	{Name: "ipc", Flag: "--unshare-ipc"},
	{Name: "uts", Flag: "--unshare-uts"},
	{Name: "cgroup", Flag: "--unshare-cgroup"},
}

var namespaceAliases = map[string]string{
	"net": "network",
}

// CanonicalNamespace maps a share list spelling to its namespace name.
// It reports false for names bwrap does not know.
func CanonicalNamespace(name string) (string, bool) {
	name = strings.ToLower(name)
	if alias, ok := namespaceAliases[name]; ok {
		name = alias
	}
	for _, namespace := range Namespaces {
		if namespace.Name == name {
			return name, true
		}
	}
	return "", false
}

// BwrapBuilder builds bubblewrap command-line arguments from a resolved
// entry.
type BwrapBuilder struct {
	args      []string
	variables Variables
}

// NewBwrapBuilder creates a builder that expands paths with variables.
func NewBwrapBuilder(variables Variables) *BwrapBuilder {
	return &BwrapBuilder{variables: variables}
}

// Build returns the bwrap arguments for running command with args under
// entry. The result does not include the bwrap binary itself.
func (b *BwrapBuilder) Build(entry config.Entry, command string, args []string) ([]string, error) {
	if command == "" {
		return nil, fmt.Errorf("command is required")
	}
	arguments := b.Arguments(entry)
	arguments = append(arguments, "--", command)
	return append(arguments, args...), nil
}

// Arguments returns the bwrap options for entry, without the command.
func (b *BwrapBuilder) Arguments(entry config.Entry) []string {
	entry = b.variables.ExpandEntry(entry)
	b.args = []string{}

	if entry.DieWithParent {
		b.args = append(b.args, "--die-with-parent")
	}
	if entry.NewSession {
		b.args = append(b.args, "--new-session")
	}

	b.addNamespaces(entry.Share)

	b.addMounts("--bind", entry.Bind)
	b.addMounts("--ro-bind", entry.ROBind)
	b.addMounts("--dev-bind", entry.DevBind)
	b.addMounts("--bind-try", entry.BindTry)
	b.addMounts("--ro-bind-try", entry.ROBindTry)
	b.addMounts("--dev-bind-try", entry.DevBindTry)

	for _, path := range entry.Tmpfs {
		b.args = append(b.args, "--tmpfs", path)
	}

	if entry.Chdir != "" {
		b.args = append(b.args, "--chdir", entry.Chdir)
	}

	for _, capability := range entry.Cap {
		b.args = append(b.args, "--cap-add", capability)
	}

	// Sort keys for deterministic output.
	for _, key := range slices.Sorted(maps.Keys(entry.Env)) {
		b.args = append(b.args, "--setenv", key, entry.Env[key])
	}

	for _, name := range entry.UnsetEnv {
		b.args = append(b.args, "--unsetenv", name)
	}

	return b.args
}

// addNamespaces unshares every namespace the share list does not name.
func (b *BwrapBuilder) addNamespaces(share []string) {
	shared := make(map[string]bool, len(share))
	for _, name := range share {
		if canonical, ok := CanonicalNamespace(name); ok {
			shared[canonical] = true
		}
	}
	for _, namespace := range Namespaces {
		if !shared[namespace.Name] {
			b.args = append(b.args, namespace.Flag)
		}
	}
}

func (b *BwrapBuilder) addMounts(flag string, mounts []config.BindMount) {
	for _, mount := range mounts {
		b.args = append(b.args, flag, mount.Source, mount.Dest)
	}
}

// standardBwrapPaths are checked when bwrap is not on PATH.
var standardBwrapPaths = []string{
	"/usr/bin/bwrap",
	"/usr/local/bin/bwrap",
	"/bin/bwrap",
}

// BwrapPath returns the path to the bwrap executable: the SHWRAP_BWRAP
// override if set, then PATH, then the standard install locations.
func BwrapPath() (string, error) {
	if override := os.Getenv(BwrapEnvironment); override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%s=%s: %w", BwrapEnvironment, override, err)
		}
		return override, nil
	}

	if path, err := exec.LookPath("bwrap"); err == nil {
		return path, nil
	}

	for _, path := range standardBwrapPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", ErrBwrapNotFound
}

// ErrBwrapNotFound is returned by BwrapPath when bubblewrap is not
// installed.
var ErrBwrapNotFound = errors.New("bwrap not found on PATH or in standard locations")
