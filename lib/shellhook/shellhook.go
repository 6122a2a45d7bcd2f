// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package shellhook provides the shell integration scripts printed by
// "shwrap activate". A script defines a function for every command
// "shwrap list --simple" reports and refreshes them on directory change.
package shellhook

import (
	_ "embed"
	"fmt"
	"strings"
)

// Shell names a supported interactive shell.
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
)

// Shells lists every supported shell.
var Shells = []Shell{Bash, Zsh}

//go:embed bash.sh
var bashHook string

//go:embed zsh.sh
var zshHook string

// ParseShell accepts a shell name or a path to its binary, such as
// "/bin/zsh".
func ParseShell(name string) (Shell, error) {
	if index := strings.LastIndex(name, "/"); index >= 0 {
		name = name[index+1:]
	}
	shell := Shell(strings.ToLower(name))
	switch shell {
	case Bash, Zsh:
		return shell, nil
	}
	return "", fmt.Errorf("unsupported shell %q (supported: %s)", name, supportedList())
}

// Hook returns the integration script for shell.
func Hook(shell Shell) (string, error) {
	switch shell {
	case Bash:
		return bashHook, nil
	case Zsh:
		return zshHook, nil
	}
	return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, supportedList())
}

func supportedList() string {
	names := make([]string, len(Shells))
	for i, shell := range Shells {
		names[i] = string(shell)
	}
	return strings.Join(names, ", ")
}
