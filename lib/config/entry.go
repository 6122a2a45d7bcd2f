// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// EntryType distinguishes invocable commands from templates.
type EntryType string

const (
	// EntryTypeCommand is a directly invocable profile.
	EntryTypeCommand EntryType = "command"
	// EntryTypeModel is a template, only reachable through extends.
	EntryTypeModel EntryType = "model"
)

// BindMount is a source/destination path pair for the bind family of
// fields. Paths are kept as written; expansion happens when the entry
// is translated into sandbox arguments.
type BindMount struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// String renders the pair in the "source:dest" document form.
func (b BindMount) String() string {
	return b.Source + ":" + b.Dest
}

// ParseBindMount parses "source:dest", or a single path that is used as
// both source and destination.
func ParseBindMount(spec string) (BindMount, error) {
	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return BindMount{}, fmt.Errorf("empty bind path")
		}
		return BindMount{Source: parts[0], Dest: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return BindMount{}, fmt.Errorf("invalid bind %q: source and dest must both be set", spec)
		}
		return BindMount{Source: parts[0], Dest: parts[1]}, nil
	default:
		return BindMount{}, fmt.Errorf("invalid bind %q: must be source:dest or a single path", spec)
	}
}

// Entry is one named record of a profile document, fully defaulted.
type Entry struct {
	Type     EntryType `json:"type" yaml:"type"`
	Enabled  bool      `json:"enabled" yaml:"enabled"`
	Override bool      `json:"override" yaml:"override"`
	Extends  []string  `json:"extends" yaml:"extends,omitempty"`

	// Share lists namespaces kept shared with the host. Everything
	// else is unshared.
	Share []string `json:"share" yaml:"share,omitempty"`

	Bind       []BindMount `json:"bind" yaml:"bind,omitempty"`
	ROBind     []BindMount `json:"ro_bind" yaml:"ro_bind,omitempty"`
	DevBind    []BindMount `json:"dev_bind" yaml:"dev_bind,omitempty"`
	BindTry    []BindMount `json:"bind_try" yaml:"bind_try,omitempty"`
	ROBindTry  []BindMount `json:"ro_bind_try" yaml:"ro_bind_try,omitempty"`
	DevBindTry []BindMount `json:"dev_bind_try" yaml:"dev_bind_try,omitempty"`
	Tmpfs      []string    `json:"tmpfs" yaml:"tmpfs,omitempty"`

	// Chdir is the working directory inside the sandbox. Empty means unset.
	Chdir string `json:"chdir,omitempty" yaml:"chdir,omitempty"`

	DieWithParent bool `json:"die_with_parent" yaml:"die_with_parent"`
	NewSession    bool `json:"new_session" yaml:"new_session"`

	Cap      []string          `json:"cap" yaml:"cap,omitempty"`
	Env      map[string]string `json:"env" yaml:"env,omitempty"`
	UnsetEnv []string          `json:"unset_env" yaml:"unset_env,omitempty"`
}

// DefaultEntry returns an enabled command with every other field unset.
func DefaultEntry() Entry {
	return Entry{
		Type:    EntryTypeCommand,
		Enabled: true,
	}
}

// IsCommand reports whether the entry is directly invocable.
func (e Entry) IsCommand() bool {
	return e.Type == EntryTypeCommand
}

// IsModel reports whether the entry is a template.
func (e Entry) IsModel() bool {
	return e.Type == EntryTypeModel
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	clone := e
	clone.Extends = slices.Clone(e.Extends)
	clone.Share = slices.Clone(e.Share)
	clone.Bind = slices.Clone(e.Bind)
	clone.ROBind = slices.Clone(e.ROBind)
	clone.DevBind = slices.Clone(e.DevBind)
	clone.BindTry = slices.Clone(e.BindTry)
	clone.ROBindTry = slices.Clone(e.ROBindTry)
	clone.DevBindTry = slices.Clone(e.DevBindTry)
	clone.Tmpfs = slices.Clone(e.Tmpfs)
	clone.Cap = slices.Clone(e.Cap)
	clone.Env = maps.Clone(e.Env)
	clone.UnsetEnv = slices.Clone(e.UnsetEnv)
	return clone
}
