// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts "command" or "model" in any letter case.
func (t *EntryType) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: type must be a string", node.Line)
	}
	switch EntryType(strings.ToLower(node.Value)) {
	case EntryTypeCommand:
		*t = EntryTypeCommand
	case EntryTypeModel:
		*t = EntryTypeModel
	default:
		return fmt.Errorf("line %d: unknown entry type %q (must be command or model)", node.Line, node.Value)
	}
	return nil
}

// UnmarshalYAML accepts "source:dest", a single path, a two-element
// sequence, or a {source, dest} mapping.
func (b *BindMount) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		mount, err := ParseBindMount(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*b = mount
	case yaml.SequenceNode:
		var parts []string
		if err := node.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("line %d: bind pair must be [source, dest]", node.Line)
		}
		*b = BindMount{Source: parts[0], Dest: parts[1]}
	case yaml.MappingNode:
		var pair struct {
			Source string `yaml:"source"`
			Dest   string `yaml:"dest"`
		}
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if pair.Source == "" {
			return fmt.Errorf("line %d: bind source is required", node.Line)
		}
		if pair.Dest == "" {
			pair.Dest = pair.Source
		}
		*b = BindMount{Source: pair.Source, Dest: pair.Dest}
	default:
		return fmt.Errorf("line %d: invalid bind value", node.Line)
	}
	return nil
}

// MarshalYAML writes the pair back in its "source:dest" form.
func (b BindMount) MarshalYAML() (any, error) {
	return b.String(), nil
}

// NameList is a list of names that may be written as a single string.
type NameList []string

// UnmarshalYAML normalizes a scalar into a one-element list.
func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*n = NameList{node.Value}
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*n = names
	default:
		return fmt.Errorf("line %d: expected a name or a list of names", node.Line)
	}
	return nil
}

// entryDocument is the on-disk shape of an entry. Fields that default
// to something other than their zero value are preset by decodeEntry.
type entryDocument struct {
	Type          EntryType         `yaml:"type"`
	Enabled       bool              `yaml:"enabled"`
	Override      bool              `yaml:"override"`
	Extends       NameList          `yaml:"extends"`
	Share         []string          `yaml:"share"`
	Bind          []BindMount       `yaml:"bind"`
	ROBind        []BindMount       `yaml:"ro_bind"`
	DevBind       []BindMount       `yaml:"dev_bind"`
	BindTry       []BindMount       `yaml:"bind_try"`
	ROBindTry     []BindMount       `yaml:"ro_bind_try"`
	DevBindTry    []BindMount       `yaml:"dev_bind_try"`
	Tmpfs         []string          `yaml:"tmpfs"`
	Chdir         string            `yaml:"chdir"`
	DieWithParent bool              `yaml:"die_with_parent"`
	NewSession    bool              `yaml:"new_session"`
	Cap           []string          `yaml:"cap"`
	Env           map[string]string `yaml:"env"`
	UnsetEnv      []string          `yaml:"unset_env"`
}

// decodeEntry decodes one entry body. A null body yields the defaults.
// Unknown keys are ignored.
func decodeEntry(node *yaml.Node) (Entry, error) {
	defaults := DefaultEntry()
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return defaults, nil
	}
	if node.Kind != yaml.MappingNode {
		return Entry{}, fmt.Errorf("line %d: entry must be a mapping", node.Line)
	}

	document := entryDocument{
		Type:    defaults.Type,
		Enabled: defaults.Enabled,
	}
	if err := node.Decode(&document); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Type:          document.Type,
		Enabled:       document.Enabled,
		Override:      document.Override,
		Extends:       []string(document.Extends),
		Share:         document.Share,
		Bind:          document.Bind,
		ROBind:        document.ROBind,
		DevBind:       document.DevBind,
		BindTry:       document.BindTry,
		ROBindTry:     document.ROBindTry,
		DevBindTry:    document.DevBindTry,
		Tmpfs:         document.Tmpfs,
		Chdir:         document.Chdir,
		DieWithParent: document.DieWithParent,
		NewSession:    document.NewSession,
		Cap:           document.Cap,
		Env:           document.Env,
		UnsetEnv:      document.UnsetEnv,
	}
	if len(entry.Extends) == 0 {
		entry.Extends = nil
	}
	return entry, nil
}
