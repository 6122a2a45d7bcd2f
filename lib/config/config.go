// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"maps"
	"slices"
)

// Config is a set of named entries. It is immutable: accessors return
// copies, and merging produces a new Config.
type Config struct {
	entries map[string]Entry
}

// New builds a Config from a copy of entries.
func New(entries map[string]Entry) *Config {
	config := &Config{entries: make(map[string]Entry, len(entries))}
	for name, entry := range entries {
		config.entries[name] = entry.Clone()
	}
	return config
}

// Len returns the number of entries of any type.
func (c *Config) Len() int {
	return len(c.entries)
}

// Names returns every entry name in sorted order.
func (c *Config) Names() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// CommandNames returns the names of command entries in sorted order.
func (c *Config) CommandNames() []string {
	return slices.Sorted(maps.Keys(c.Commands()))
}

// Entry returns the named entry regardless of its type.
func (c *Config) Entry(name string) (Entry, bool) {
	return c.EntryWith(name, func(Entry) bool { return true })
}

// EntryWith returns the named entry if it satisfies predicate.
func (c *Config) EntryWith(name string, predicate func(Entry) bool) (Entry, bool) {
	entry, ok := c.entries[name]
	if !ok || !predicate(entry) {
		return Entry{}, false
	}
	return entry.Clone(), true
}

// Entries returns a copy of every entry.
func (c *Config) Entries() map[string]Entry {
	return c.EntriesWith(func(Entry) bool { return true })
}

// EntriesWith returns copies of the entries that satisfy predicate.
func (c *Config) EntriesWith(predicate func(Entry) bool) map[string]Entry {
	result := make(map[string]Entry)
	for name, entry := range c.entries {
		if predicate(entry) {
			result[name] = entry.Clone()
		}
	}
	return result
}

// Command returns the named entry only if it is a command.
func (c *Config) Command(name string) (Entry, bool) {
	return c.EntryWith(name, Entry.IsCommand)
}

// Model returns the named entry only if it is a model.
func (c *Config) Model(name string) (Entry, bool) {
	return c.EntryWith(name, Entry.IsModel)
}

// Commands returns every command entry.
func (c *Config) Commands() map[string]Entry {
	return c.EntriesWith(Entry.IsCommand)
}

// Models returns every model entry.
func (c *Config) Models() map[string]Entry {
	return c.EntriesWith(Entry.IsModel)
}

// Resolve looks up a command and flattens it against its extends list.
// It reports false when no command has that name. A disabled command
// still resolves; callers decide what disabled means to them.
func (c *Config) Resolve(name string) (Entry, bool) {
	command, ok := c.Command(name)
	if !ok {
		return Entry{}, false
	}
	return c.ResolveExtends(command), true
}

// ResolveExtends folds the models named in entry.Extends into entry.
//
// Models are applied in listed order: their arrays are concatenated
// without deduplication and their env maps overlaid, so a later model
// wins over an earlier one. The entry's own arrays are appended last and
// its own env overlaid last. Names that are not models in c are skipped.
//
// The result has no extends. Type, enabled, override, chdir,
// die_with_parent and new_session come from entry alone.
func (c *Config) ResolveExtends(entry Entry) Entry {
	result := Entry{
		Type:          entry.Type,
		Enabled:       entry.Enabled,
		Override:      entry.Override,
		Chdir:         entry.Chdir,
		DieWithParent: entry.DieWithParent,
		NewSession:    entry.NewSession,
	}

	for _, name := range entry.Extends {
		model, ok := c.Model(name)
		if !ok {
			continue
		}
		result.appendFrom(model)
	}
	result.appendFrom(entry)

	return result
}

// appendFrom concatenates every array of source onto e and overlays
// source's env.
func (e *Entry) appendFrom(source Entry) {
	e.Share = append(e.Share, source.Share...)
	e.Bind = append(e.Bind, source.Bind...)
	e.ROBind = append(e.ROBind, source.ROBind...)
	e.DevBind = append(e.DevBind, source.DevBind...)
	e.BindTry = append(e.BindTry, source.BindTry...)
	e.ROBindTry = append(e.ROBindTry, source.ROBindTry...)
	e.DevBindTry = append(e.DevBindTry, source.DevBindTry...)
	e.Tmpfs = append(e.Tmpfs, source.Tmpfs...)
	e.Cap = append(e.Cap, source.Cap...)
	e.UnsetEnv = append(e.UnsetEnv, source.UnsetEnv...)
	e.Env = overlayEnv(e.Env, source.Env)
}
