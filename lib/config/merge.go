// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"maps"
	"slices"
)

// DeepMerge merges a higher-precedence child entry into a parent entry
// of the same name. Neither input is modified.
//
//   - type, enabled, override, extends, die_with_parent, new_session:
//     the child's value wins.
//   - chdir: the child's value if set, else the parent's.
//   - arrays: an empty child array keeps the parent array; otherwise the
//     result is parent followed by child with duplicates removed, first
//     occurrence kept.
//   - env: parent overlaid with child.
func DeepMerge(parent, child Entry) Entry {
	result := Entry{
		Type:          child.Type,
		Enabled:       child.Enabled,
		Override:      child.Override,
		Extends:       slices.Clone(child.Extends),
		Share:         mergeList(parent.Share, child.Share),
		Bind:          mergeList(parent.Bind, child.Bind),
		ROBind:        mergeList(parent.ROBind, child.ROBind),
		DevBind:       mergeList(parent.DevBind, child.DevBind),
		BindTry:       mergeList(parent.BindTry, child.BindTry),
		ROBindTry:     mergeList(parent.ROBindTry, child.ROBindTry),
		DevBindTry:    mergeList(parent.DevBindTry, child.DevBindTry),
		Tmpfs:         mergeList(parent.Tmpfs, child.Tmpfs),
		Chdir:         parent.Chdir,
		DieWithParent: child.DieWithParent,
		NewSession:    child.NewSession,
		Cap:           mergeList(parent.Cap, child.Cap),
		Env:           overlayEnv(parent.Env, child.Env),
		UnsetEnv:      mergeList(parent.UnsetEnv, child.UnsetEnv),
	}
	if child.Chdir != "" {
		result.Chdir = child.Chdir
	}
	return result
}

// mergeList appends child to parent and removes duplicates. An empty
// child leaves the parent list as it was, duplicates included.
func mergeList[T comparable](parent, child []T) []T {
	if len(child) == 0 {
		return slices.Clone(parent)
	}
	combined := make([]T, 0, len(parent)+len(child))
	combined = append(combined, parent...)
	combined = append(combined, child...)
	return dedupe(combined)
}

// dedupe removes repeated elements, keeping the first occurrence.
func dedupe[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	result := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// overlayEnv returns base with every key of top written over it.
func overlayEnv(base, top map[string]string) map[string]string {
	if len(base) == 0 && len(top) == 0 {
		return nil
	}
	result := make(map[string]string, len(base)+len(top))
	maps.Copy(result, base)
	maps.Copy(result, top)
	return result
}

// Merge combines two configurations entry by entry, with override taking
// precedence over base:
//
//   - a name defined in one configuration is carried through as is
//   - a disabled override entry is discarded and the base entry kept
//   - an override entry with override: true replaces the base entry
//   - otherwise the two are combined with [DeepMerge]
//
// Neither input is modified.
func Merge(base, override *Config) *Config {
	merged := make(map[string]Entry, len(base.entries)+len(override.entries))
	for name, entry := range base.entries {
		merged[name] = entry.Clone()
	}

	for name, child := range override.entries {
		parent, exists := merged[name]
		switch {
		case !exists:
			merged[name] = child.Clone()
		case !child.Enabled:
			// Disabled locally means "use the user version", not
			// "disable the command".
		case child.Override:
			merged[name] = child.Clone()
		default:
			merged[name] = DeepMerge(parent, child)
		}
	}

	return &Config{entries: merged}
}

// Aggregate combines the user and local configurations, either of which
// may be nil. It returns nil when both are nil.
func Aggregate(user, local *Config) *Config {
	switch {
	case user == nil && local == nil:
		return nil
	case local == nil:
		return user
	case user == nil:
		return local
	default:
		return Merge(user, local)
	}
}
