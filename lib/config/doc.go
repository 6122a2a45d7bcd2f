// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package config resolves shwrap profile documents into sandbox entries.
//
// A profile document is a YAML mapping from entry name to [Entry]. An
// entry is either a command (directly invocable) or a model (a template
// that commands inherit through extends). Two documents take part in
// every resolution:
//
//   - the user document at ~/.config/shwrap/default.yaml ([FindUser])
//   - the local document .shwrap.yaml, found by walking upward from the
//     working directory ([FindLocal])
//
// [Loader.Load] discovers and parses both, then [Aggregate] combines
// them. The local document takes precedence: an entry defined in both
// is deep-merged ([DeepMerge]) unless the local entry sets override, in
// which case it replaces the user entry wholesale. A local entry with
// enabled: false leaves the user entry in place untouched.
//
// [Config.Resolve] then flattens a command against its extends list
// ([Config.ResolveExtends]). Flattening concatenates template arrays
// without deduplication and overlays env maps in listed order, with the
// command's own values applied last. Unknown template names are skipped.
//
// Source merging and template flattening are separate operations with
// different deduplication rules.
//
// Nothing here is cached: every Load re-reads the files, and merge and
// flatten return new values without mutating their inputs.
package config
