// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the shwrap CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/shwrap/commands and dispatched via [Command.Execute], which handles
// flag parsing, subcommand routing, and structured help output with
// examples. Commands that hand their arguments to another program set
// [Command.PassThrough] so flag parsing stops at the program name.
//
// When a user types an unknown subcommand or flag, the framework computes
// edit distance (adjacent transpositions count once) against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Parameter structs declare flags with struct tags ([FlagsFromParams]);
// embedding [JSONOutput] adds --json. Errors are categorized with
// [ToolError] constructors, and [ExitError] carries an exit status for
// commands that have already printed their own outcome.
package cli
