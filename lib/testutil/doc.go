// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for shwrap packages.
//
// [WriteFile] writes a file under a test's temporary tree, creating
// parent directories as needed. [Tree] creates the usual layout for
// configuration discovery tests: a home directory and a nested
// project directory that share one temporary root, so that upward
// searches from the project never escape into the real filesystem
// above the root unless a test asks for it.
//
// [Setenv] wraps t.Setenv for variables whose previous value must be
// unset rather than emptied when the test finishes.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no shwrap-internal dependencies.
package testutil
