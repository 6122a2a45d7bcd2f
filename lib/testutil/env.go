// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"testing"
)

// Setenv sets variable for the duration of the test. An empty value
// unsets the variable instead. Like t.Setenv, it cannot be used in
// parallel tests.
func Setenv(t *testing.T, variable, value string) {
	t.Helper()
	t.Setenv(variable, value)
	if value == "" {
		if err := os.Unsetenv(variable); err != nil {
			t.Fatalf("unsetting %s: %v", variable, err)
		}
	}
}
