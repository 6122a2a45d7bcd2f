// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"testing"

	"github.com/shwrap/shwrap/lib/testutil"
)

func TestVariablesExpand(t *testing.T) {
	t.Setenv("SHWRAP_TEST_FROM_ENV", "/from/env")
	testutil.Setenv(t, "SHWRAP_TEST_UNSET_VARIABLE", "")

	variables := Variables{"HOME": "/home/user", "PROJECT": "/src/app", "EMPTY": ""}
	tests := []struct {
		input    string
		expected string
	}{
		{input: "~", expected: "/home/user"},
		{input: "~/.cache", expected: "/home/user/.cache"},
		{input: "/opt/~/x", expected: "/opt/~/x"},
		{input: "$PROJECT/bin", expected: "/src/app/bin"},
		{input: "${PROJECT}bin", expected: "/src/appbin"},
		{input: "$SHWRAP_TEST_FROM_ENV", expected: "/from/env"},
		{input: "$SHWRAP_TEST_UNSET_VARIABLE/x", expected: "$SHWRAP_TEST_UNSET_VARIABLE/x"},
		{input: "${SHWRAP_TEST_UNSET_VARIABLE}", expected: "${SHWRAP_TEST_UNSET_VARIABLE}"},
		{input: "/a${EMPTY}/b", expected: "/a/b"},
		{input: "/plain/path", expected: "/plain/path"},
	}
	for _, test := range tests {
		if got := variables.Expand(test.input); got != test.expected {
			t.Errorf("Expand(%q): expected %q, got %q", test.input, test.expected, got)
		}
	}
}

func TestVariablesExpand_NoHome(t *testing.T) {
	testutil.Setenv(t, "HOME", "")

	if got := (Variables{}).Expand("~/x"); got != "~/x" {
		t.Errorf("expected ~ kept without a home directory, got %q", got)
	}
}
