// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	output := JSONOutput{}
	if done, err := output.EmitJSON(&buffer, []string{"a"}); done || err != nil {
		t.Fatalf("expected no output without --json, got done=%v err=%v", done, err)
	}
	if buffer.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buffer.String())
	}

	output.OutputJSON = true
	var names []string
	if done, err := output.EmitJSON(&buffer, names); !done || err != nil {
		t.Fatalf("expected JSON output, got done=%v err=%v", done, err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("expected nil slice to encode as [], got %q", buffer.String())
	}
}

func TestToolErrorCategories(t *testing.T) {
	t.Parallel()

	base := errors.New("underlying")
	tests := []struct {
		err      *ToolError
		category ErrorCategory
	}{
		{Validation("bad input: %w", base), CategoryValidation},
		{NotFound("missing: %w", base), CategoryNotFound},
		{Conflict("exists: %w", base), CategoryConflict},
		{Internal("broken: %w", base), CategoryInternal},
	}
	for _, test := range tests {
		if test.err.Category != test.category {
			t.Errorf("expected category %s, got %s", test.category, test.err.Category)
		}
		if !errors.Is(test.err, base) {
			t.Errorf("%s: expected errors.Is to reach the wrapped error", test.category)
		}
		wrapped := fmt.Errorf("outer: %w", test.err)
		if CategoryOf(wrapped) != test.category {
			t.Errorf("expected CategoryOf to find %s, got %s", test.category, CategoryOf(wrapped))
		}
	}
	if CategoryOf(base) != "" {
		t.Errorf("expected no category for a plain error, got %s", CategoryOf(base))
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	var err error = &ExitError{Code: 2}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 2 {
		t.Errorf("expected ExitCode() 2, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	newLogger(&buffer, false, false).Debug("hidden")
	if buffer.Len() != 0 {
		t.Errorf("expected debug suppressed at info level, got %q", buffer.String())
	}

	newLogger(&buffer, false, true).Debug("shown", "key", "value")
	if !strings.Contains(buffer.String(), `"msg":"shown"`) {
		t.Errorf("expected JSON debug record, got %q", buffer.String())
	}

	buffer.Reset()
	newLogger(&buffer, true, false).Info("hello")
	if !strings.Contains(buffer.String(), "msg=hello") {
		t.Errorf("expected text record, got %q", buffer.String())
	}
}
