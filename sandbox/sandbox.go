// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/shwrap/shwrap/lib/config"
)

// Sandbox runs commands under bwrap according to one resolved entry.
type Sandbox struct {
	entry     config.Entry
	variables Variables
	bwrapPath string
	logger    *slog.Logger
}

// Config holds configuration for creating a new Sandbox.
type Config struct {
	// Entry is the resolved entry, with extends already flattened.
	Entry config.Entry

	// Variables overrides environment lookups during path expansion.
	Variables Variables

	// BwrapPath is the bwrap binary. Empty means look it up with
	// [BwrapPath] when a command is built.
	BwrapPath string

	// Logger for sandbox operations.
	Logger *slog.Logger
}

// New creates a new Sandbox.
func New(config Config) *Sandbox {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Sandbox{
		entry:     config.Entry,
		variables: config.Variables,
		bwrapPath: config.BwrapPath,
		logger:    logger,
	}
}

// Entry returns the sandbox's entry.
func (s *Sandbox) Entry() config.Entry {
	return s.entry.Clone()
}

// DryRun returns the full bwrap argv, binary first, that Run would
// execute. It is for display: when bwrap cannot be located the binary
// is shown by its bare name instead of failing.
func (s *Sandbox) DryRun(command string, args []string) ([]string, error) {
	bwrapArgs, err := NewBwrapBuilder(s.variables).Build(s.entry, command, args)
	if err != nil {
		return nil, fmt.Errorf("failed to build bwrap command: %w", err)
	}

	bwrapPath := s.bwrapPath
	if bwrapPath == "" {
		path, err := BwrapPath()
		if err != nil {
			s.logger.Debug("bwrap not located, showing bare name", "error", err)
			path = "bwrap"
		}
		bwrapPath = path
	}

	return append([]string{bwrapPath}, bwrapArgs...), nil
}

// Show renders the bwrap command line as a single shell-quoted line.
func (s *Sandbox) Show(command string, args []string) (string, error) {
	argv, err := s.DryRun(command, args)
	if err != nil {
		return "", err
	}
	return ShellJoin(argv), nil
}

// Command creates an exec.Cmd for running in the sandbox. The caller's
// environment is inherited; the entry's setenv and unsetenv flags are
// applied by bwrap. Unlike DryRun, a bwrap that cannot be located is
// an error.
func (s *Sandbox) Command(ctx context.Context, command string, args []string) (*exec.Cmd, error) {
	bwrapArgs, err := NewBwrapBuilder(s.variables).Build(s.entry, command, args)
	if err != nil {
		return nil, fmt.Errorf("failed to build bwrap command: %w", err)
	}

	bwrapPath := s.bwrapPath
	if bwrapPath == "" {
		if bwrapPath, err = BwrapPath(); err != nil {
			return nil, err
		}
	}
	return exec.CommandContext(ctx, bwrapPath, bwrapArgs...), nil
}

// Run executes command in the sandbox with stdio attached. A non-zero
// exit from the command is returned as *ExitError.
func (s *Sandbox) Run(ctx context.Context, command string, args []string) error {
	cmd, err := s.Command(ctx, command, args)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	s.logger.Debug("running sandboxed command",
		"bwrap", cmd.Path,
		"command", command,
		"args", args,
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("sandbox command failed: %w", err)
	}

	return nil
}

// execFunction replaces the current process. Tests override it to
// capture the call.
var execFunction = unix.Exec

// lookPath resolves a command name against PATH. Tests override it.
var lookPath = exec.LookPath

// Bypass replaces the current process with command, unsandboxed. It
// only returns on failure.
func Bypass(command string, args []string) error {
	if command == "" {
		return fmt.Errorf("command is required")
	}
	path, err := lookPath(command)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", command, err)
	}
	argv := append([]string{command}, args...)
	if err := execFunction(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}

// ExitError represents a non-zero exit from the sandboxed command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// ExitCode returns the command's exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// IsExitError checks if an error is an ExitError and returns the code.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// ShellJoin quotes each argument for a POSIX shell and joins them with
// spaces.
func ShellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

// shellQuote returns s unchanged if it holds no shell metacharacters,
// otherwise wrapped in single quotes with internal single quotes
// escaped.
func shellQuote(s string) string {
	safe := s != ""
	for _, char := range s {
		if !isShellSafe(char) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(char rune) bool {
	switch {
	case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
		return true
	}
	switch char {
	case '-', '_', '.', '/', ':', '=', '+', ',', '@':
		return true
	}
	return false
}
