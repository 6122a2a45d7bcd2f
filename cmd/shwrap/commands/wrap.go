// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/shwrap/shwrap/cmd/shwrap/cli"
	"github.com/shwrap/shwrap/sandbox"
)

func wrapCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "wrap",
		Summary: "Run a command inside its sandbox",
		Description: `Resolve the named command, build its bwrap invocation and run it with
stdio attached. shwrap exits with the command's exit status.

Every argument after the command name is passed to the command
unchanged, including arguments that look like flags.`,
		Usage:       "shwrap wrap <command> [args...]",
		PassThrough: true,
		Examples: []cli.Example{
			{
				Description: "Run npm in the node sandbox",
				Command:     "shwrap wrap npm install --save-dev typescript",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			name, commandArgs, err := requireCommand(args, "shwrap wrap <command> [args...]")
			if err != nil {
				return err
			}

			entry, err := environment.resolve(name, logger)
			if err != nil {
				return err
			}
			if !entry.Enabled {
				return cli.Validation("command %q is disabled in configuration", name)
			}

			err = environment.sandbox(entry, logger).Run(ctx, name, commandArgs)
			if code, ok := sandbox.IsExitError(err); ok {
				return &cli.ExitError{Code: code}
			}
			if err != nil {
				return cli.Internal("running %q: %w", name, err)
			}
			return nil
		},
	}
}

func bypassCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "bypass",
		Summary: "Run a command without a sandbox",
		Description: `Replace shwrap with the named command, looked up on PATH, with no
sandbox applied. Shell hooks route configured commands through
"shwrap wrap"; bypass is the escape hatch.`,
		Usage:       "shwrap bypass <command> [args...]",
		PassThrough: true,
		Examples: []cli.Example{
			{
				Description: "Run the host's node directly",
				Command:     "shwrap bypass node --version",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			name, commandArgs, err := requireCommand(args, "shwrap bypass <command> [args...]")
			if err != nil {
				return err
			}

			logger.Debug("bypassing sandbox", "command", name, "args", commandArgs)
			if err := environment.Bypass(name, commandArgs); err != nil {
				return cli.Internal("failed to execute %q: %w", name, err)
			}
			return nil
		},
	}
}
