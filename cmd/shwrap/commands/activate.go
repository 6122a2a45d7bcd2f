// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/shwrap/shwrap/cmd/shwrap/cli"
	"github.com/shwrap/shwrap/lib/shellhook"
)

func activateCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "activate",
		Summary: "Print the shell integration hook",
		Description: `Print a hook script for the given shell. Evaluated in an interactive
shell, it defines a function for every enabled command so that typing
the command name runs it through "shwrap wrap". The functions are
refreshed whenever the working directory changes.

Supported shells: bash, zsh.`,
		Usage: "shwrap activate <shell>",
		Examples: []cli.Example{
			{
				Description: "Enable the hook in ~/.bashrc",
				Command:     `eval "$(shwrap activate bash)"`,
			},
			{
				Description: "Enable the hook in ~/.zshrc",
				Command:     `eval "$(shwrap activate zsh)"`,
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly 1 shell name, got %d\n\nusage: shwrap activate <shell>", len(args))
			}
			shell, err := shellhook.ParseShell(args[0])
			if err != nil {
				return cli.Validation("%w", err)
			}
			hook, err := shellhook.Hook(shell)
			if err != nil {
				return cli.Validation("%w", err)
			}
			_, err = io.WriteString(environment.Stdout, hook)
			return err
		},
	}
}

type checkParams struct {
	Silent bool `flag:"silent" desc:"print nothing and report through the exit status"`
}

func checkCommand(environment *Environment) *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Report whether a command is configured",
		Description: `Exit 0 when the merged configuration defines the named command and 1
when it does not. Disabled commands count as configured.`,
		Usage: "shwrap check [flags] <command>",
		Examples: []cli.Example{
			{
				Description: "Test from a script",
				Command:     "shwrap check --silent node && echo sandboxed",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly 1 command name, got %d\n\nusage: shwrap check [flags] <command>", len(args))
			}
			name := args[0]

			loaded, err := environment.load(logger)
			if err != nil {
				return err
			}

			if _, ok := loaded.Command(name); ok {
				if !params.Silent {
					fmt.Fprintf(environment.Stdout, "Command %q is configured\n", name)
				}
				return nil
			}
			if !params.Silent {
				fmt.Fprintf(environment.Stderr, "Command %q not found in configuration\n", name)
			}
			return &cli.ExitError{Code: 1}
		},
	}
}
