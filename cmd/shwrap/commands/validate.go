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
	"github.com/shwrap/shwrap/lib/config"
	"github.com/shwrap/shwrap/sandbox"
)

type validateParams struct {
	Silent bool `flag:"silent" desc:"print nothing and report through the exit status"`
}

func validateCommand(environment *Environment) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check a configuration file",
		Description: `Parse a single configuration file and check its entries: namespace and
capability names, extends targets, bind sources and tmpfs paths. The
host's bwrap installation is checked as well.

Without a path, the nearest .shwrap.yaml is checked, falling back to
~/.config/shwrap/default.yaml. Exits non-zero when the file does not
parse or any check fails. Warnings do not affect the exit status.`,
		Usage: "shwrap validate [flags] [path]",
		Examples: []cli.Example{
			{
				Description: "Check the configuration in effect here",
				Command:     "shwrap validate",
			},
			{
				Description: "Check a file from a script",
				Command:     "shwrap validate --silent ./profiles.yaml && echo ok",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return cli.Validation("expected at most 1 path, got %d", len(args))
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				loader, err := environment.loader(logger)
				if err != nil {
					return err
				}
				var found bool
				path, found, err = loader.ConfigFile()
				if err != nil {
					return err
				}
				if !found {
					return cli.NotFound("no configuration found")
				}
			}

			parsed, err := config.ParseFile(path)
			if err != nil {
				if params.Silent {
					return &cli.ExitError{Code: 1}
				}
				return cli.Validation("%w", err)
			}

			validator := sandbox.NewValidator()
			validator.ValidateAll(parsed, environment.Variables)
			logger.Debug("configuration validated", "path", path, "entries", parsed.Len(), "failed", validator.HasErrors())

			if !params.Silent {
				writeValidation(environment.Stdout, path, parsed, validator)
			}
			if validator.HasErrors() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func writeValidation(w io.Writer, path string, parsed *config.Config, validator *sandbox.Validator) {
	names := parsed.CommandNames()
	fmt.Fprintf(w, "Checked %s\n", path)
	fmt.Fprintf(w, "Found %d command(s)\n", len(names))
	for _, name := range names {
		command, _ := parsed.Command(name)
		if command.Enabled {
			fmt.Fprintf(w, "  - %s\n", name)
		} else {
			fmt.Fprintf(w, "  - %s (disabled)\n", name)
		}
	}
	fmt.Fprintln(w)
	validator.PrintResults(w)
}
