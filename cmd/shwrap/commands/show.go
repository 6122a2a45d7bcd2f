// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/shwrap/shwrap/cmd/shwrap/cli"
	"github.com/shwrap/shwrap/lib/config"
)

type showParams struct {
	cli.JSONOutput
	Entry bool `flag:"entry" desc:"print the resolved entry instead of the bwrap command line"`
}

// showResult is the --json form of the bwrap command line.
type showResult struct {
	Command string   `json:"command"`
	Argv    []string `json:"argv"`
}

func showCommand(environment *Environment) *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print the bwrap command line for a command",
		Description: `Print the bwrap invocation that "shwrap wrap" would run, without running
it. Models named in extends are applied and paths are expanded.

With --entry, print the resolved entry as YAML instead. Flags must come
before the command name; everything after it is passed through.`,
		Usage:       "shwrap show [flags] <command> [args...]",
		PassThrough: true,
		Examples: []cli.Example{
			{
				Description: "Inspect the sandbox for a node script",
				Command:     "shwrap show node server.js --port 8080",
			},
			{
				Description: "Print the flattened entry",
				Command:     "shwrap show --entry node",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			name, commandArgs, err := requireCommand(args, "shwrap show [flags] <command> [args...]")
			if err != nil {
				return err
			}

			entry, err := environment.resolve(name, logger)
			if err != nil {
				return err
			}

			if params.Entry {
				if done, err := params.EmitJSON(environment.Stdout, entry); done {
					return err
				}
				return writeEntryYAML(environment.Stdout, name, entry, environment.Terminal)
			}

			sandbox := environment.sandbox(entry, logger)
			argv, err := sandbox.DryRun(name, commandArgs)
			if err != nil {
				return cli.Internal("%w", err)
			}
			if done, err := params.EmitJSON(environment.Stdout, showResult{Command: name, Argv: argv}); done {
				return err
			}

			line, err := sandbox.Show(name, commandArgs)
			if err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Fprintln(environment.Stdout, line)
			return nil
		},
	}
}

// writeEntryYAML writes entry as a one-entry document, highlighted when
// w is a terminal and NO_COLOR is unset.
func writeEntryYAML(w io.Writer, name string, entry config.Entry, terminal bool) error {
	data, err := yaml.Marshal(map[string]config.Entry{name: entry})
	if err != nil {
		return cli.Internal("encoding entry %q: %w", name, err)
	}

	if terminal && !termenv.EnvNoColor() {
		if err := quick.Highlight(w, string(data), "yaml", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err = w.Write(data)
	return err
}
