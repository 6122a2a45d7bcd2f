// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the shwrap command tree. Each subcommand
// loads the merged configuration through [Environment], so tests can
// point the tree at temporary directories and capture its output.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/shwrap/shwrap/cmd/shwrap/cli"
	"github.com/shwrap/shwrap/lib/config"
	"github.com/shwrap/shwrap/lib/version"
	"github.com/shwrap/shwrap/sandbox"
)

// Environment is the process state the commands read and write.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Terminal reports whether Stdout is a terminal. Styled and
	// highlighted output is only produced when it is.
	Terminal bool

	// WorkingDirectory and Home locate the configuration files. Empty
	// values are filled from the process.
	WorkingDirectory string
	Home             string

	// Variables overrides environment lookups during path expansion.
	Variables sandbox.Variables

	// BwrapPath is the bwrap binary. Empty means search for it.
	BwrapPath string

	// Bypass replaces the process with an unsandboxed command.
	Bypass func(command string, args []string) error
}

// NewEnvironment returns an Environment bound to the current process.
func NewEnvironment() *Environment {
	return &Environment{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Terminal: term.IsTerminal(int(os.Stdout.Fd())),
		Bypass:   sandbox.Bypass,
	}
}

func (e *Environment) workingDirectory() (string, error) {
	if e.WorkingDirectory != "" {
		return e.WorkingDirectory, nil
	}
	directory, err := os.Getwd()
	if err != nil {
		return "", cli.Internal("determining working directory: %w", err)
	}
	return directory, nil
}

func (e *Environment) loader(logger *slog.Logger) (*config.Loader, error) {
	var loader *config.Loader
	if e.WorkingDirectory != "" && e.Home != "" {
		loader = config.NewLoader(e.WorkingDirectory, e.Home)
	} else {
		defaults, err := config.DefaultLoader()
		if err != nil {
			return nil, err
		}
		loader = defaults
		if e.WorkingDirectory != "" {
			loader.WorkingDirectory = e.WorkingDirectory
		}
		if e.Home != "" {
			loader.Home = e.Home
		}
	}
	loader.SetLogger(logger)
	return loader, nil
}

// load returns the merged configuration, or a not-found error when
// neither a local nor a user file exists.
func (e *Environment) load(logger *slog.Logger) (*config.Config, error) {
	loader, err := e.loader(logger)
	if err != nil {
		return nil, err
	}
	loaded, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, cli.NotFound("no configuration found")
	}
	return loaded, nil
}

// resolve loads the configuration and flattens the named command.
func (e *Environment) resolve(name string, logger *slog.Logger) (config.Entry, error) {
	loaded, err := e.load(logger)
	if err != nil {
		return config.Entry{}, err
	}
	entry, ok := loaded.Resolve(name)
	if !ok {
		return config.Entry{}, cli.NotFound("no configuration found for command %q", name)
	}
	return entry, nil
}

func (e *Environment) sandbox(entry config.Entry, logger *slog.Logger) *sandbox.Sandbox {
	return sandbox.New(sandbox.Config{
		Entry:     entry,
		Variables: e.Variables,
		BwrapPath: e.BwrapPath,
		Logger:    logger,
	})
}

// Root builds the shwrap command tree around environment.
func Root(environment *Environment) *cli.Command {
	return &cli.Command{
		Name: "shwrap",
		Description: `shwrap: bubblewrap profiles for everyday commands.

Commands and reusable models are declared in ~/.config/shwrap/default.yaml
and in .shwrap.yaml files found by walking up from the working directory.
The nearest local file is merged over the user file.`,
		Subcommands: []*cli.Command{
			initCommand(environment),
			listCommand(environment),
			showCommand(environment),
			wrapCommand(environment),
			bypassCommand(environment),
			validateCommand(environment),
			activateCommand(environment),
			checkCommand(environment),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(environment.Stdout, "shwrap %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Start a project configuration",
				Command:     "shwrap init",
			},
			{
				Description: "Run node inside its sandbox",
				Command:     "shwrap wrap node server.js",
			},
			{
				Description: "Wire configured commands into bash",
				Command:     `eval "$(shwrap activate bash)"`,
			},
		},
	}
}

// requireCommand splits a pass-through argument list into the command
// name and its arguments.
func requireCommand(args []string, usage string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, cli.Validation("command name is required\n\nusage: %s", usage)
	}
	return args[0], args[1:], nil
}
