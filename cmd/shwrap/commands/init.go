// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shwrap/shwrap/cmd/shwrap/cli"
	"github.com/shwrap/shwrap/lib/config"
)

func initCommand(environment *Environment) *cli.Command {
	return &cli.Command{
		Name:    "init",
		Summary: "Create a .shwrap.yaml in the current directory",
		Description: `Write a starter configuration to ./.shwrap.yaml. The file defines a
base model with read-only system mounts, a network model, and a few
example commands. An existing file is never overwritten.`,
		Usage: "shwrap init",
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("init takes no arguments, got %d", len(args))
			}

			directory, err := environment.workingDirectory()
			if err != nil {
				return err
			}
			path := filepath.Join(directory, config.LocalFileName)

			file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if errors.Is(err, fs.ErrExist) {
				return cli.Conflict("%s already exists in %s", config.LocalFileName, directory)
			}
			if err != nil {
				return cli.Internal("creating %s: %w", path, err)
			}
			if _, err := file.Write(config.Template()); err != nil {
				file.Close()
				return cli.Internal("writing %s: %w", path, err)
			}
			if err := file.Close(); err != nil {
				return cli.Internal("writing %s: %w", path, err)
			}

			logger.Debug("configuration template written", "path", path)
			fmt.Fprintf(environment.Stdout, "Created %s\n", path)
			return nil
		},
	}
}
