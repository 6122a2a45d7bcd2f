// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"os"

	"github.com/shwrap/shwrap/cmd/shwrap/commands"
	"github.com/shwrap/shwrap/lib/process"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own outcome (check, validate) and
		// wrapped commands that exit non-zero carry an exit code. Don't
		// print a redundant "error:" line for those.
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	return commands.Root(commands.NewEnvironment()).Execute(context.Background(), os.Args[1:])
}
