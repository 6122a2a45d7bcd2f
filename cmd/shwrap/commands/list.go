// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/shwrap/shwrap/cmd/shwrap/cli"
	"github.com/shwrap/shwrap/lib/config"
)

type listParams struct {
	cli.JSONOutput
	Simple bool `flag:"simple" desc:"print command names only, one per line"`
	All    bool `flag:"all" desc:"include disabled commands"`
}

// listEntry is one command in list output, with extends flattened.
type listEntry struct {
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Extends []string `json:"extends,omitempty"`
	Share   []string `json:"share"`
	Bind    []string `json:"bind"`
}

func listCommand(environment *Environment) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List configured commands",
		Description: `List the enabled commands of the merged configuration, sorted by name.
Each command shows the namespaces it shares with the host and its
read-write bind mounts after models are applied.

--simple prints bare names and is what the shell hooks consume.`,
		Usage: "shwrap list [flags]",
		Examples: []cli.Example{
			{
				Description: "Names only, for scripts",
				Command:     "shwrap list --simple",
			},
			{
				Description: "Every command, including disabled ones, as JSON",
				Command:     "shwrap list --all --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("list takes no arguments, got %d", len(args))
			}

			loaded, err := environment.load(logger)
			if err != nil {
				return err
			}
			entries := listEntries(loaded, params.All)

			if done, err := params.EmitJSON(environment.Stdout, entries); done {
				return err
			}

			if params.Simple {
				for _, entry := range entries {
					fmt.Fprintln(environment.Stdout, entry.Name)
				}
				return nil
			}

			writeList(environment.Stdout, entries, newListStyles(environment.Stdout, environment.Terminal))
			return nil
		},
	}
}

func listEntries(loaded *config.Config, all bool) []listEntry {
	var entries []listEntry
	for _, name := range loaded.CommandNames() {
		command, _ := loaded.Command(name)
		if !command.Enabled && !all {
			continue
		}
		resolved, _ := loaded.Resolve(name)
		binds := make([]string, len(resolved.Bind))
		for i, mount := range resolved.Bind {
			binds[i] = mount.String()
		}
		share := resolved.Share
		if share == nil {
			share = []string{}
		}
		entries = append(entries, listEntry{
			Name:    name,
			Enabled: resolved.Enabled,
			Extends: slices.Clone(command.Extends),
			Share:   share,
			Bind:    binds,
		})
	}
	return entries
}

type listStyles struct {
	heading  lipgloss.Style
	name     lipgloss.Style
	label    lipgloss.Style
	disabled lipgloss.Style
}

// newListStyles returns styles that render plain text unless w is a
// terminal and NO_COLOR is unset.
func newListStyles(w io.Writer, terminal bool) listStyles {
	renderer := lipgloss.NewRenderer(w)
	if !terminal || termenv.EnvNoColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return listStyles{
		heading:  renderer.NewStyle().Bold(true),
		name:     renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		label:    renderer.NewStyle().Faint(true),
		disabled: renderer.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func writeList(w io.Writer, entries []listEntry, styles listStyles) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No active commands")
		return
	}

	fmt.Fprintln(w, styles.heading.Render("Active command configurations:"))
	for _, entry := range entries {
		fmt.Fprintln(w)
		line := styles.name.Render(entry.Name + ":")
		if !entry.Enabled {
			line += " " + styles.disabled.Render("(disabled)")
		}
		fmt.Fprintln(w, line)

		if len(entry.Extends) > 0 {
			fmt.Fprintf(w, "  %s %s\n", styles.label.Render("extends:"), strings.Join(entry.Extends, ", "))
		}
		if len(entry.Share) > 0 {
			fmt.Fprintf(w, "  %s %s\n", styles.label.Render("share:"), strings.Join(entry.Share, ", "))
		}
		if len(entry.Bind) > 0 {
			fmt.Fprintf(w, "  %s %s\n", styles.label.Render("bind:"), strings.Join(entry.Bind, ", "))
		}
	}
}
