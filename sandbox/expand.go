// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os"
	"regexp"
	"strings"

	"github.com/shwrap/shwrap/lib/config"
)

// variablePattern matches ${NAME} and $NAME references.
var variablePattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Variables holds values for path expansion. Names not in the map fall
// back to the process environment.
type Variables map[string]string

// Lookup returns the value of name from v or the environment.
func (v Variables) Lookup(name string) (string, bool) {
	if value, ok := v[name]; ok {
		return value, true
	}
	return os.LookupEnv(name)
}

// Expand replaces a leading "~" with HOME and substitutes $VAR and
// ${VAR} references. References to unknown variables are left as
// written.
func (v Variables) Expand(s string) string {
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, ok := v.Lookup("HOME"); ok && home != "" {
			s = config.ExpandHome(s, home)
		}
	}
	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		name = strings.TrimSuffix(strings.TrimPrefix(name, "{"), "}")
		if value, ok := v.Lookup(name); ok {
			return value
		}
		return match
	})
}

// ExpandMount expands both sides of a bind pair.
func (v Variables) ExpandMount(mount config.BindMount) config.BindMount {
	return config.BindMount{Source: v.Expand(mount.Source), Dest: v.Expand(mount.Dest)}
}

// ExpandEntry returns a copy of entry with every path expanded: the bind
// family, tmpfs and chdir.
func (v Variables) ExpandEntry(entry config.Entry) config.Entry {
	expanded := entry.Clone()
	for _, mounts := range [][]config.BindMount{
		expanded.Bind, expanded.ROBind, expanded.DevBind,
		expanded.BindTry, expanded.ROBindTry, expanded.DevBindTry,
	} {
		for i := range mounts {
			mounts[i] = v.ExpandMount(mounts[i])
		}
	}
	for i := range expanded.Tmpfs {
		expanded.Tmpfs[i] = v.Expand(expanded.Tmpfs[i])
	}
	if expanded.Chdir != "" {
		expanded.Chdir = v.Expand(expanded.Chdir)
	}
	return expanded
}
