// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandbox runs commands under bubblewrap (bwrap) according to a
// resolved [config.Entry].
//
// [BwrapBuilder] translates an entry into bwrap options. Isolation is
// the default: every namespace in [Namespaces] is unshared unless the
// entry's share list names it. Bind pairs, tmpfs mounts and chdir are
// expanded ([Variables.Expand]) for "~", $VAR and ${VAR} before use;
// references to unknown variables are passed through as written.
//
// [Sandbox] executes the built command with the caller's stdio and
// relays a non-zero exit as [ExitError]. [Sandbox.DryRun] and
// [Sandbox.Show] return the argv without running it. [Bypass] replaces
// the current process with the unsandboxed command.
//
// [Validator] reports problems in a configuration that resolution
// tolerates but bwrap would not: unknown namespaces and capabilities,
// relative tmpfs destinations, missing bind sources, and extends lists
// naming missing models. [Capabilities] checks the host for bwrap and
// unprivileged user namespace support.
//
// The sandbox does not manage the process running inside it. It builds
// the bwrap invocation and waits for it to exit.
package sandbox
