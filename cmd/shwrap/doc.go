// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// shwrap runs everyday commands inside bubblewrap sandboxes described
// by YAML profiles.
//
// Profiles live in ~/.config/shwrap/default.yaml and in .shwrap.yaml
// files found by walking up from the working directory. The nearest
// local file is merged over the user file, commands inherit from the
// models they name in extends, and the result is translated into a
// bwrap command line.
//
// Shell integration ("shwrap activate bash") defines a function per
// configured command so that typing "node" runs "shwrap wrap node".
package main
