// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import _ "embed"

//go:embed template.yaml
var template []byte

// Template returns the starter document written by "shwrap init".
func Template() []byte {
	return append([]byte(nil), template...)
}
