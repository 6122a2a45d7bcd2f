// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the binary entrypoint's last-resort error
// reporting, used by main after the command tree has returned and no
// logger is in play.
package process
