// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shwrap/shwrap/lib/config"
)

// ValidationResult holds the result of a validation check.
type ValidationResult struct {
	Name    string
	Passed  bool
	Message string
	Warning bool // True if this is a warning, not an error.
}

// Validator checks a configuration for problems bwrap would hit at run
// time. Authoring slips that resolution tolerates, such as an extends
// naming a missing model, are reported as warnings.
type Validator struct {
	results []ValidationResult
	errors  int
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		results: make([]ValidationResult, 0),
	}
}

// Results returns all validation results.
func (v *Validator) Results() []ValidationResult {
	return v.results
}

// HasErrors returns true if any validation failed.
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

// pass records a successful validation.
func (v *Validator) pass(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
	})
}

// warn records a warning (not a failure).
func (v *Validator) warn(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
		Warning: true,
	})
}

// fail records a validation failure.
func (v *Validator) fail(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  false,
		Message: message,
	})
	v.errors++
}

// ValidateAll checks bwrap availability and every entry of c.
func (v *Validator) ValidateAll(c *config.Config, variables Variables) {
	v.ValidateBwrap()
	v.ValidateConfig(c, variables)
}

// ValidateBwrap checks that bubblewrap is available. A missing binary is
// only a warning: the document can still be correct.
func (v *Validator) ValidateBwrap() {
	path, err := BwrapPath()
	if err != nil {
		v.warn("bwrap", fmt.Sprintf("%v (commands cannot be wrapped)", err))
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		v.warn("bwrap", fmt.Sprintf("cannot stat %s: %v", path, err))
		return
	}
	if info.Mode()&0111 == 0 {
		v.warn("bwrap", fmt.Sprintf("%s is not executable", path))
		return
	}

	version := bwrapVersion(path)
	if version == "" {
		v.warn("bwrap", fmt.Sprintf("found at %s but --version failed", path))
		return
	}
	v.pass("bwrap", fmt.Sprintf("available: %s (%s)", path, version))
}

// ValidateConfig checks every entry of c in name order.
func (v *Validator) ValidateConfig(c *config.Config, variables Variables) {
	for _, name := range c.Names() {
		entry, _ := c.Entry(name)
		v.ValidateEntry(c, name, entry, variables)
	}
}

// ValidateEntry checks one entry. c is used to look up extends targets.
func (v *Validator) ValidateEntry(c *config.Config, name string, entry config.Entry, variables Variables) {
	before := len(v.results)

	for _, namespace := range entry.Share {
		if _, ok := CanonicalNamespace(namespace); !ok {
			v.warn(name, fmt.Sprintf("unknown namespace in share: %s", namespace))
		}
	}

	for _, capability := range entry.Cap {
		if !KnownCapability(capability) {
			v.fail(name, fmt.Sprintf("unknown capability: %s", capability))
		}
	}

	if entry.IsModel() && len(entry.Extends) > 0 {
		v.warn(name, "extends on a model is ignored (templates are single-level)")
	}
	if entry.IsCommand() {
		for _, model := range entry.Extends {
			if _, ok := c.Model(model); !ok {
				v.warn(name, fmt.Sprintf("extends unknown model: %s", model))
			}
		}
	}

	expanded := variables.ExpandEntry(entry)
	for _, mounts := range [][]config.BindMount{expanded.Bind, expanded.ROBind, expanded.DevBind} {
		for _, mount := range mounts {
			v.checkSource(name, mount)
		}
	}

	for _, path := range expanded.Tmpfs {
		if !filepath.IsAbs(path) {
			v.fail(name, fmt.Sprintf("tmpfs destination must be absolute: %s", path))
		}
	}

	if len(v.results) == before {
		kind := "command"
		if entry.IsModel() {
			kind = "model"
		}
		if !entry.Enabled {
			kind += " (disabled)"
		}
		v.pass(name, kind)
	}
}

// checkSource warns when a required bind source is missing.
func (v *Validator) checkSource(name string, mount config.BindMount) {
	if strings.Contains(mount.Source, "$") {
		v.warn(name, fmt.Sprintf("unresolved variable in source: %s", mount.Source))
		return
	}
	_, err := os.Stat(mount.Source)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		v.warn(name, fmt.Sprintf("source not found: %s -> %s", mount.Source, mount.Dest))
	default:
		v.warn(name, fmt.Sprintf("cannot access source %s: %v", mount.Source, err))
	}
}

// PrintResults writes validation results to a writer.
func (v *Validator) PrintResults(w io.Writer) {
	for _, r := range v.results {
		var prefix string
		if r.Passed {
			if r.Warning {
				prefix = "⚠"
			} else {
				prefix = "✓"
			}
		} else {
			prefix = "✗"
		}
		fmt.Fprintf(w, "%s %s: %s\n", prefix, r.Name, r.Message)
	}

	fmt.Fprintln(w)
	if v.HasErrors() {
		fmt.Fprintf(w, "Validation failed with %d error(s)\n", v.errors)
	} else {
		fmt.Fprintln(w, "Configuration is valid")
	}
}
