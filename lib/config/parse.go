// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseError reports a document that is not valid YAML or whose shape
// does not match the entry schema.
type ParseError struct {
	// Path is the file the document came from, empty for in-memory text.
	Path string

	// Entry is the name of the offending entry, empty when the document
	// as a whole is malformed.
	Entry string

	// Line is the 1-based line of the offending node, 0 if unknown.
	Line int

	Err error
}

func (e *ParseError) Error() string {
	var buffer bytes.Buffer
	buffer.WriteString("failed to parse config")
	if e.Path != "" {
		fmt.Fprintf(&buffer, " %s", e.Path)
	}
	if e.Entry != "" {
		fmt.Fprintf(&buffer, ": entry %q", e.Entry)
		if e.Line > 0 {
			fmt.Fprintf(&buffer, " (line %d)", e.Line)
		}
	}
	fmt.Fprintf(&buffer, ": %v", e.Err)
	return buffer.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a profile document. An empty document yields an empty
// Config.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Err: err}
	}

	config := &Config{entries: make(map[string]Entry)}

	// Empty input decodes to a zero node; a comment-only document to an
	// empty document node.
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return config, nil
	}

	body := &root
	if body.Kind == yaml.DocumentNode {
		body = body.Content[0]
	}
	if body.Kind == yaml.ScalarNode && body.ShortTag() == "!!null" {
		return config, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Line: body.Line,
			Err:  errors.New("document must be a mapping of entry names to entries"),
		}
	}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], body.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &ParseError{Line: key.Line, Err: errors.New("entry names must be strings")}
		}
		name := key.Value
		if _, exists := config.entries[name]; exists {
			return nil, &ParseError{Entry: name, Line: key.Line, Err: errors.New("entry defined more than once")}
		}
		entry, err := decodeEntry(value)
		if err != nil {
			return nil, &ParseError{Entry: name, Line: value.Line, Err: err}
		}
		config.entries[name] = entry
	}

	return config, nil
}

// ParseReader reads a document from r and parses it.
func ParseReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// ParseFile reads and parses the document at path. Parse failures are
// returned as a *ParseError carrying path.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	config, err := Parse(data)
	if err != nil {
		var parseError *ParseError
		if errors.As(err, &parseError) {
			parseError.Path = path
		}
		return nil, err
	}
	return config, nil
}
