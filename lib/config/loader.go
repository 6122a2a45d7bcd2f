// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
)

// Loader finds, parses and aggregates the user and local documents. It
// holds no state between calls: every Load reads from disk.
type Loader struct {
	// WorkingDirectory is where the upward search for LocalFileName
	// starts.
	WorkingDirectory string

	// Home is the user's home directory, used to locate UserFileName.
	Home string

	logger *slog.Logger
}

// NewLoader creates a loader rooted at workingDirectory and home.
func NewLoader(workingDirectory, home string) *Loader {
	return &Loader{WorkingDirectory: workingDirectory, Home: home}
}

// DefaultLoader creates a loader for the current process's working
// directory and home directory. When neither $HOME nor the password
// database names a home directory, the loader has no user document.
func DefaultLoader() (*Loader, error) {
	workingDirectory, err := os.Getwd()
	if err != nil {
		return nil, &DiscoveryError{Path: ".", Err: err}
	}
	return NewLoader(workingDirectory, HomeDirectory()), nil
}

// HomeDirectory returns $HOME, falling back to the current user's entry
// in the password database. It returns "" when neither is available.
func HomeDirectory() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	if current, err := user.Current(); err == nil {
		return current.HomeDir
	}
	return ""
}

// SetLogger enables debug logging of discovery and merge decisions.
func (l *Loader) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// log is a helper that only logs if a logger is configured.
func (l *Loader) log(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

// LocalFile returns the path of the nearest local document.
func (l *Loader) LocalFile() (string, bool, error) {
	directory, found, err := FindLocal(l.WorkingDirectory)
	if err != nil || !found {
		return "", false, err
	}
	return filepath.Join(directory, LocalFileName), true, nil
}

// UserFile returns the path of the user document if it exists.
func (l *Loader) UserFile() (string, bool, error) {
	if l.Home == "" {
		l.log("home directory unknown, skipping user config")
	}
	return FindUser(l.Home)
}

// ConfigFile returns the single document a user most likely means: the
// local document if there is one, otherwise the user document.
func (l *Loader) ConfigFile() (string, bool, error) {
	path, found, err := l.LocalFile()
	if err != nil || found {
		return path, found, err
	}
	return l.UserFile()
}

// Load reads both documents and aggregates them. It returns (nil, nil)
// when neither file exists.
func (l *Loader) Load() (*Config, error) {
	user, err := l.loadSource("user", l.UserFile)
	if err != nil {
		return nil, err
	}
	local, err := l.loadSource("local", l.LocalFile)
	if err != nil {
		return nil, err
	}

	config := Aggregate(user, local)
	if config == nil {
		l.log("no configuration found", "working_directory", l.WorkingDirectory, "home", l.Home)
		return nil, nil
	}
	if user != nil && local != nil {
		l.logMerge(user, local)
	}
	l.log("configuration loaded", "entries", config.Len())
	return config, nil
}

func (l *Loader) loadSource(source string, find func() (string, bool, error)) (*Config, error) {
	path, found, err := find()
	if err != nil {
		return nil, err
	}
	if !found {
		l.log("config file not found", "source", source)
		return nil, nil
	}
	config, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s config: %w", source, err)
	}
	l.log("config file loaded", "source", source, "path", path, "entries", config.Len())
	return config, nil
}

// logMerge records which rule Merge applies to each name both documents
// define.
func (l *Loader) logMerge(user, local *Config) {
	if l.logger == nil {
		return
	}
	for _, name := range local.Names() {
		if _, exists := user.entries[name]; !exists {
			continue
		}
		child := local.entries[name]
		switch {
		case !child.Enabled:
			l.log("local entry disabled, keeping user entry", "name", name)
		case child.Override:
			l.log("local entry replaces user entry", "name", name)
		default:
			l.log("merging local entry into user entry", "name", name)
		}
	}
}
