// Copyright 2026 The shwrap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const (
	// LocalFileName is the project-level document, searched for in the
	// working directory and each of its parents.
	LocalFileName = ".shwrap.yaml"

	// UserDirectory holds the user-level document.
	UserDirectory = "~/.config/shwrap"

	// UserFileName is the user-level document inside UserDirectory.
	UserFileName = "default.yaml"
)

// DiscoveryError reports a filesystem failure while looking for
// configuration files, such as permission denied on a candidate path.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to inspect %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// FindLocal walks from startDirectory up to the filesystem root and
// returns the first directory containing LocalFileName.
func FindLocal(startDirectory string) (string, bool, error) {
	directory, err := filepath.Abs(startDirectory)
	if err != nil {
		return "", false, &DiscoveryError{Path: startDirectory, Err: err}
	}

	for {
		found, err := isRegularFile(filepath.Join(directory, LocalFileName))
		if err != nil {
			return "", false, err
		}
		if found {
			return directory, true, nil
		}

		parent := filepath.Dir(directory)
		if parent == directory {
			return "", false, nil
		}
		directory = parent
	}
}

// UserFilePath returns the user-level document path for home, whether
// or not it exists.
func UserFilePath(home string) string {
	return filepath.Join(ExpandHome(UserDirectory, home), UserFileName)
}

// FindUser returns the user-level document path if the file exists. An
// unknown home (empty string) means there is no user document.
func FindUser(home string) (string, bool, error) {
	if home == "" {
		return "", false, nil
	}
	path := UserFilePath(home)
	found, err := isRegularFile(path)
	if err != nil || !found {
		return "", false, err
	}
	return path, true, nil
}

// ExpandHome replaces a leading "~" in path with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

// isRegularFile reports whether path exists and is not a directory.
// Missing paths are not an error; anything else is a *DiscoveryError.
func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, &DiscoveryError{Path: path, Err: err}
	}
	return !info.IsDir(), nil
}
