// Package sourcedata finds and opens the dictionary and frequency source files.
package sourcedata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrDataDirNotFound is returned when the source data directory does not
// exist in the start directory or any of its parents.
var ErrDataDirNotFound = errors.New("source data directory not found")

// Locate resolves the source data directory. An absolute dir must exist as
// is. A relative dir is looked up in the working directory and then in each
// parent directory up to the filesystem root.
func Locate(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		if isDir(dir) {
			return dir, nil
		}
		return "", fmt.Errorf("%w: %s", ErrDataDirNotFound, dir)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("sourcedata: working directory: %w", err)
	}
	return LocateFrom(wd, dir)
}

// LocateFrom looks for the relative directory dir in start and its parents.
func LocateFrom(start, dir string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("sourcedata: resolve %s: %w", start, err)
	}

	for {
		candidate := filepath.Join(current, dir)
		if isDir(candidate) {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: %q is missing from %s and its parents", ErrDataDirNotFound, dir, start)
		}
		current = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
