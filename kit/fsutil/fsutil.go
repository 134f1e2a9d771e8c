// Package fsutil provides utility functions for working with the filesystem.
package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory if it does not exist.
func EnsureDir(path string) error {
	err := os.MkdirAll(path, os.ModePerm)
	if err != nil {
		return fmt.Errorf("fsutil.EnsureDir: failed to create directory %s: %w", path, err)
	}
	return nil
}

// ReadTextIfExists returns the contents of path. The boolean is false when
// the file cannot be read for any reason.
func ReadTextIfExists(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// WriteText writes text to path, creating the parent directory if needed.
func WriteText(path, text string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("fsutil.WriteText: failed to write %s: %w", path, err)
	}
	return nil
}

// CountLines counts lines the way a line-oriented reader would: every
// newline ends a line, and trailing text without a newline is one more.
func CountLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}
