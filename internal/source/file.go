// Package source reads and writes whole source files.
package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// File is a source file read fully into memory.
type File struct {
	Path string
	Text []byte
}

// Read loads the whole file. Path is made absolute.
func Read(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: path, Err: err}
	}

	text, err := os.ReadFile(abs)
	if err != nil {
		return nil, &IOError{Op: "read", Path: abs, Err: err}
	}

	return &File{Path: abs, Text: text}, nil
}

// WriteAtomic replaces path with data. The data goes to a temp file in the
// same directory first, which is renamed over path, so readers never see a
// partial file. The original mode is kept when path exists.
func WriteAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create temp file for", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return &IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename temp file to", Path: path, Err: err}
	}

	return nil
}
