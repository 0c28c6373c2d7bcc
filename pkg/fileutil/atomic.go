// Package fileutil provides the file reads and writes used for document
// snapshots: size-limited reads and atomic replacement.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// DefaultPerm is the mode given to files written without an existing mode.
const DefaultPerm os.FileMode = 0644

// AtomicWriteFile writes data to a temp file in the same directory and renames
// it over path, so an interrupted write leaves the original intact.
//
// The parent directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".gedcheck-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true
	return nil
}

// ReplaceFile atomically writes data to path, keeping the mode of an existing
// file and using DefaultPerm for a new one. A trailing newline is added when
// missing.
func ReplaceFile(path string, data []byte) error {
	perm := DefaultPerm
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return AtomicWriteFile(path, data, perm)
}
