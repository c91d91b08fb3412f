// Package atomicfile provides crash-safe file writing using temporary files
// and atomic renames.

package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write atomically writes data to path, replacing any existing file. The data
// is staged in a temp file in the same directory by [stage] and renamed over
// path once it is synced to disk.
func Write(path string, data []byte, perm os.FileMode) error {
	tmpName, err := stage(path, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteNew atomically writes data to path only if path does not exist yet.
// The staged temp file is hard-linked into place, so a concurrent writer that
// wins the race is never clobbered. When path already exists the returned
// error satisfies errors.Is(err, fs.ErrExist).
func WriteNew(path string, data []byte, perm os.FileMode) error {
	tmpName, err := stage(path, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := os.Link(tmpName, path); err != nil {
		return fmt.Errorf("link into place: %w", err)
	}
	return nil
}

// stage writes data to a temp file next to path, syncs it and applies perm.
// On failure the temp file is removed and the returned name is empty.
func stage(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	var success bool
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	success = true
	return tmpName, nil
}
