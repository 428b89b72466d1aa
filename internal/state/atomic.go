package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWrite replaces the file at path with data.
//
// The data goes to a temp file in the same directory, is synced, and is
// then renamed over path, so readers see either the old or the new
// contents and never a truncated file. Missing parent directories are
// created.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to target: %w", err)
	}

	success = true
	return nil
}

// AtomicWriteWithBackup copies the current contents of path to path.bak
// and then writes data atomically. The target is never missing in between.
func AtomicWriteWithBackup(path string, data []byte, perm os.FileMode) error {
	previous, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := AtomicWrite(path+".bak", previous, perm); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read file for backup: %w", err)
	}

	return AtomicWrite(path, data, perm)
}
