package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BackupPath inserts ".backup" before the extension: foo.py -> foo.backup.py.
// Leading dots belong to the name, so .hook -> .hook.backup.
func BackupPath(path string) string {
	ext := filepath.Ext(path)
	if !strings.Contains(strings.TrimLeft(filepath.Base(path), "."), ".") {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + ".backup" + ext
}

// WriteFileAtomic replaces path via a temp file in the same directory, so
// readers see either the old content or the new one. An existing file keeps
// its permissions.
func WriteFileAtomic(path string, content string) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(content); err != nil {
		cleanup()
		return fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("could not sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("could not replace file: %w", err)
	}
	return nil
}
