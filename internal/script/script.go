package script

import (
	"fmt"
	"os"
	"path/filepath"

	"evolve/internal/interpreter"
)

// Script is the file under supervision. It is mutated in place and never deleted.
type Script struct {
	Path string
}

// Open resolves path to an absolute path and checks that it names a regular file.
func Open(path string) (*Script, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve script path '%s': %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("file '%s' does not exist", abs)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("file '%s' is not a regular file", abs)
	}
	return &Script{Path: abs}, nil
}

// IsExecutable reports whether any execute bit is set on path.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

func (s *Script) IsExecutable() bool {
	return IsExecutable(s.Path)
}

func (s *Script) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("could not read script: %w", err)
	}
	return string(data), nil
}

func (s *Script) ContentType(r *interpreter.Registry) string {
	return r.ContentType(s.Path)
}
