package interpreter

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed interpreters.json
var defaultTable []byte

// lookPath is swapped out in tests.
var lookPath = exec.LookPath

type Interpreter struct {
	Name string
	Path string
}

type Registry struct {
	Extensions   map[string]string `json:"extensions"`
	Interpreters map[string]string `json:"interpreters"`
}

var (
	registryOnce sync.Once
	registry     *Registry
)

// Parses a content-type table in the interpreters.json shape
func LoadRegistry(data []byte) (*Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("could not parse interpreter table JSON: %w", err)
	}

	// Extension keys are matched lower-cased with the leading dot
	exts := make(map[string]string, len(r.Extensions))
	for ext, ct := range r.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = ct
	}
	r.Extensions = exts
	if r.Interpreters == nil {
		r.Interpreters = map[string]string{}
	}
	return &r, nil
}

// Default returns the built-in table, parsed once per process.
func Default() *Registry {
	registryOnce.Do(func() {
		var err error
		registry, err = LoadRegistry(defaultTable)
		if err != nil {
			log.Fatalf("Fatal Error: Could not load interpreter table: %v", err)
		}
	})
	return registry
}

func (r *Registry) ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if ct, ok := r.Extensions[ext]; ok {
		return ct
	}
	ct := mime.TypeByExtension(ext)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

func (r *Registry) Lookup(contentType string) (string, bool) {
	name, ok := r.Interpreters[contentType]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Resolve reports ok only when the content type maps to an interpreter
// that is installed on the host PATH.
func (r *Registry) Resolve(contentType string) (Interpreter, bool) {
	name, ok := r.Lookup(contentType)
	if !ok {
		return Interpreter{}, false
	}
	path, err := lookPath(name)
	if err != nil {
		return Interpreter{}, false
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Interpreter{Name: name, Path: path}, true
}

func Shebang(name string) string {
	return "#!/usr/bin/env " + name
}
