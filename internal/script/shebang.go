package script

import (
	"strings"

	"evolve/internal/interpreter"
)

const shebangMarker = "#!"

// ApplyShebang prepends a "#!/usr/bin/env <name>" line unless content
// already starts with one. Applying it twice is the same as applying it once.
func ApplyShebang(content, name string) string {
	if strings.HasPrefix(content, shebangMarker) {
		return content
	}
	return interpreter.Shebang(name) + "\n" + content
}

// EnsureShebang adds a shebang to an executable script whose content type
// maps to an installed interpreter. It reports whether the file was changed.
// Unresolvable types are skipped silently.
func EnsureShebang(s *Script, r *interpreter.Registry) (bool, error) {
	if !s.IsExecutable() {
		return false, nil
	}
	interp, ok := r.Resolve(s.ContentType(r))
	if !ok {
		return false, nil
	}
	content, err := s.Read()
	if err != nil {
		return false, err
	}
	updated := ApplyShebang(content, interp.Name)
	if updated == content {
		return false, nil
	}
	if err := WriteFileAtomic(s.Path, updated); err != nil {
		return false, err
	}
	return true, nil
}
