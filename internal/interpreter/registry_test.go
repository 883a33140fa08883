package interpreter

import (
	"errors"
	"testing"
)

func stubLookPath(t *testing.T, installed map[string]string) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if p, ok := installed[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestContentType(t *testing.T) {
	r := Default()

	testCases := []struct {
		name string
		path string
		want string
	}{
		{name: "Python script", path: "/tmp/foo.py", want: "text/x-python"},
		{name: "Upper-case extension", path: "/tmp/FOO.PY", want: "text/x-python"},
		{name: "Shell script", path: "run.sh", want: "text/x-shellscript"},
		{name: "JavaScript", path: "app.js", want: "text/javascript"},
		{name: "No extension", path: "/usr/local/bin/tool", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.ContentType(tc.path); got != tc.want {
				t.Errorf("ContentType(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	r := Default()

	if name, ok := r.Lookup("text/x-python"); !ok || name != "python3" {
		t.Errorf("Expected python3 for text/x-python, got %q (ok=%v)", name, ok)
	}
	if name, ok := r.Lookup("application/x-unknown"); ok {
		t.Errorf("Expected no interpreter for unknown type, got %q", name)
	}
	if _, ok := r.Lookup(""); ok {
		t.Error("Expected no interpreter for empty content type")
	}
}

func TestResolve(t *testing.T) {
	stubLookPath(t, map[string]string{"python3": "/usr/bin/python3"})
	r := Default()

	got, ok := r.Resolve("text/x-python")
	if !ok {
		t.Fatal("Expected python3 to resolve")
	}
	if got.Name != "python3" || got.Path != "/usr/bin/python3" {
		t.Errorf("Unexpected interpreter: %+v", got)
	}

	if _, ok := r.Resolve("text/x-ruby"); ok {
		t.Error("Expected ruby to be unresolvable when not installed")
	}
	if _, ok := r.Resolve("application/x-unknown"); ok {
		t.Error("Expected unknown content type to be unresolvable")
	}
}

func TestLoadRegistry_NormalizesExtensions(t *testing.T) {
	r, err := LoadRegistry([]byte(`{"extensions":{"PY":"text/x-python"},"interpreters":{"text/x-python":"python3"}}`))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := r.ContentType("x.py"); got != "text/x-python" {
		t.Errorf("Expected normalized extension lookup, got %q", got)
	}

	if _, err := LoadRegistry([]byte(`{not json`)); err == nil {
		t.Error("Expected an error for malformed table")
	}
}

func TestShebang(t *testing.T) {
	if got := Shebang("python3"); got != "#!/usr/bin/env python3" {
		t.Errorf("Shebang = %q", got)
	}
}
