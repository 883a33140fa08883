package repair

import (
	"strings"
	"testing"
)

func TestExtractScript(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "Language-tagged fence", body: "```python\nprint('fixed')\n```", want: "print('fixed')\n"},
		{name: "Bare fence with prose around it", body: "Here you go:\n```\necho ok\n```\nCheers", want: "echo ok\n"},
		{name: "First of several fences", body: "```sh\none\n```\n```sh\ntwo\n```", want: "one\n"},
		{name: "No fence falls back to body", body: "print('raw')\n", want: "print('raw')\n"},
		{name: "Unterminated fence falls back to body", body: "```python\nprint(1)\n", want: "```python\nprint(1)\n"},
		{name: "Tag with digits", body: "```python3\nx = 1\n```", want: "x = 1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractScript(tc.body); got != tc.want {
				t.Errorf("ExtractScript(%q) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestWrapThenExtract(t *testing.T) {
	inputs := []string{
		"print('hello')\n",
		"#!/usr/bin/env bash\nset -e\necho \"$1\"\n",
		"no trailing newline",
		"",
		"line one\n\n\nline four\n",
		strings.Repeat("x = 1\n", 500),
	}
	for _, in := range inputs {
		if got := ExtractScript(WrapMarkdown(in)); got != in {
			t.Errorf("round trip changed content:\n got:  %q\n want: %q", got, in)
		}
	}
}

func TestCrashReport(t *testing.T) {
	r := CrashReport{ExitStatus: 1, Output: "Traceback ... NameError: invalid syntax"}
	want := "Script exited with non-zero status: 1\nTraceback ... NameError: invalid syntax"
	if got := r.String(); got != want {
		t.Errorf("Unexpected crash report:\n got:  %q\n want: %q", got, want)
	}

	r = CrashReport{ExitStatus: 0, Markers: []string{"error"}, Output: "error: nope\n"}
	if got := r.String(); !strings.HasPrefix(got, "Script exited with status 0 but reported failure markers: error\n") {
		t.Errorf("Unexpected crash report for zero exit: %q", got)
	}
}

func TestBuildRepairPrompt(t *testing.T) {
	p := buildRepairPrompt(Request{ScriptPath: "/tmp/foo.py", Script: "print(x)\n", CrashLog: "NameError"})
	for _, want := range []string{"FILE NAME: foo.py", "```\nprint(x)\n```", "CRASH LOG:\nNameError"} {
		if !strings.Contains(p, want) {
			t.Errorf("Prompt is missing %q", want)
		}
	}
}
