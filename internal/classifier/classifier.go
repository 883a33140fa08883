package classifier

import (
	"fmt"
	"strings"
)

// DefaultMarkers are always checked, whatever extra markers are configured.
var DefaultMarkers = []string{"error", "invalid"}

type Verdict struct {
	Failed     bool     `json:"failed"`
	ExitStatus int      `json:"exit_status"`
	Markers    []string `json:"markers,omitempty"`
}

func (v Verdict) Reason() string {
	if !v.Failed {
		return "succeeded"
	}
	var parts []string
	if v.ExitStatus != 0 {
		parts = append(parts, fmt.Sprintf("exit status %d", v.ExitStatus))
	}
	if len(v.Markers) > 0 {
		parts = append(parts, "output contains "+strings.Join(quoteAll(v.Markers), ", "))
	}
	return strings.Join(parts, "; ")
}

type Classifier struct {
	markers []string
}

// New returns a classifier checking DefaultMarkers plus extra. Markers are
// matched case-insensitively; blanks and duplicates are dropped.
func New(extra ...string) *Classifier {
	seen := map[string]struct{}{}
	var markers []string
	for _, m := range append(append([]string{}, DefaultMarkers...), extra...) {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		markers = append(markers, m)
	}
	return &Classifier{markers: markers}
}

func (c *Classifier) Markers() []string {
	return append([]string(nil), c.markers...)
}

// Classify fails a run on a non-zero exit status or on any marker in its output.
func (c *Classifier) Classify(exitStatus int, output string) Verdict {
	v := Verdict{ExitStatus: exitStatus}
	lower := strings.ToLower(output)
	for _, m := range c.markers {
		if strings.Contains(lower, m) {
			v.Markers = append(v.Markers, m)
		}
	}
	v.Failed = exitStatus != 0 || len(v.Markers) > 0
	return v
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
