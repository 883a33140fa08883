package supervisor

import (
	"encoding/json"
	"fmt"

	"evolve/internal/metrics"
	"evolve/internal/script"
)

type Result struct {
	SessionID  string                  `json:"session_id"`
	Script     string                  `json:"script"`
	Command    []string                `json:"command"`
	State      State                   `json:"state"`
	Attempts   int                     `json:"attempts"`
	Rounds     int                     `json:"rounds"`
	BackupPath string                  `json:"backup_path,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Metrics    *metrics.SessionMetrics `json:"metrics,omitempty"`
}

func (r *Result) Succeeded() bool {
	return r.State == StateDone
}

// WriteReport stores the result as indented JSON at path.
func (r *Result) WriteReport(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}
	if err := script.WriteFileAtomic(path, string(b)+"\n"); err != nil {
		return fmt.Errorf("could not write report '%s': %w", path, err)
	}
	return nil
}
