package metrics

import "time"

type AttemptMetrics struct {
	Attempt    int       `json:"attempt"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DurationMs int64     `json:"duration_ms"`
	ExitStatus int       `json:"exit_status"`
	Failed     bool      `json:"failed"`
	Markers    []string  `json:"markers,omitempty"`
	Repaired   bool      `json:"repaired"`
	RepairMs   int64     `json:"repair_ms,omitempty"`
}

type SessionMetrics struct {
	SessionID  string           `json:"session_id"`
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	DurationMs int64            `json:"duration_ms"`
	Succeeded  bool             `json:"succeeded"`
	Rounds     int              `json:"rounds"`
	Attempts   []AttemptMetrics `json:"attempts"`
}

// Compute derived fields for an attempt.
func (a *AttemptMetrics) Finalize() {
	a.DurationMs = a.End.Sub(a.Start).Milliseconds()
}

func (s *SessionMetrics) Finalize() {
	s.DurationMs = s.End.Sub(s.Start).Milliseconds()
}

// Last returns the most recent attempt, or nil before the first one.
func (s *SessionMetrics) Last() *AttemptMetrics {
	if len(s.Attempts) == 0 {
		return nil
	}
	return &s.Attempts[len(s.Attempts)-1]
}
