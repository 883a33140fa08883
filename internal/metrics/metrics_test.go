package metrics

import (
	"testing"
	"time"
)

func TestFinalize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := AttemptMetrics{Start: start, End: start.Add(1500 * time.Millisecond)}
	a.Finalize()
	if a.DurationMs != 1500 {
		t.Errorf("Expected 1500 ms, got %d", a.DurationMs)
	}

	s := SessionMetrics{Start: start, End: start.Add(3 * time.Second)}
	if s.Last() != nil {
		t.Error("Expected no last attempt on an empty session")
	}
	s.Attempts = append(s.Attempts, a, AttemptMetrics{Attempt: 2})
	s.Finalize()
	if s.DurationMs != 3000 {
		t.Errorf("Expected 3000 ms, got %d", s.DurationMs)
	}
	if s.Last().Attempt != 2 {
		t.Errorf("Expected last attempt 2, got %d", s.Last().Attempt)
	}
}
