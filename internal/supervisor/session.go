package supervisor

import (
	"github.com/google/uuid"

	"evolve/internal/executor"
	"evolve/internal/logger"
)

type State string

const (
	StateRun      State = "RUN"
	StateClassify State = "CLASSIFY"
	StateRepair   State = "REPAIR"
	StateRewrite  State = "REWRITE"
	StateDone     State = "DONE"
	StateAbort    State = "ABORT"
)

// Session is the loop state for one invocation. Only the supervisor touches it.
type Session struct {
	ID            string
	Command       executor.Command
	State         State
	Attempts      int
	Rounds        int
	MaxRounds     int
	BackupCreated bool
}

func newSession(cmd executor.Command, maxRounds int) *Session {
	return &Session{
		ID:        uuid.New().String()[:8],
		Command:   cmd,
		State:     StateRun,
		MaxRounds: maxRounds,
	}
}

func (s *Session) transition(to State) {
	logger.Log.Printf("[Session %s] %s -> %s", s.ID, s.State, to)
	s.State = to
}

// exhausted reports whether another repair round would exceed the cap. Zero means no cap.
func (s *Session) exhausted() bool {
	return s.MaxRounds > 0 && s.Rounds >= s.MaxRounds
}
