package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"evolve/internal/classifier"
	"evolve/internal/display"
	"evolve/internal/executor"
	"evolve/internal/interpreter"
	"evolve/internal/logger"
	"evolve/internal/metrics"
	"evolve/internal/repair"
	"evolve/internal/script"
)

var (
	ErrMaxRounds = errors.New("maximum repair rounds reached")
	ErrDeclined  = errors.New("corrected script declined")
)

// ConfirmFunc is asked before a corrected script is written.
type ConfirmFunc func(corrected string) (bool, error)

type Supervisor struct {
	Runner     executor.Runner
	Classifier *classifier.Classifier
	Repairer   repair.Repairer
	Table      *interpreter.Registry
	Script     *script.Script
	Command    executor.Command
	Confirm    ConfirmFunc

	// MaxRounds caps repair rounds. Zero keeps retrying until a run succeeds or a repair fails.
	MaxRounds     int
	RunTimeout    time.Duration
	RepairTimeout time.Duration

	Out io.Writer
}

func (s *Supervisor) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func (s *Supervisor) table() *interpreter.Registry {
	if s.Table == nil {
		return interpreter.Default()
	}
	return s.Table
}

// Run drives RUN -> CLASSIFY -> REPAIR -> REWRITE until the script succeeds
// or the session aborts. The result is always returned, also alongside an error.
func (s *Supervisor) Run(ctx context.Context) (*Result, error) {
	sess := newSession(s.Command, s.MaxRounds)
	sm := &metrics.SessionMetrics{SessionID: sess.ID, Start: time.Now()}
	logger.Log.Printf("[Session %s] Supervising %q (max rounds: %d)", sess.ID, s.Command.Argv(), s.MaxRounds)

	err := s.loop(ctx, sess, sm)
	if err != nil {
		sess.transition(StateAbort)
		logger.Log.Printf("[Session %s] ABORTED after %d attempt(s): %v", sess.ID, sess.Attempts, err)
	} else {
		logger.Log.Printf("[Session %s] DONE after %d attempt(s), %d repair round(s)", sess.ID, sess.Attempts, sess.Rounds)
	}

	sm.End = time.Now()
	sm.Rounds = sess.Rounds
	sm.Succeeded = err == nil
	sm.Finalize()

	res := &Result{
		SessionID: sess.ID,
		Script:    s.Script.Path,
		Command:   s.Command.Argv(),
		State:     sess.State,
		Attempts:  sess.Attempts,
		Rounds:    sess.Rounds,
		Metrics:   sm,
	}
	if sess.BackupCreated {
		res.BackupPath = script.BackupPath(s.Script.Path)
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res, err
}

func (s *Supervisor) loop(ctx context.Context, sess *Session, sm *metrics.SessionMetrics) error {
	var rw *script.Rewriter

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.prepare(sess); err != nil {
			return err
		}
		if rw == nil {
			var err error
			if rw, err = script.NewRewriter(s.Script); err != nil {
				return err
			}
		}

		attempt, err := s.runOnce(ctx, sess)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		sess.transition(StateClassify)
		verdict := s.Classifier.Classify(attempt.ExitStatus, attempt.Output.String())
		am := metrics.AttemptMetrics{
			Attempt:    sess.Attempts,
			Start:      attempt.Start,
			End:        attempt.End,
			ExitStatus: attempt.ExitStatus,
			Failed:     verdict.Failed,
			Markers:    verdict.Markers,
		}
		am.Finalize()
		sm.Attempts = append(sm.Attempts, am)
		logger.Log.Printf("[Session %s] Attempt %d: %s", sess.ID, sess.Attempts, verdict.Reason())

		if !verdict.Failed {
			sess.transition(StateDone)
			fmt.Fprintln(s.out(), display.Success("Script ran successfully."))
			return nil
		}

		report := repair.CrashReport{
			ExitStatus: attempt.ExitStatus,
			Markers:    verdict.Markers,
			Output:     attempt.Output.String(),
		}
		crashLog := report.String()
		fmt.Fprint(s.out(), display.FormatCrash(crashLog))
		logger.Log.Printf("[Session %s] Crash log:\n%s", sess.ID, crashLog)

		if sess.exhausted() {
			fmt.Fprintln(s.out(), display.Warn("Giving up after %d repair round(s).", sess.Rounds))
			return fmt.Errorf("%w: %d", ErrMaxRounds, sess.MaxRounds)
		}

		sess.transition(StateRepair)
		repairStart := time.Now()
		corrected, err := s.repair(ctx, sess, crashLog)
		last := sm.Last()
		last.RepairMs = time.Since(repairStart).Milliseconds()
		if err != nil {
			logger.Log.Printf("[Session %s] Repair failed: %s", sess.ID, display.OneLine(err.Error(), 500))
			fmt.Fprintln(s.out(), display.Fail("Repair failed: %v", err))
			return err
		}
		last.Repaired = true

		fmt.Fprintln(s.out(), display.FormatCorrectedScript(corrected))
		logger.Log.Printf("[Session %s] %s", sess.ID, display.FormatCorrectedScriptFull(corrected))

		if s.Confirm != nil {
			ok, err := s.Confirm(corrected)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(s.out(), display.Warn("Corrected script declined, nothing was written."))
				return ErrDeclined
			}
		}

		sess.transition(StateRewrite)
		outcome, err := rw.Apply(corrected)
		if outcome.BackupCreated {
			sess.BackupCreated = true
			fmt.Fprintln(s.out(), display.Info("Original script backed up as '%s'", outcome.BackupPath))
		}
		if err != nil {
			return err
		}
		sess.Rounds++
		fmt.Fprintln(s.out(), display.Info("Corrected script saved as: %s", s.Script.Path))

		sess.transition(StateRun)
	}
}

// prepare adds a shebang to an executable script that lacks one. The
// corrected scripts get the same treatment on every round.
func (s *Supervisor) prepare(sess *Session) error {
	changed, err := script.EnsureShebang(s.Script, s.table())
	if err != nil {
		return fmt.Errorf("could not add shebang: %w", err)
	}
	if changed {
		logger.Log.Printf("[Session %s] Added shebang to %s", sess.ID, s.Script.Path)
		fmt.Fprintln(s.out(), display.Info("Added shebang line to '%s'", s.Script.Path))
	}
	return nil
}

func (s *Supervisor) runOnce(ctx context.Context, sess *Session) (*executor.Attempt, error) {
	runCtx := ctx
	if s.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.RunTimeout)
		defer cancel()
	}

	sess.Attempts++
	logger.Log.Printf("[Session %s] Attempt %d: running %q", sess.ID, sess.Attempts, sess.Command.Argv())
	attempt, err := s.Runner.Run(runCtx, sess.Command)
	if err != nil {
		return nil, err
	}
	logger.Log.Printf("[Session %s] Attempt %d exited with status %d after %s",
		sess.ID, sess.Attempts, attempt.ExitStatus, attempt.Duration())
	return attempt, nil
}

func (s *Supervisor) repair(ctx context.Context, sess *Session, crashLog string) (string, error) {
	current, err := s.Script.Read()
	if err != nil {
		return "", err
	}

	repairCtx := ctx
	if s.RepairTimeout > 0 {
		var cancel context.CancelFunc
		repairCtx, cancel = context.WithTimeout(ctx, s.RepairTimeout)
		defer cancel()
	}

	fmt.Fprintln(s.out(), display.Info("Getting help..."))
	logger.Log.Printf("[Session %s] Requesting repair from %s", sess.ID, s.Repairer.Name())
	return s.Repairer.Repair(repairCtx, repair.Request{
		ScriptPath: s.Script.Path,
		Script:     current,
		CrashLog:   crashLog,
	})
}
