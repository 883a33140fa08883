package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// PipeRunner runs the child on plain pipes. The child does not see a
// terminal, so interactive programs may behave differently than under PTYRunner.
type PipeRunner struct {
	opts Options
}

func NewPipeRunner(opts Options) *PipeRunner {
	return &PipeRunner{opts: opts}
}

func (r *PipeRunner) Run(ctx context.Context, command Command) (*Attempt, error) {
	argv := command.Argv()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// Orphaned grandchildren may keep the pipes open after the child exits.
	cmd.WaitDelay = r.opts.drainGrace()

	capture := &Capture{}
	w := &tee{capture: capture, echo: r.opts.stdout()}
	cmd.Stdout = w
	cmd.Stderr = w
	if r.opts.Stdin != nil {
		cmd.Stdin = r.opts.Stdin
	} else {
		cmd.Stdin = os.Stdin
	}

	attempt := &Attempt{Command: argv, Output: capture, Start: time.Now()}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, argv[0], err)
	}

	waitErr := cmd.Wait()
	attempt.End = time.Now()
	if cmd.ProcessState == nil {
		return nil, fmt.Errorf("wait for %s: %w", argv[0], waitErr)
	}
	attempt.ExitStatus = exitStatus(cmd.ProcessState)
	return attempt, nil
}
