//go:build !windows

package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/muesli/cancelreader"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// PTYRunner attaches the child to a pseudo-terminal so it behaves as it
// would when run by hand, while every byte it prints is captured.
type PTYRunner struct {
	opts Options
}

func NewPTYRunner(opts Options) *PTYRunner {
	return &PTYRunner{opts: opts}
}

func newDefault(opts Options) Runner {
	return NewPTYRunner(opts)
}

func (r *PTYRunner) interactive() bool {
	return r.opts.Stdin != nil && term.IsTerminal(int(r.opts.Stdin.Fd()))
}

func (r *PTYRunner) Run(ctx context.Context, command Command) (*Attempt, error) {
	argv := command.Argv()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	interactive := r.interactive()

	var (
		ptmx *os.File
		err  error
	)
	if interactive {
		ptmx, err = pty.Start(cmd)
		if err == nil {
			_ = pty.InheritSize(r.opts.Stdin, ptmx)
		}
	} else {
		ptmx, err = pty.StartWithSize(cmd, &pty.Winsize{Cols: defaultCols, Rows: defaultRows})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, argv[0], err)
	}
	defer ptmx.Close()

	capture := &Capture{}
	attempt := &Attempt{Command: argv, Output: capture, Start: time.Now()}

	if interactive {
		fd := int(r.opts.Stdin.Fd())
		if state, err := term.MakeRaw(fd); err == nil {
			defer func() { _ = term.Restore(fd, state) }()
		}
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return drain(ptmx, &tee{capture: capture, echo: r.opts.stdout()})
	})

	var stdin cancelreader.CancelReader
	if interactive {
		if cr, err := cancelreader.NewReader(r.opts.Stdin); err == nil {
			stdin = cr
			g.Go(func() error {
				// Ends on cancel or when the pty goes away; neither is an error.
				_, _ = io.Copy(ptmx, cr)
				return nil
			})
		}
	}

	waitErr := cmd.Wait()
	attempt.End = time.Now()
	if stdin != nil {
		stdin.Cancel()
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	var drainErr error
	select {
	case drainErr = <-done:
	case <-time.After(r.opts.drainGrace()):
		// A background grandchild still holds the terminal open.
		_ = ptmx.Close()
		drainErr = <-done
	}
	if stdin != nil {
		_ = stdin.Close()
	}

	if cmd.ProcessState == nil {
		return nil, fmt.Errorf("wait for %s: %w", argv[0], waitErr)
	}
	if drainErr != nil {
		return nil, fmt.Errorf("read output of %s: %w", argv[0], drainErr)
	}
	attempt.ExitStatus = exitStatus(cmd.ProcessState)
	return attempt, nil
}

// drain copies until the pty reports the child side is gone. Linux signals
// that with EIO rather than EOF.
func drain(src io.Reader, dst io.Writer) error {
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
