package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"time"
)

// ErrSpawn marks a command that could not be started at all. Such runs
// produce no crash log and are never handed to the repair loop.
var ErrSpawn = errors.New("could not start script")

const (
	defaultCols       = 80
	defaultRows       = 30
	defaultDrainGrace = 2 * time.Second
)

// Command is the vector re-used for every attempt of a session.
type Command struct {
	Interpreter string
	Script      string
	Args        []string
}

// Argv is [interpreter, script, args...], or [script, args...] when the
// script runs on its own.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+2)
	if c.Interpreter != "" {
		argv = append(argv, c.Interpreter)
	}
	argv = append(argv, c.Script)
	return append(argv, c.Args...)
}

// Attempt is one execution. It is classified and then discarded.
type Attempt struct {
	Command    []string
	Output     *Capture
	ExitStatus int
	Start      time.Time
	End        time.Time
}

func (a *Attempt) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

type Runner interface {
	Run(ctx context.Context, cmd Command) (*Attempt, error)
}

// Options are shared by every Runner implementation.
type Options struct {
	// Stdout receives the live output. Defaults to os.Stdout.
	Stdout io.Writer
	// Stdin is forwarded to the child when it is a terminal. Defaults to os.Stdin.
	Stdin *os.File
	// DrainGrace bounds how long output is drained after the child exits.
	DrainGrace time.Duration
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) drainGrace() time.Duration {
	if o.DrainGrace <= 0 {
		return defaultDrainGrace
	}
	return o.DrainGrace
}

// New returns the platform's preferred runner: a pseudo-terminal where the
// OS supports one, plain pipes otherwise.
func New(opts Options) Runner {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return newDefault(opts)
}
