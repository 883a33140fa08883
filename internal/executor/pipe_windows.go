//go:build windows

package executor

import "os"

// Windows has no pty semantics matching unix; the child runs on pipes.
func newDefault(opts Options) Runner {
	return NewPipeRunner(opts)
}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}
