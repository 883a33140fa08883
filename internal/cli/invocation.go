package cli

import (
	"errors"
	"fmt"

	"evolve/internal/executor"
	"evolve/internal/script"
)

var ErrInvocation = errors.New("invalid invocation")

// ParseInvocation resolves [interpreter] <script> [args...]. A first
// argument with an execute bit is the script itself; otherwise it names
// the interpreter and the script follows it.
func ParseInvocation(args []string) (executor.Command, *script.Script, error) {
	if len(args) < 1 {
		return executor.Command{}, nil, fmt.Errorf("%w: missing script path", ErrInvocation)
	}

	var cmd executor.Command
	if script.IsExecutable(args[0]) {
		cmd = executor.Command{Script: args[0], Args: args[1:]}
	} else {
		if len(args) < 2 {
			return executor.Command{}, nil, fmt.Errorf("%w: '%s' is not executable and no script path follows it", ErrInvocation, args[0])
		}
		cmd = executor.Command{Interpreter: args[0], Script: args[1], Args: args[2:]}
	}

	s, err := script.Open(cmd.Script)
	if err != nil {
		return executor.Command{}, nil, fmt.Errorf("%w: %w", ErrInvocation, err)
	}
	cmd.Args = append([]string(nil), cmd.Args...)
	return cmd, s, nil
}
