package repair

import (
	"fmt"
	"strings"
)

// CrashReport is built only for failed attempts and sent once.
type CrashReport struct {
	ExitStatus int
	Markers    []string
	Output     string
}

func (r CrashReport) String() string {
	var sb strings.Builder
	if r.ExitStatus != 0 {
		sb.WriteString(fmt.Sprintf("Script exited with non-zero status: %d\n", r.ExitStatus))
	} else {
		sb.WriteString(fmt.Sprintf("Script exited with status 0 but reported failure markers: %s\n", strings.Join(r.Markers, ", ")))
	}
	sb.WriteString(r.Output)
	return sb.String()
}
