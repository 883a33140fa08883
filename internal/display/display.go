package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const maxPreviewLength = 2000

var (
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func Info(format string, a ...any) string {
	return cyan("[evolve] ") + fmt.Sprintf(format, a...)
}

func Success(format string, a ...any) string {
	return green("[evolve] ") + fmt.Sprintf(format, a...)
}

func Warn(format string, a ...any) string {
	return yellow("[evolve] ") + fmt.Sprintf(format, a...)
}

func Fail(format string, a ...any) string {
	return red("[evolve] ") + fmt.Sprintf(format, a...)
}

func FormatCrash(crashLog string) string {
	var sb strings.Builder
	sb.WriteString(red(bold("Error: Script crashed with the following error:")))
	sb.WriteString("\n")
	sb.WriteString(crashLog)
	if !strings.HasSuffix(crashLog, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

// stdout preview (truncated)
func FormatCorrectedScript(script string) string {
	return formatScriptInternal(script, maxPreviewLength)
}

// full script (no truncation), used for logs
func FormatCorrectedScriptFull(script string) string {
	return formatScriptInternal(script, -1)
}

func formatScriptInternal(script string, limit int) string {
	var sb strings.Builder
	sb.WriteString("Corrected Script:\n")
	sb.WriteString("--------------------------------------------------\n")
	sb.WriteString(truncate(script, limit))
	if !strings.HasSuffix(script, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("--------------------------------------------------")
	return sb.String()
}

// OneLine keeps a value on a single log line (limit < 0 means no limit)
func OneLine(s string, limit int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return truncate(s, limit)
}

func truncate(s string, limit int) string {
	if limit >= 0 && len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
