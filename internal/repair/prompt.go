package repair

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Prompt for the LLM backends. The answer must come back fenced so that
// ExtractScript can find it.
func buildRepairPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("You are an expert software engineer. A script crashed. Fix it.\n")
	sb.WriteString("Respond ONLY with the complete corrected script inside a single markdown code block. No explanations.\n\n")
	if req.ScriptPath != "" {
		sb.WriteString(fmt.Sprintf("FILE NAME: %s\n\n", filepath.Base(req.ScriptPath)))
	}
	sb.WriteString("SCRIPT:\n")
	sb.WriteString(WrapMarkdown(req.Script))
	sb.WriteString("\n\nCRASH LOG:\n")
	sb.WriteString(req.CrashLog)
	sb.WriteString("\n\nRULES:\n")
	sb.WriteString("- Keep the script's purpose, interface and arguments unchanged.\n")
	sb.WriteString("- Keep an existing shebang line.\n")
	sb.WriteString("- Do not print the words \"error\" or \"invalid\" on success.\n\n")
	sb.WriteString("Corrected script:\n")

	return sb.String()
}
