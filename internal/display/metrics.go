package display

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"evolve/internal/metrics"
)

func FormatSessionMetrics(sm *metrics.SessionMetrics) string {
	if sm == nil {
		return "No metrics available."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session %s: %d ms, %d repair round(s), success=%v\n",
		sm.SessionID, sm.DurationMs, sm.Rounds, sm.Succeeded))
	if len(sm.Attempts) == 0 {
		return sb.String()
	}

	table := tablewriter.NewWriter(&sb)
	table.Header("Attempt", "Exit", "Verdict", "Markers", "Run ms", "Repair ms")
	for _, a := range sm.Attempts {
		verdict := "ok"
		if a.Failed {
			verdict = "failed"
		}
		repair := "-"
		if a.Repaired {
			repair = fmt.Sprintf("%d", a.RepairMs)
		}
		table.Append([]string{
			fmt.Sprintf("%d", a.Attempt),
			fmt.Sprintf("%d", a.ExitStatus),
			verdict,
			strings.Join(a.Markers, ","),
			fmt.Sprintf("%d", a.DurationMs),
			repair,
		})
	}
	table.Render()
	return sb.String()
}
