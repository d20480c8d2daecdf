package iris

import (
	"strconv"
	"strings"
)

// PlanParser turns a model's free-text plan response into structured
// edits. The default heuristicPlanParser mirrors the original agent's
// keyword matching; callers may supply a different PlanParser (e.g. one
// that expects the model to emit a fenced JSON block) without changing
// AgentLoop's control flow.
type PlanParser func(response string, anchorFile string) []IntendedEdit

// heuristicPlanParser is a direct port of the original agent's
// _parse_plan_response: it looks for a handful of keywords and emits
// a fixed edit per match, falling back to one default edit.
func heuristicPlanParser(response, anchorFile string) []IntendedEdit {
	lower := strings.ToLower(response)
	var edits []IntendedEdit

	if strings.Contains(lower, "agent") && strings.Contains(lower, "loop") {
		edits = append(edits, IntendedEdit{
			File:   anchorFile,
			Range:  [2]int{1, 50},
			Reason: "add agent loop implementation",
		})
	}
	if strings.Contains(lower, "enforcement") {
		edits = append(edits, IntendedEdit{
			File:   anchorFile,
			Range:  [2]int{100, 150},
			Reason: "implement enforcement rules",
		})
	}

	if len(edits) == 0 {
		edits = append(edits, IntendedEdit{
			File:   anchorFile,
			Range:  [2]int{1, 10},
			Reason: "implement requested functionality",
		})
	}
	return edits
}

// generateEditContent produces the literal replacement text for an
// edit. Like the original agent, this is a placeholder for what would
// otherwise be a second model call asking for the concrete code; the
// enforcement and checkpoint/rollback machinery around it is what
// this package actually exists to exercise.
func generateEditContent(edit IntendedEdit, taskGoal string) string {
	return "// modified for: " + taskGoal + "\n" +
		"// lines " + itoaRange(edit.Range) + "\n" +
		"// " + edit.Reason + "\n"
}

func itoaRange(r [2]int) string {
	return strconv.Itoa(r[0]) + "-" + strconv.Itoa(r[1])
}
