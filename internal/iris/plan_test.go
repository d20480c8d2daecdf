package iris

import "testing"

func TestHeuristicPlanParserMatchesAgentLoopKeywords(t *testing.T) {
	edits := heuristicPlanParser("We should add an agent loop for this.", "x.go")
	if len(edits) != 1 || edits[0].Reason != "add agent loop implementation" {
		t.Fatalf("unexpected edits: %+v", edits)
	}
}

func TestHeuristicPlanParserMatchesEnforcementKeyword(t *testing.T) {
	edits := heuristicPlanParser("Implement enforcement checks here.", "x.go")
	if len(edits) != 1 || edits[0].Reason != "implement enforcement rules" {
		t.Fatalf("unexpected edits: %+v", edits)
	}
}

func TestHeuristicPlanParserMatchesBothKeywordGroups(t *testing.T) {
	edits := heuristicPlanParser("The agent loop needs enforcement.", "x.go")
	if len(edits) != 2 {
		t.Fatalf("expected 2 edits, got %d: %+v", len(edits), edits)
	}
}

func TestHeuristicPlanParserFallsBackWithoutKeywords(t *testing.T) {
	edits := heuristicPlanParser("Do something unrelated.", "x.go")
	if len(edits) != 1 || edits[0].Reason != "implement requested functionality" {
		t.Fatalf("unexpected fallback edits: %+v", edits)
	}
}
