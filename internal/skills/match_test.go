package skills

import "testing"

func TestCanHandleTaskMatchesTriggerPattern(t *testing.T) {
	s := &Skill{Name: "code-review", TriggerPatterns: []string{"review the pull request", "code review"}}

	if !s.CanHandleTask("please do a code review of this diff") {
		t.Fatal("expected match on trigger pattern substring")
	}
	if s.CanHandleTask("deploy to staging") {
		t.Fatal("expected no match for unrelated goal")
	}
}

func TestCanHandleTaskWithNoPatternsNeverMatches(t *testing.T) {
	s := &Skill{Name: "bare"}
	if s.CanHandleTask("anything at all") {
		t.Fatal("expected no auto-match with no trigger patterns")
	}
}

func TestValidateRequirementsChecksAllToolsPresent(t *testing.T) {
	s := &Skill{Name: "debugger", RequiredTools: []string{"shell", "read_file"}}

	if s.ValidateRequirements([]string{"shell"}) {
		t.Fatal("expected failure with a missing tool")
	}
	if !s.ValidateRequirements([]string{"shell", "read_file", "write_file"}) {
		t.Fatal("expected success once all required tools are present")
	}
}
