package profile

import "testing"

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	p := Balanced
	p.RiskTolerance = 1.5
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for out-of-range risk tolerance")
	}
}

func TestValidateRejectsUnknownCollaborationMode(t *testing.T) {
	p := Balanced
	p.CollaborationMode = "chaotic"
	if err := p.Validate(); err == nil {
		t.Fatal("expected validation error for unknown collaboration mode")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Balanced.Validate(); err != nil {
		t.Fatalf("expected balanced profile to validate, got %v", err)
	}
}

func TestGetModelSelectionScorePrefersListedProvider(t *testing.T) {
	p := Balanced
	p.PreferredProviders = []string{"anthropic"}
	score := p.GetModelSelectionScore("anthropic", ProviderMetrics{})
	if score <= 0 {
		t.Fatalf("expected positive score for preferred provider, got %f", score)
	}
}

func TestGetModelSelectionScorePenalizesSlowUnderSpeedPreference(t *testing.T) {
	p := Balanced
	p.SpeedVsAccuracy = 0.9
	score := p.GetModelSelectionScore("slow", ProviderMetrics{AvgLatencyMS: 5000})
	if score >= 0 {
		t.Fatalf("expected negative score for slow provider under speed preference, got %f", score)
	}
}

func TestShouldRetryOnErrorRespectsMaxRetries(t *testing.T) {
	p := Balanced
	p.MaxRetries = 3
	if p.ShouldRetryOnError(3) {
		t.Fatal("expected no retry once error count reaches max_retries")
	}
	if !p.ShouldRetryOnError(1) {
		t.Fatal("expected retry below max_retries")
	}
}

func TestShouldRetryOnErrorAggressiveRecoveryUsesGiveUpThreshold(t *testing.T) {
	p := Creative // aggressive_error_recovery=true, give_up_after_errors=10, max_retries=5
	if !p.ShouldRetryOnError(4) {
		t.Fatal("expected aggressive profile to keep retrying below give_up threshold")
	}
}

func TestGetToolUsagePreference(t *testing.T) {
	tools := Balanced
	tools.PreferToolsOverModel = true
	if got := tools.GetToolUsagePreference([]string{"shell"}); got != PreferTools {
		t.Fatalf("expected tools preference, got %s", got)
	}

	skills := Balanced
	skills.PreferSkillsOverTools = true
	skills.EnableSkillSystem = true
	if got := skills.GetToolUsagePreference(nil); got != PreferSkills {
		t.Fatalf("expected skills preference, got %s", got)
	}

	if got := Balanced.GetToolUsagePreference([]string{"shell"}); got != PreferModel {
		t.Fatalf("expected model preference by default, got %s", got)
	}
}
