// Package profile implements agent behavioral profiles: the numeric and
// boolean knobs that shape how a worker trades off speed vs accuracy,
// how aggressively it retries, and whether it prefers tools, skills or
// raw model calls.
package profile

import "fmt"

// CollaborationMode controls how a worker treats other concurrently
// running workers.
type CollaborationMode string

const (
	Independent CollaborationMode = "independent"
	Cooperative CollaborationMode = "cooperative"
	Competitive CollaborationMode = "competitive"
)

// Profile is a named, validated bundle of behavioral preferences applied
// to a worker's decision→action loop.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	CreativityVsPrecision float64 `json:"creativity_vs_precision"`
	SpeedVsAccuracy       float64 `json:"speed_vs_accuracy"`
	RiskTolerance         float64 `json:"risk_tolerance"`

	PreferToolsOverModel bool `json:"prefer_tools_over_model"`
	MaxToolsPerStep      int  `json:"max_tools_per_step"`
	ToolRetryLimit       int  `json:"tool_retry_limit"`

	PreferredProviders []string `json:"preferred_providers,omitempty"`
	AvoidSlowProviders bool     `json:"avoid_slow_providers"`
	CostSensitivity    float64  `json:"cost_sensitivity"`

	AggressiveErrorRecovery bool `json:"aggressive_error_recovery"`
	MaxRetries              int  `json:"max_retries"`
	GiveUpAfterErrors       int  `json:"give_up_after_errors"`

	EnableSkillSystem     bool `json:"enable_skill_system"`
	PreferSkillsOverTools bool `json:"prefer_skills_over_tools"`

	EnableCommands   bool `json:"enable_commands"`
	AutoPauseOnError bool `json:"auto_pause_on_errors"`

	CollaborationMode CollaborationMode `json:"collaboration_mode"`
	TaskDecomposition bool              `json:"task_decomposition"`
}

// Validate checks every bounded field, matching AgentProfile.__post_init__.
func (p Profile) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"creativity_vs_precision", p.CreativityVsPrecision},
		{"speed_vs_accuracy", p.SpeedVsAccuracy},
		{"risk_tolerance", p.RiskTolerance},
		{"cost_sensitivity", p.CostSensitivity},
	} {
		if f.v < 0.0 || f.v > 1.0 {
			return fmt.Errorf("%s must be between 0.0 and 1.0", f.name)
		}
	}
	switch p.CollaborationMode {
	case Independent, Cooperative, Competitive:
	default:
		return fmt.Errorf("collaboration_mode must be 'independent', 'cooperative', or 'competitive'")
	}
	return nil
}

// ProviderMetrics is the subset of a provider's observed behavior that
// feeds GetModelSelectionScore.
type ProviderMetrics struct {
	CostEstimate  float64
	AvgLatencyMS  float64
	ErrorRate     float64
}

// GetModelSelectionScore scores a provider for routing purposes under
// this profile's preferences, matching get_model_selection_score.
func (p Profile) GetModelSelectionScore(providerName string, metrics ProviderMetrics) float64 {
	score := 0.0

	for _, preferred := range p.PreferredProviders {
		if preferred == providerName {
			score += 0.5
			break
		}
	}

	if p.CostSensitivity > 0.7 && metrics.CostEstimate > 0.01 {
		score -= 0.3
	}

	if p.SpeedVsAccuracy > 0.7 && metrics.AvgLatencyMS > 2000 {
		score -= 0.2
	}

	if p.RiskTolerance < 0.3 && metrics.ErrorRate > 0.1 {
		score -= 0.4
	}

	return score
}

// ShouldRetryOnError decides whether a worker should retry after
// errorCount consecutive failures, matching should_retry_on_error.
func (p Profile) ShouldRetryOnError(errorCount int) bool {
	if errorCount >= p.MaxRetries {
		return false
	}
	if p.AggressiveErrorRecovery {
		return errorCount < p.GiveUpAfterErrors
	}
	limit := 2
	if p.MaxRetries < limit {
		limit = p.MaxRetries
	}
	return errorCount < limit
}

// ToolUsagePreference is the result of GetToolUsagePreference.
type ToolUsagePreference string

const (
	PreferTools ToolUsagePreference = "tools"
	PreferSkills ToolUsagePreference = "skills"
	PreferModel ToolUsagePreference = "model"
)

// GetToolUsagePreference picks the preferred approach given the tools
// currently available, matching get_tool_usage_preference.
func (p Profile) GetToolUsagePreference(availableTools []string) ToolUsagePreference {
	if p.PreferToolsOverModel && len(availableTools) > 0 {
		return PreferTools
	}
	if p.PreferSkillsOverTools && p.EnableSkillSystem {
		return PreferSkills
	}
	return PreferModel
}
