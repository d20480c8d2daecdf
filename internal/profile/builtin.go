package profile

// Conservative is precise and careful, with strong error checking and a
// low tolerance for risk.
var Conservative = Profile{
	Name:                    "conservative",
	Description:             "Precise and careful execution with strong error checking",
	CreativityVsPrecision:   0.1,
	SpeedVsAccuracy:         0.2,
	RiskTolerance:           0.1,
	MaxToolsPerStep:         2,
	ToolRetryLimit:          3,
	AvoidSlowProviders:      true,
	CostSensitivity:         0.5,
	MaxRetries:              2,
	GiveUpAfterErrors:       3,
	EnableSkillSystem:       true,
	EnableCommands:          true,
	AutoPauseOnError:        true,
	CollaborationMode:       Independent,
	TaskDecomposition:       false,
}

// Creative is fast and risk-taking, leaning heavily on tools and skills.
var Creative = Profile{
	Name:                    "creative",
	Description:             "Creative and fast execution with risk-taking approach",
	CreativityVsPrecision:   0.9,
	SpeedVsAccuracy:         0.9,
	RiskTolerance:           0.9,
	PreferToolsOverModel:    true,
	MaxToolsPerStep:         5,
	ToolRetryLimit:          1,
	AvoidSlowProviders:      true,
	CostSensitivity:         0.5,
	AggressiveErrorRecovery: true,
	MaxRetries:              5,
	GiveUpAfterErrors:       10,
	EnableSkillSystem:       true,
	PreferSkillsOverTools:   true,
	EnableCommands:          true,
	CollaborationMode:       Cooperative,
	TaskDecomposition:       true,
}

// Balanced is the default middle-of-the-road profile.
var Balanced = Profile{
	Name:                  "balanced",
	Description:           "Balanced approach with reasonable trade-offs",
	CreativityVsPrecision: 0.5,
	SpeedVsAccuracy:       0.5,
	RiskTolerance:         0.5,
	MaxToolsPerStep:       3,
	ToolRetryLimit:        2,
	AvoidSlowProviders:    true,
	CostSensitivity:       0.5,
	MaxRetries:            3,
	GiveUpAfterErrors:     5,
	EnableSkillSystem:     true,
	EnableCommands:        true,
	CollaborationMode:     Independent,
	TaskDecomposition:     true,
}

// Minimal is a safe profile for testing and constrained environments.
var Minimal = Profile{
	Name:                  "minimal",
	Description:           "Minimal, safe execution with basic features",
	CreativityVsPrecision: 0.3,
	SpeedVsAccuracy:       0.3,
	RiskTolerance:         0.2,
	MaxToolsPerStep:       1,
	ToolRetryLimit:        1,
	AvoidSlowProviders:    true,
	CostSensitivity:       0.5,
	MaxRetries:            1,
	GiveUpAfterErrors:     2,
	AutoPauseOnError:      true,
	CollaborationMode:     Independent,
}

// Autonomous is highly autonomous with aggressive error recovery, meant
// for production unattended runs.
var Autonomous = Profile{
	Name:                    "autonomous",
	Description:             "Highly autonomous with aggressive error recovery",
	CreativityVsPrecision:   0.7,
	SpeedVsAccuracy:         0.6,
	RiskTolerance:           0.7,
	PreferToolsOverModel:    true,
	MaxToolsPerStep:         4,
	ToolRetryLimit:          3,
	AvoidSlowProviders:      true,
	CostSensitivity:         0.5,
	AggressiveErrorRecovery: true,
	MaxRetries:              4,
	GiveUpAfterErrors:       8,
	EnableSkillSystem:       true,
	PreferSkillsOverTools:   true,
	EnableCommands:          true,
	CollaborationMode:       Cooperative,
	TaskDecomposition:       true,
}

// builtinProfiles is keyed by name, matching BUILT_IN_PROFILES.
var builtinProfiles = map[string]Profile{
	Conservative.Name: Conservative,
	Creative.Name:      Creative,
	Balanced.Name:      Balanced,
	Minimal.Name:       Minimal,
	Autonomous.Name:    Autonomous,
}

// Builtin returns the named built-in profile, falling back to Balanced
// for an unknown name, matching get_profile.
func Builtin(name string) Profile {
	if p, ok := builtinProfiles[name]; ok {
		return p
	}
	return Balanced
}

// BuiltinNames lists every built-in profile name.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	return names
}
