package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

var envTemplateRe = regexp.MustCompile(`\$\{(\w+)\}`)

// Load reads a JSON config file, expands ${VAR} templates against the
// process environment, unmarshals it into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := expandEnvTemplates(string(data))

	var cfg Config
	if err := json.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// expandEnvTemplates replaces ${VAR} with the environment variable value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields with sensible defaults,
// matching the constants carried by the original Python agent.
func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = DataPath()
	}
	if cfg.Models == nil {
		cfg.Models = map[string]ProviderConfig{}
	}

	if cfg.Sandbox.MaxCPUTime == 0 {
		cfg.Sandbox.MaxCPUTime = 30
	}
	if cfg.Sandbox.MaxMemoryMB == 0 {
		cfg.Sandbox.MaxMemoryMB = 1024
	}
	if cfg.Sandbox.MaxProcesses == 0 {
		cfg.Sandbox.MaxProcesses = 100
	}
	if cfg.Sandbox.MaxOpenFiles == 0 {
		cfg.Sandbox.MaxOpenFiles = 1024
	}
	if cfg.Sandbox.CommandTimeout == 0 {
		cfg.Sandbox.CommandTimeout = 30
	}

	if cfg.Supervisor.MaxWorkers == 0 {
		cfg.Supervisor.MaxWorkers = 3
	}
	if cfg.Supervisor.MaxStepsDefault == 0 {
		cfg.Supervisor.MaxStepsDefault = 10
	}

	if cfg.IRIS.JournalMax == 0 {
		cfg.IRIS.JournalMax = 500
	}
	if cfg.IRIS.CompactAfter == 0 {
		cfg.IRIS.CompactAfter = 200
	}

	if cfg.Node.ListenHost == "" {
		cfg.Node.ListenHost = "127.0.0.1"
	}
	if cfg.Node.ListenPort == 0 {
		cfg.Node.ListenPort = 18421
	}

	if cfg.Log.Level == "" {
		if v := os.Getenv("IRISD_LOG_LEVEL"); v != "" {
			cfg.Log.Level = v
		} else {
			cfg.Log.Level = "info"
		}
	}
	if cfg.Log.File == "" {
		cfg.Log.File = os.Getenv("IRISD_LOG_FILE")
	}
}
