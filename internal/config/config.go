// Package config loads irisd's root configuration file and resolves the
// filesystem paths it runs against, in the teacher's style: one JSON file
// with nested per-concern structs, `${ENV_VAR}` template expansion, and
// applyDefaults filling the zero-value fields.
package config

import "time"

// ProviderAuth holds the raw (possibly `${ENV_VAR}`-templated) credential
// fields for one provider, resolved by internal/models.ResolveAuth.
type ProviderAuth struct {
	APIKey string `json:"api_key,omitempty"`
	Token  string `json:"token,omitempty"`
}

// ProviderConfig configures one named model provider.
type ProviderConfig struct {
	Driver    string         `json:"driver"`
	Model     string         `json:"model,omitempty"`
	BaseURL   string         `json:"base_url,omitempty"`
	Auth      ProviderAuth   `json:"auth,omitempty"`
	MaxTokens int            `json:"max_tokens,omitempty"`
	Timeout   time.Duration  `json:"timeout,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// SandboxConfig controls the resource limits applied to every
// sandboxed subprocess (spec §4.7).
type SandboxConfig struct {
	Enabled        bool     `json:"enabled"`
	MaxCPUTime     int      `json:"max_cpu_time_secs"`
	MaxMemoryMB    int      `json:"max_memory_mb"`
	MaxProcesses   int      `json:"max_processes"`
	MaxOpenFiles   int      `json:"max_open_files"`
	CommandTimeout int      `json:"command_timeout_secs"`
	Allowlist      []string `json:"allowlist,omitempty"`
	Denylist       []string `json:"denylist,omitempty"`
}

// SupervisorConfig controls the worker pool (spec §4.4/§5).
type SupervisorConfig struct {
	MaxWorkers    int `json:"max_workers"`
	MaxStepsDefault int `json:"max_steps_default"`
}

// IRISConfig controls the deterministic READ→PLAN→WRITE engine (spec §4.8).
type IRISConfig struct {
	JournalMax       int  `json:"journal_max"`
	CompactAfter     int  `json:"compact_after"`
	TrustedWorkspace bool `json:"trusted_workspace"`
}

// NodeConfig controls the remote-delegation registry (spec §4.9).
type NodeConfig struct {
	ListenHost string `json:"listen_host"`
	ListenPort int     `json:"listen_port"`
}

// LogConfig controls structured logging, mirroring the teacher's
// EventsConfig.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// Config is the root of config.json.
type Config struct {
	DataDir    string                    `json:"data_dir"`
	Models     map[string]ProviderConfig `json:"models"`
	Sandbox    SandboxConfig             `json:"sandbox"`
	Supervisor SupervisorConfig          `json:"supervisor"`
	IRIS       IRISConfig                `json:"iris"`
	Node       NodeConfig                `json:"node"`
	Log        LogConfig                 `json:"log"`
}
