package config

import (
	"os"
	"path/filepath"
)

// IrisdPath returns the root directory for irisd's persisted state.
// It uses $IRISD_PATH if set, otherwise defaults to ~/.irisd.
func IrisdPath() string {
	if v := os.Getenv("IRISD_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".irisd")
	}
	return filepath.Join(home, ".irisd")
}

// ConfigPath returns the path to the irisd config file.
func ConfigPath() string {
	return filepath.Join(IrisdPath(), "config.json")
}

// DotenvPath returns the path to the irisd .env file.
func DotenvPath() string {
	return filepath.Join(IrisdPath(), ".env")
}

// DataPath returns the directory holding the JSON state files
// (tasks.json, model_metrics.json, accounts.json, ...).
func DataPath() string {
	return filepath.Join(IrisdPath(), "data")
}

// StateFile joins DataPath with a file name, the helper every
// persisted-state package uses to locate its store.Store path.
func StateFile(name string) string {
	return filepath.Join(DataPath(), name)
}
