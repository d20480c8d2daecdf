package config

import "testing"

func TestParseLevelRecognizesKnownLevels(t *testing.T) {
	if parseLevel("debug") != -4 {
		t.Fatalf("expected slog.LevelDebug for debug")
	}
	if parseLevel("bogus") != 0 {
		t.Fatalf("expected slog.LevelInfo fallback for unknown level")
	}
}

func TestNewLoggerWritesToRotatedFileWhenConfigured(t *testing.T) {
	logPath := t.TempDir() + "/irisd.log"
	logger := NewLogger(LogConfig{Level: "info", File: logPath})
	logger.Info("hello", "k", "v")
}
