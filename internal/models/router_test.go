package models

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/irisforge/irisd/internal/config"
)

func TestRouterGenerateRecordsMetrics(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	registry := NewRegistry(map[string]config.ProviderConfig{})
	metrics := NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))
	router := NewRouter(registry, metrics, nil, nil)

	out, err := router.Generate(context.Background(), "do the thing", nil, "dummy")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty output from dummy provider")
	}

	health, err := metrics.GetHealth("dummy")
	if err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
	if health.TotalRequests != 1 {
		t.Fatalf("expected 1 recorded request, got %d", health.TotalRequests)
	}
}

func TestRouterGenerateFallsBackToDefault(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	registry := NewRegistry(map[string]config.ProviderConfig{})
	metrics := NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))
	router := NewRouter(registry, metrics, nil, nil)

	out, err := router.Generate(context.Background(), "goal", nil, "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out == "" {
		t.Fatal("expected output from default provider")
	}
}
