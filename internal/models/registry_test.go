package models

import (
	"context"
	"testing"

	"github.com/irisforge/irisd/internal/config"
)

func TestRegistryDefaultsToDummyWithoutOpenAICredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	r := NewRegistry(map[string]config.ProviderConfig{})

	if r.DefaultName() != "dummy" {
		t.Fatalf("expected dummy default, got %s", r.DefaultName())
	}

	p, err := r.Get(context.Background(), "dummy")
	if err != nil {
		t.Fatalf("Get dummy: %v", err)
	}
	if p.Name() != "dummy" {
		t.Fatalf("unexpected provider name: %s", p.Name())
	}
}

func TestRegistryPrefersOpenAIWhenCredentialsPresent(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	r := NewRegistry(map[string]config.ProviderConfig{
		"openai": {Driver: "openai", Model: "gpt-4o-mini"},
	})

	if r.DefaultName() != "openai" {
		t.Fatalf("expected openai default, got %s", r.DefaultName())
	}
}

func TestRegistryUnknownProviderErrors(t *testing.T) {
	r := NewRegistry(map[string]config.ProviderConfig{})
	if _, err := r.Get(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
