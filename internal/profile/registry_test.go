package profile

import (
	"path/filepath"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(filepath.Join(t.TempDir(), "profiles.json"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestRegistryDefaultsToBalancedActive(t *testing.T) {
	r := newTestRegistry(t)
	if r.ActiveName() != "balanced" {
		t.Fatalf("expected default active profile balanced, got %s", r.ActiveName())
	}
}

func TestRegistryListIncludesBuiltins(t *testing.T) {
	r := newTestRegistry(t)
	list := r.List()
	if len(list) != 5 {
		t.Fatalf("expected 5 builtin profiles, got %d: %v", len(list), list)
	}
}

func TestRegistryAddCustomRejectsBuiltinName(t *testing.T) {
	r := newTestRegistry(t)
	ok, err := r.AddCustom(Profile{Name: "balanced", CollaborationMode: Independent})
	if err != nil {
		t.Fatalf("AddCustom: %v", err)
	}
	if ok {
		t.Fatal("expected custom profile to be rejected when shadowing a builtin")
	}
}

func TestRegistryAddCustomPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	r1, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	custom := Profile{
		Name:              "my-style",
		CreativityVsPrecision: 0.4,
		CollaborationMode: Independent,
	}
	ok, err := r1.AddCustom(custom)
	if err != nil || !ok {
		t.Fatalf("AddCustom: ok=%v err=%v", ok, err)
	}

	r2, err := NewRegistry(path)
	if err != nil {
		t.Fatalf("NewRegistry reload: %v", err)
	}
	got, ok := r2.Get("my-style")
	if !ok || got.CreativityVsPrecision != 0.4 {
		t.Fatalf("expected persisted custom profile, got %+v ok=%v", got, ok)
	}
}

func TestRegistrySetActiveRejectsUnknownProfile(t *testing.T) {
	r := newTestRegistry(t)
	if r.SetActive("does-not-exist") {
		t.Fatal("expected SetActive to fail for unknown profile")
	}
	if r.ActiveName() != "balanced" {
		t.Fatal("expected active profile unchanged after failed SetActive")
	}
}

func TestRegistryFromTemplateAppliesOverrides(t *testing.T) {
	r := newTestRegistry(t)
	p, err := r.FromTemplate("my-conservative", "conservative", map[string]any{
		"max_retries": 7,
	})
	if err != nil {
		t.Fatalf("FromTemplate: %v", err)
	}
	if p.MaxRetries != 7 {
		t.Fatalf("expected override applied, got %+v", p)
	}
	if p.RiskTolerance != Conservative.RiskTolerance {
		t.Fatalf("expected non-overridden fields copied from template, got %+v", p)
	}
}

func TestRegistryRemoveCustom(t *testing.T) {
	r := newTestRegistry(t)
	r.AddCustom(Profile{Name: "temp", CollaborationMode: Independent})

	if existed, err := r.RemoveCustom("temp"); err != nil || !existed {
		t.Fatalf("RemoveCustom existing: existed=%v err=%v", existed, err)
	}
	if existed, err := r.RemoveCustom("temp"); err != nil || existed {
		t.Fatalf("RemoveCustom missing: existed=%v err=%v", existed, err)
	}
}
