package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/irisforge/irisd/internal/config"
	"github.com/irisforge/irisd/internal/models"
	"github.com/irisforge/irisd/internal/tasks"
)

func TestRegistryHasSixBuiltins(t *testing.T) {
	r := NewRegistry()
	if len(r.List()) != 6 {
		t.Fatalf("expected 6 builtin commands, got %d", len(r.List()))
	}
}

func TestRegistryFindForTextMatchesTrigger(t *testing.T) {
	r := NewRegistry()
	cmd, ok := r.FindForText("please /pause this run")
	if !ok || cmd.Name() != "pause" {
		t.Fatalf("expected pause command match, got %v ok=%v", cmd, ok)
	}
}

func TestRegistryFindForTextNoMatch(t *testing.T) {
	r := NewRegistry()
	_, ok := r.FindForText("just keep working on the task")
	if ok {
		t.Fatal("expected no command match")
	}
}

func TestRegistryUnregisterRemovesCommand(t *testing.T) {
	r := NewRegistry()
	if !r.Unregister("pause") {
		t.Fatal("expected pause to be unregistered")
	}
	if _, ok := r.Get("pause"); ok {
		t.Fatal("expected pause to be gone")
	}
	if len(r.List()) != 5 {
		t.Fatalf("expected 5 remaining commands, got %d", len(r.List()))
	}
}

func newTestExecContext(t *testing.T, task *tasks.Task) ExecContext {
	t.Helper()
	registry := models.NewRegistry(map[string]config.ProviderConfig{})
	metrics := models.NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))
	return ExecContext{
		Ctx:      context.Background(),
		Router:   models.NewRouter(registry, metrics, nil, nil),
		Registry: registry,
		Metrics:  metrics,
		Task:     task,
		Now:      time.Now(),
	}
}

func TestRegistryExecuteRunsMatchedCommand(t *testing.T) {
	r := NewRegistry()
	task := &tasks.Task{ID: 1, Goal: "do things"}

	result, ok := r.Execute("/pause now", newTestExecContext(t, task))
	if !ok {
		t.Fatal("expected a command to match")
	}
	if !result.Success || !result.StateChanges.PauseExecution {
		t.Fatalf("unexpected pause result: %+v", result)
	}
}

func TestRegistryExecuteNoMatchReturnsFalse(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Execute("carry on", newTestExecContext(t, nil))
	if ok {
		t.Fatal("expected no match")
	}
}
