package worker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/irisforge/irisd/internal/commands"
	"github.com/irisforge/irisd/internal/config"
	"github.com/irisforge/irisd/internal/models"
	"github.com/irisforge/irisd/internal/profile"
	"github.com/irisforge/irisd/internal/sandbox"
	"github.com/irisforge/irisd/internal/tasks"
	"github.com/irisforge/irisd/internal/tools"
)

// fakeTool records its invocations and returns a fixed output.
type fakeTool struct {
	name   string
	output string
	calls  []map[string]string
}

func (f *fakeTool) Schema() tools.Schema { return tools.Schema{Name: f.name} }
func (f *fakeTool) Execute(ctx context.Context, args map[string]string) tools.Result {
	f.calls = append(f.calls, args)
	return tools.Result{Output: f.output}
}

func newTestRouter(t *testing.T) *models.Router {
	t.Helper()
	registry := models.NewRegistry(map[string]config.ProviderConfig{})
	metrics := models.NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))
	return models.NewRouter(registry, metrics, nil, nil)
}

func TestIsCompleteMatchesMarkerWords(t *testing.T) {
	if !isComplete("Task is now DONE") {
		t.Fatal("expected DONE to mark completion")
	}
	if isComplete("still working on it") {
		t.Fatal("expected no completion marker")
	}
}

func TestDetectToolCallsParsesArgs(t *testing.T) {
	calls := detectToolCalls(`run_shell(command="ls -la", timeout=5)`)
	if len(calls) != 1 || calls[0].name != "run_shell" {
		t.Fatalf("expected one run_shell call, got %+v", calls)
	}
	if calls[0].args["command"] != "ls -la" || calls[0].args["timeout"] != "5" {
		t.Fatalf("unexpected args: %+v", calls[0].args)
	}
}

func TestExecuteStopsOnCommandInterrupt(t *testing.T) {
	w := New(newTestRouter(t), commands.NewRegistry(), nil, nil, profile.Balanced)
	task := &tasks.Task{ID: 1, Goal: "/pause this run please"}

	// Override decide indirectly isn't possible without a seam, so drive
	// tryCommand directly to validate the interrupt contract used by Execute.
	result, handled := w.tryCommand(context.Background(), task.Goal, task)
	if !handled || !result.InterruptExecution {
		t.Fatalf("expected pause command to interrupt, got %+v handled=%v", result, handled)
	}
}

func TestExecuteToolDispatchesToRegisteredTool(t *testing.T) {
	tool := &fakeTool{name: "echo", output: "hello"}
	registry := tools.NewRegistry()
	if err := registry.Register(tool); err != nil {
		t.Fatalf("Register: %v", err)
	}
	w := New(newTestRouter(t), commands.NewRegistry(), registry, nil, profile.Balanced)

	out, errMsg := w.executeTool(context.Background(), toolCall{name: "echo", args: map[string]string{"text": "hi"}})
	if errMsg != "" {
		t.Fatalf("executeTool: %v", errMsg)
	}
	if out != "hello" || len(tool.calls) != 1 {
		t.Fatalf("expected tool invoked once with output hello, got %q calls=%v", out, tool.calls)
	}
}

func TestExecuteToolUnknownNameReturnsError(t *testing.T) {
	w := New(newTestRouter(t), commands.NewRegistry(), nil, nil, profile.Balanced)
	_, errMsg := w.executeTool(context.Background(), toolCall{name: "missing"})
	if errMsg != "Tool not found: missing" {
		t.Fatalf("expected exact contract message, got %q", errMsg)
	}
}

func TestExecuteWrapsPanicAsSecurityViolationUnderSandbox(t *testing.T) {
	registry := tools.NewRegistry()
	if err := registry.Register(&panicTool{name: "explode"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	sb := sandbox.New(t.TempDir(), nil, nil, sandbox.ResourceLimits{}, filepath.Join(t.TempDir(), "blocked.json"))
	w := New(newTestRouter(t), commands.NewRegistry(), registry, sb, profile.Balanced)

	_, errMsg := w.executeTool(context.Background(), toolCall{name: "explode"})
	if errMsg != "Security violation in explode: kaboom" {
		t.Fatalf("unexpected errMsg: %q", errMsg)
	}
}

// panicTool always panics, simulating a misbehaving tool so the sandbox
// wrapper's recover path can be exercised.
type panicTool struct{ name string }

func (p *panicTool) Schema() tools.Schema { return tools.Schema{Name: p.name} }
func (p *panicTool) Execute(context.Context, map[string]string) tools.Result {
	panic("kaboom")
}

func TestExecuteRecordsStepsWithinMaxSteps(t *testing.T) {
	// The dummy provider's Generate echoes a canned phrase; wire the
	// completion marker directly into the task goal so the first
	// decision from the dummy provider reports done immediately is not
	// guaranteed, so this test only exercises the step-accounting
	// contract via a zero-tool, zero-command decision loop bound by
	// maxSteps instead of relying on the dummy provider's exact text.
	w := New(newTestRouter(t), commands.NewRegistry(), nil, nil, profile.Balanced)
	task := &tasks.Task{ID: 1, Goal: "say hello"}

	result := w.Execute(context.Background(), task, 2)
	if result.StepsCompleted == 0 && len(task.Steps) == 0 {
		t.Fatal("expected at least one step recorded")
	}
}
