// Package worker implements the per-task decision→action loop: a Worker
// repeatedly asks the model router for a decision, checks it against the
// command registry first, then against a completion marker, then against
// detected tool calls, and appends every action taken to the task's step
// log until the task completes, errors out, or is interrupted.
package worker

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/irisforge/irisd/internal/commands"
	"github.com/irisforge/irisd/internal/models"
	"github.com/irisforge/irisd/internal/profile"
	"github.com/irisforge/irisd/internal/sandbox"
	"github.com/irisforge/irisd/internal/tasks"
	"github.com/irisforge/irisd/internal/tools"
)

// Status mirrors WorkerAgent's self._status lifecycle.
type Status string

const (
	Idle    Status = "idle"
	Running Status = "running"
	Errored Status = "error"
)

// completionMarkers are substrings that, case-insensitively, mark a
// decision as finishing the task, matching _is_complete.
var completionMarkers = []string{"done", "complete", "finished", "success"}

// toolCallRe matches `name(arg=val, arg2="val2")`-shaped tool calls inside
// a decision string, matching _detect_tool_calls's regex.
var toolCallRe = regexp.MustCompile(`(\w+)\(([^)]*)\)`)

// Result is the outcome of running one task to completion, interruption,
// or failure.
type Result struct {
	Success            bool
	StepsCompleted      int
	Error               string
	InterruptedByCommand string
}

// Worker drives a single task through the decision→action loop.
type Worker struct {
	Router   *models.Router
	Commands *commands.Registry
	Tools    *tools.Registry
	Sandbox  *sandbox.Sandbox
	Profile  profile.Profile

	status Status
}

// New returns a Worker with the given collaborators. toolRegistry may be
// nil, in which case an empty registry is used; a call to a tool name that
// is not registered fails the task with "Tool failed: Tool not found: x".
func New(router *models.Router, cmdRegistry *commands.Registry, toolRegistry *tools.Registry, sb *sandbox.Sandbox, p profile.Profile) *Worker {
	if toolRegistry == nil {
		toolRegistry = tools.NewRegistry()
	}
	return &Worker{Router: router, Commands: cmdRegistry, Tools: toolRegistry, Sandbox: sb, Profile: p, status: Idle}
}

// Status returns the worker's current lifecycle state.
func (w *Worker) Status() Status { return w.status }

// Execute runs task through the decision→action loop, persisting steps
// onto task as it goes. The caller is responsible for persisting task
// after Execute returns (and, if it wants intermediate durability,
// between steps via a repository — Worker itself only mutates the
// in-memory Task).
func (w *Worker) Execute(ctx context.Context, task *tasks.Task, maxSteps int) (result Result) {
	w.status = Running
	defer func() {
		if !result.Success && result.InterruptedByCommand == "" {
			w.status = Errored
		} else {
			w.status = Idle
		}
	}()

	if maxSteps <= 0 {
		maxSteps = 10
	}

	for step := 0; step < maxSteps; step++ {
		decision, err := w.decide(ctx, task)
		if err != nil {
			task.AppendStep("decision", "", err.Error())
			return Result{Success: false, StepsCompleted: step, Error: err.Error()}
		}

		if cmdResult, handled := w.tryCommand(ctx, decision, task); handled {
			task.AppendStep("command", cmdResult.Output, "")
			if cmdResult.InterruptExecution {
				return Result{Success: true, StepsCompleted: step + 1, InterruptedByCommand: decision}
			}
			continue
		}

		if isComplete(decision) {
			task.AppendStep("decision", decision, "")
			return Result{Success: true, StepsCompleted: step + 1}
		}

		calls := detectToolCalls(decision)
		if len(calls) == 0 {
			task.AppendStep("decision", decision, "")
			continue
		}

		maxTools := w.Profile.MaxToolsPerStep
		if maxTools <= 0 {
			maxTools = 3
		}
		if len(calls) > maxTools {
			calls = calls[:maxTools]
		}
		for _, call := range calls {
			output, errMsg := w.executeTool(ctx, call)
			if errMsg != "" {
				task.AppendStep("action", "", errMsg)
				return Result{Success: false, StepsCompleted: step + 1, Error: "Tool failed: " + errMsg}
			}
			task.AppendStep("action", fmt.Sprintf("%s -> %s", call.name, output), "")
		}
	}

	// Reaching maxSteps counts as success: bounded progress is accepted.
	return Result{Success: true, StepsCompleted: maxSteps}
}

// decide asks the router for the next decision given the task's recent
// history, matching the context dict built in _run_task_loop.
func (w *Worker) decide(ctx context.Context, task *tasks.Task) (string, error) {
	recent := task.Steps
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	taskContext := map[string]any{
		"task_id":         task.ID,
		"goal":            task.Goal,
		"status":          string(task.Status),
		"steps":           recent,
		"available_tools": w.Tools.Names(),
	}
	return w.Router.Generate(ctx, task.Goal, taskContext, "")
}

func (w *Worker) tryCommand(ctx context.Context, decision string, task *tasks.Task) (commands.Result, bool) {
	if w.Commands == nil {
		return commands.Result{}, false
	}
	execCtx := commands.ExecContext{Ctx: ctx, Router: w.Router, Task: task, Now: time.Now()}
	return w.Commands.Execute(decision, execCtx)
}

func isComplete(decision string) bool {
	lower := strings.ToLower(decision)
	for _, marker := range completionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// toolCall is one parsed `name(key=value, ...)` invocation.
type toolCall struct {
	name string
	args map[string]string
}

// detectToolCalls extracts every `name(args)` invocation from decision,
// matching _detect_tool_calls.
func detectToolCalls(decision string) []toolCall {
	matches := toolCallRe.FindAllStringSubmatch(decision, -1)
	calls := make([]toolCall, 0, len(matches))
	for _, m := range matches {
		calls = append(calls, toolCall{name: m[1], args: parseToolArgs(m[2])})
	}
	return calls
}

// parseToolArgs splits a comma-separated `key=value` argument list,
// stripping surrounding quotes from values.
func parseToolArgs(raw string) map[string]string {
	args := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return args
	}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		value = strings.Trim(value, `"'`)
		args[key] = value
	}
	return args
}

// executeTool looks up call.name in the tool registry and runs it. The
// returned errMsg, when non-empty, is the bare contract message ("Tool not
// found: x", a tool's own Result.Error, or "Security violation in x: ..."
// when the sandbox recovers a panicking tool) — Execute is responsible for
// the "Tool failed: " prefix that terminates the step loop.
func (w *Worker) executeTool(ctx context.Context, call toolCall) (output string, errMsg string) {
	tool, ok := w.Tools.Get(call.name)
	if !ok {
		return "", "Tool not found: " + call.name
	}
	if w.Sandbox != nil {
		return w.executeUnderSandbox(ctx, tool, call)
	}
	result := tool.Execute(ctx, call.args)
	return result.Output, result.Error
}

// executeUnderSandbox wraps a tool invocation so that a panicking tool
// (this module's equivalent of a raised exception) is converted into the
// same "Security violation in <tool>: <msg>" contract the sandboxed shell
// tool itself returns on a blocked command or resource-limit kill.
func (w *Worker) executeUnderSandbox(ctx context.Context, tool tools.Tool, call toolCall) (output string, errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			output = ""
			errMsg = fmt.Sprintf("Security violation in %s: %v", call.name, r)
		}
	}()
	result := tool.Execute(ctx, call.args)
	return result.Output, result.Error
}
