package commands

import (
	"fmt"
	"regexp"
	"strings"
)

var injectContextRe = regexp.MustCompile(`(?is)/inject\s+context\s+(.+)`)

const maxInjectedContextEntries = 10

// InjectedContext is one entry appended to a task's injected-context log.
type InjectedContext struct {
	Timestamp string `json:"timestamp"`
	Context   string `json:"context"`
}

// InjectContextCommand appends free-form context to the task's
// Memory["injected_context"] list, keeping the latest 10 entries. The
// Worker's decision context does not include task memory, so the entries
// are stored with the task but not passed to the model.
type InjectContextCommand struct{ baseCommand }

// NewInjectContextCommand returns the "/inject context <text>" command.
func NewInjectContextCommand() *InjectContextCommand {
	return &InjectContextCommand{baseCommand{
		name:        "inject_context",
		description: "Add additional context information to current task",
		triggers:    []string{"/inject context", "/add context", "/context"},
	}}
}

func (c *InjectContextCommand) ParseArgs(text string) map[string]string {
	m := injectContextRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return map[string]string{"context": strings.TrimSpace(m[1])}
}

func (c *InjectContextCommand) Execute(ctx ExecContext, args map[string]string) Result {
	task := ctx.Task
	if task == nil {
		return Result{Output: "No active task to inject context into"}
	}

	text := strings.TrimSpace(args["context"])
	if text == "" {
		return Result{Output: "No context text provided"}
	}

	if task.Memory == nil {
		task.Memory = map[string]any{}
	}
	existing, _ := task.Memory["injected_context"].([]InjectedContext)
	existing = append(existing, InjectedContext{Timestamp: ctx.Now.Format("2006-01-02T15:04:05"), Context: text})
	if len(existing) > maxInjectedContextEntries {
		existing = existing[len(existing)-maxInjectedContextEntries:]
	}
	task.Memory["injected_context"] = existing

	preview := text
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return Result{Success: true, Output: fmt.Sprintf("Context injected: %s", preview)}
}
