package commands

import (
	"fmt"
	"strings"
)

// InspectTaskCommand reports detailed state about the current task.
type InspectTaskCommand struct{ baseCommand }

// NewInspectTaskCommand returns the "/inspect task" command.
func NewInspectTaskCommand() *InspectTaskCommand {
	return &InspectTaskCommand{baseCommand{
		name:        "inspect_task",
		description: "Show detailed information about current task",
		triggers:    []string{"/inspect task", "/inspect", "/task info", "/status"},
	}}
}

func (c *InspectTaskCommand) ParseArgs(text string) map[string]string { return nil }

func (c *InspectTaskCommand) Execute(ctx ExecContext, args map[string]string) Result {
	task := ctx.Task
	if task == nil {
		return Result{Output: "No active task to inspect"}
	}

	lines := []string{
		fmt.Sprintf("Task ID: %d", task.ID),
		fmt.Sprintf("Goal: %s", task.Goal),
		fmt.Sprintf("Status: %s", task.Status),
		fmt.Sprintf("Created: %s", task.CreatedAt.Format("2006-01-02T15:04:05")),
		fmt.Sprintf("Updated: %s", task.UpdatedAt.Format("2006-01-02T15:04:05")),
		fmt.Sprintf("Steps Completed: %d", len(task.Steps)),
	}

	if task.Priority != 0 {
		lines = append(lines, fmt.Sprintf("Priority: %d", task.Priority))
	}

	if len(task.Steps) > 0 {
		lines = append(lines, "", "Recent Steps:")
		start := len(task.Steps) - 3
		if start < 0 {
			start = 0
		}
		for _, step := range task.Steps[start:] {
			timestamp := step.Timestamp.Format("2006-01-02T15:04:05")
			action := truncateStr(step.Action, 50)
			lines = append(lines, fmt.Sprintf("  [%s] %s", timestamp, action))
			if step.Result != "" {
				preview := strings.ReplaceAll(truncateStr(step.Result, 100), "\n", " ")
				lines = append(lines, fmt.Sprintf("    Result: %s...", preview))
			}
			if step.Error != "" {
				lines = append(lines, fmt.Sprintf("    Error: %s", step.Error))
			}
		}
	}

	return Result{Success: true, Output: strings.Join(lines, "\n")}
}

func truncateStr(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
