package commands

import "fmt"

// PauseCommand interrupts the current task's execution loop.
type PauseCommand struct{ baseCommand }

// NewPauseCommand returns the "/pause" command.
func NewPauseCommand() *PauseCommand {
	return &PauseCommand{baseCommand{
		name:        "pause",
		description: "Pause current task execution",
		triggers:    []string{"/pause", "/stop", "/halt"},
	}}
}

func (c *PauseCommand) ParseArgs(text string) map[string]string { return nil }

func (c *PauseCommand) Execute(ctx ExecContext, args map[string]string) Result {
	if ctx.Task == nil {
		return Result{Output: "No active task to pause"}
	}
	return Result{
		Success:            true,
		Output:             fmt.Sprintf("Pausing task: %s", ctx.Task.Goal),
		StateChanges:       StateChanges{PauseExecution: true},
		InterruptExecution: true,
	}
}

// ResumeCommand clears a pause on the current task.
type ResumeCommand struct{ baseCommand }

// NewResumeCommand returns the "/resume" command.
func NewResumeCommand() *ResumeCommand {
	return &ResumeCommand{baseCommand{
		name:        "resume",
		description: "Resume paused task execution",
		triggers:    []string{"/resume", "/continue", "/start"},
	}}
}

func (c *ResumeCommand) ParseArgs(text string) map[string]string { return nil }

func (c *ResumeCommand) Execute(ctx ExecContext, args map[string]string) Result {
	if ctx.Task == nil {
		return Result{Output: "No active task to resume"}
	}
	return Result{
		Success:      true,
		Output:       fmt.Sprintf("Resuming task: %s", ctx.Task.Goal),
		StateChanges: StateChanges{ResumeExecution: true},
	}
}
