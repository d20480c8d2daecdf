// Package commands implements system-level instructions a worker can
// issue mid-execution — switching providers, pausing/resuming a task,
// inspecting task state, and injecting extra context — triggered by
// slash-style phrases appearing in a decision string.
package commands

import (
	"context"
	"strings"
	"time"

	"github.com/irisforge/irisd/internal/models"
	"github.com/irisforge/irisd/internal/tasks"
)

// ExecContext is the execution context a Command runs against. It is the
// Go analogue of the original's loosely typed context dict, made
// concrete since every built-in command only ever reads a fixed set of
// fields from it.
type ExecContext struct {
	Ctx      context.Context
	Router   *models.Router
	Registry *models.Registry
	Metrics  *models.Metrics
	Task     *tasks.Task
	Now      time.Time
}

// StateChanges carries the subset of execution state a Command asked its
// caller to change.
type StateChanges struct {
	SwitchProvider  string
	PauseExecution  bool
	ResumeExecution bool
}

// Result is the outcome of executing a Command.
type Result struct {
	Success            bool
	Output             string
	StateChanges       StateChanges
	InterruptExecution bool
}

// Command is a slash-triggered instruction a worker recognizes inside a
// decision string and executes instead of treating it as a tool call.
type Command interface {
	Name() string
	Description() string
	Triggers() []string
	// CanHandle reports whether text contains one of this command's
	// triggers (case-insensitive substring match).
	CanHandle(text string) bool
	// ParseArgs extracts this command's arguments from the triggering
	// text. Commands with no arguments return nil.
	ParseArgs(text string) map[string]string
	Execute(ctx ExecContext, args map[string]string) Result
}

// baseCommand factors the name/description/trigger bookkeeping shared by
// every built-in, matching the base class in the original command system.
type baseCommand struct {
	name        string
	description string
	triggers    []string
}

func (b baseCommand) Name() string        { return b.name }
func (b baseCommand) Description() string { return b.description }
func (b baseCommand) Triggers() []string  { return b.triggers }

func (b baseCommand) CanHandle(text string) bool {
	lower := strings.ToLower(text)
	for _, trig := range b.triggers {
		if strings.Contains(lower, strings.ToLower(trig)) {
			return true
		}
	}
	return false
}
