package commands

import (
	"testing"

	"github.com/irisforge/irisd/internal/tasks"
)

func TestPauseCommandSetsStateChangeAndInterrupts(t *testing.T) {
	c := NewPauseCommand()
	task := &tasks.Task{ID: 1, Goal: "build feature"}

	result := c.Execute(newTestExecContext(t, task), nil)
	if !result.Success || !result.StateChanges.PauseExecution || !result.InterruptExecution {
		t.Fatalf("unexpected pause result: %+v", result)
	}
}

func TestPauseCommandNoActiveTask(t *testing.T) {
	c := NewPauseCommand()
	result := c.Execute(newTestExecContext(t, nil), nil)
	if result.Success {
		t.Fatal("expected failure with no task")
	}
}

func TestResumeCommandSetsStateChange(t *testing.T) {
	c := NewResumeCommand()
	task := &tasks.Task{ID: 1, Goal: "build feature"}

	result := c.Execute(newTestExecContext(t, task), nil)
	if !result.Success || !result.StateChanges.ResumeExecution || result.InterruptExecution {
		t.Fatalf("unexpected resume result: %+v", result)
	}
}
