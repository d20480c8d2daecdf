// Package tasks implements the Task entity, its status state machine, and
// the append-only step log, backed by the atomic store package.
package tasks

import "time"

// Status is the lifecycle state of a Task.
type Status string

const (
	Pending Status = "PENDING"
	Running Status = "RUNNING"
	Paused  Status = "PAUSED"
	Done    Status = "DONE"
	Error   Status = "ERROR"
)

// terminal reports whether s has no further transitions.
func (s Status) terminal() bool {
	return s == Done || s == Error
}

// allowedTransitions enumerates the state machine from spec.md §3.
var allowedTransitions = map[Status]map[Status]bool{
	Pending: {Running: true},
	Running: {Paused: true, Done: true, Error: true},
	Paused:  {Running: true, Error: true},
}

// CanTransition reports whether moving from `from` to `to` is legal.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// Step is one append-only entry in a Task's step log.
type Step struct {
	StepID    int       `json:"step_id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Result    string    `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Task is a persistent unit of work with an id, goal, state, and
// append-only step log.
type Task struct {
	ID        int            `json:"id"`
	Goal      string         `json:"goal"`
	Status    Status         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Steps     []Step         `json:"steps"`
	Memory    map[string]any `json:"memory"`
	Priority  int            `json:"priority,omitempty"`
}

// AppendStep appends a step with a dense, monotonic step_id and bumps
// UpdatedAt. It is the only way steps are added — callers must not touch
// t.Steps directly.
func (t *Task) AppendStep(action, result, errMsg string) Step {
	step := Step{
		StepID:    len(t.Steps) + 1,
		Timestamp: time.Now(),
		Action:    action,
		Result:    result,
		Error:     errMsg,
	}
	t.Steps = append(t.Steps, step)
	t.UpdatedAt = step.Timestamp
	return step
}

// Transition moves the task to `to` if the transition is legal, bumping
// UpdatedAt. Returns false (no mutation) on an illegal transition.
func (t *Task) Transition(to Status) bool {
	if !CanTransition(t.Status, to) {
		return false
	}
	t.Status = to
	t.UpdatedAt = time.Now()
	return true
}

// IsTerminal reports whether the task has reached DONE or ERROR.
func (t *Task) IsTerminal() bool {
	return t.Status.terminal()
}

// LastSteps returns at most n of the most recent steps, in order.
func (t *Task) LastSteps(n int) []Step {
	if n <= 0 || len(t.Steps) == 0 {
		return nil
	}
	if n > len(t.Steps) {
		n = len(t.Steps)
	}
	return t.Steps[len(t.Steps)-n:]
}
