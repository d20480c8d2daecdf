package supervisor

import (
	"log/slog"

	"github.com/irisforge/irisd/internal/tasks"
)

// Hook observes a task immediately before or after its execution attempt.
// A hook's error is logged and swallowed — a misbehaving plugin never
// fails the task it observes.
type Hook func(task *tasks.Task) error

// AddBeforeTaskHook registers h to run just before a task starts on a
// local worker slot. A task delegated to a remote node runs no hooks.
func (s *Supervisor) AddBeforeTaskHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeHooks = append(s.beforeHooks, h)
}

// AddAfterTaskHook registers h to run once a task reaches a terminal
// status, with that status already reflected on the Task passed in.
func (s *Supervisor) AddAfterTaskHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afterHooks = append(s.afterHooks, h)
}

func (s *Supervisor) runHooks(phase string, hooks []Hook, task *tasks.Task) {
	for _, h := range hooks {
		if err := h(task); err != nil {
			slog.Warn("supervisor: plugin hook failed", "phase", phase, "task_id", task.ID, "error", err)
		}
	}
}

func (s *Supervisor) snapshotHooks() (before, after []Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Hook(nil), s.beforeHooks...), append([]Hook(nil), s.afterHooks...)
}

// putSharedMemory records a value under key in the Supervisor's shared
// memory, the scratch space cooperative subtasks use to hand results
// back to whoever aggregates them.
func (s *Supervisor) putSharedMemory(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sharedMemory[key] = value
}

// SharedMemory returns the value stored under key, if any.
func (s *Supervisor) SharedMemory(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.sharedMemory[key]
	return v, ok
}
