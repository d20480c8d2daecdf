package supervisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/irisforge/irisd/internal/profile"
	"github.com/irisforge/irisd/internal/tasks"
	"github.com/irisforge/irisd/internal/worker"
)

// runStrategy picks the local execution strategy named by the
// Supervisor's profile.CollaborationMode and runs taskID on slot sl,
// matching spec.md §4.4's independent/cooperative/competitive split.
func (s *Supervisor) runStrategy(sl *slot, slotIdx int, taskID int) {
	defer s.releaseSlot(slotIdx)

	task, err := s.repo.Get(taskID)
	if err != nil {
		slog.Error("supervisor: load queued task", "task_id", taskID, "error", err)
		return
	}

	s.trackActive(taskID, task)
	defer s.untrackActive(taskID)

	switch s.profile.CollaborationMode {
	case profile.Cooperative:
		if s.profile.TaskDecomposition {
			s.runCooperative(sl, slotIdx, task)
			return
		}
	case profile.Competitive:
		s.runCompetitive(sl, slotIdx, task)
		return
	}
	s.runIndependent(sl, task)
}

func (s *Supervisor) trackActive(taskID int, task tasks.Task) {
	s.mu.Lock()
	s.activeTasks[taskID] = task
	s.mu.Unlock()
}

func (s *Supervisor) untrackActive(taskID int) {
	s.mu.Lock()
	delete(s.activeTasks, taskID)
	delete(s.workerAssignments, taskID)
	s.mu.Unlock()
}

// runIndependent is the baseline strategy: the slot that won dispatch
// runs the task alone.
func (s *Supervisor) runIndependent(sl *slot, task tasks.Task) {
	before, after := s.snapshotHooks()
	s.runHooks("before_task", before, &task)

	task.Transition(tasks.Running)
	_ = s.repo.Update(task)
	if s.instr != nil {
		s.instr.started.Add(s.ctx, 1)
	}

	result := sl.worker.Execute(s.ctx, &task, s.maxSteps)
	s.finishTask(&task, result)
	s.runHooks("after_task", after, &task)
}

// runCompetitive races the dispatched slot against one additional idle
// slot (when one is free) on the same task; the first successful result
// wins and the loser is cancelled, matching spec.md's "first successful
// result wins".
func (s *Supervisor) runCompetitive(sl *slot, slotIdx int, task tasks.Task) {
	before, after := s.snapshotHooks()
	s.runHooks("before_task", before, &task)

	task.Transition(tasks.Running)
	_ = s.repo.Update(task)
	if s.instr != nil {
		s.instr.started.Add(s.ctx, 1)
	}

	extra, extraIdx, ok := s.grabExtraIdleSlot()
	runners := []*slot{sl}
	if ok {
		runners = append(runners, extra)
		defer s.releaseSlot(extraIdx)
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	type outcome struct {
		task   tasks.Task
		result worker.Result
	}
	results := make(chan outcome, len(runners))
	for _, r := range runners {
		r := r
		raceTask := task
		go func() {
			res := r.worker.Execute(ctx, &raceTask, s.maxSteps)
			results <- outcome{task: raceTask, result: res}
		}()
	}

	var winner outcome
	haveWinner := false
	for i := 0; i < len(runners); i++ {
		o := <-results
		if !haveWinner && o.result.Success {
			winner = o
			haveWinner = true
			cancel()
		} else if !haveWinner {
			winner = o
		}
	}

	s.finishTask(&winner.task, winner.result)
	s.runHooks("after_task", after, &winner.task)
}

// runCooperative decomposes task into subtasks distributed across the
// dispatched slot plus one additional idle slot (when available),
// matching spec.md's "break into subtasks distributed across workers".
func (s *Supervisor) runCooperative(sl *slot, slotIdx int, task tasks.Task) {
	before, after := s.snapshotHooks()
	s.runHooks("before_task", before, &task)

	task.Transition(tasks.Running)
	_ = s.repo.Update(task)
	if s.instr != nil {
		s.instr.started.Add(s.ctx, 1)
	}

	const parts = 2
	subtaskIDs := make([]int, 0, parts)
	for i := 1; i <= parts; i++ {
		sub, err := s.repo.Create(fmt.Sprintf("%s (subtask %d/%d)", task.Goal, i, parts))
		if err != nil {
			slog.Error("supervisor: create subtask", "task_id", task.ID, "error", err)
			s.finishTask(&task, worker.Result{Success: false, Error: "subtask decomposition failed: " + err.Error()})
			s.runHooks("after_task", after, &task)
			return
		}
		subtaskIDs = append(subtaskIDs, sub.ID)
	}

	s.mu.Lock()
	s.subtaskRelationships[task.ID] = subtaskIDs
	s.mu.Unlock()

	extra, extraIdx, ok := s.grabExtraIdleSlot()
	if ok {
		defer s.releaseSlot(extraIdx)
	}

	allOK := true
	for i, subID := range subtaskIDs {
		sub, err := s.repo.Get(subID)
		if err != nil {
			allOK = false
			continue
		}
		sub.Transition(tasks.Running)
		_ = s.repo.Update(sub)

		runner := sl
		if i == 1 && ok {
			runner = extra
		}
		result := runner.worker.Execute(s.ctx, &sub, s.maxSteps)
		if result.Success {
			sub.Transition(tasks.Done)
		} else {
			sub.Transition(tasks.Error)
			allOK = false
		}
		_ = s.repo.Update(sub)
		s.putSharedMemory(fmt.Sprintf("task:%d:subtask:%d", task.ID, sub.ID), result)
	}

	workerCount := 1
	if ok {
		workerCount = 2
	}
	summary := fmt.Sprintf("cooperative: %d subtasks distributed across %d worker(s)", len(subtaskIDs), workerCount)
	task.AppendStep("supervisor", summary, "")
	result := worker.Result{Success: allOK}
	if !allOK {
		result.Error = "one or more subtasks failed"
	}
	s.finishTask(&task, result)
	s.runHooks("after_task", after, &task)
}

// grabExtraIdleSlot removes and returns one idle slot besides whatever
// the caller already holds, for strategies that need a second worker.
func (s *Supervisor) grabExtraIdleSlot() (*slot, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.idle) == 0 {
		return nil, 0, false
	}
	idx := s.idle[0]
	s.idle = s.idle[1:]
	return s.slots[idx], idx, true
}

func (s *Supervisor) releaseSlot(slotIdx int) {
	s.mu.Lock()
	s.idle = append(s.idle, slotIdx)
	s.mu.Unlock()
	s.wake()
}

// finishTask transitions task to its terminal status from result and
// persists it, matching runOn's original bookkeeping.
func (s *Supervisor) finishTask(task *tasks.Task, result worker.Result) {
	if result.Success {
		task.Transition(tasks.Done)
		if s.instr != nil {
			s.instr.completed.Add(s.ctx, 1)
		}
	} else {
		task.Transition(tasks.Error)
		slog.Warn("supervisor: task failed", "task_id", task.ID, "error", result.Error)
		if s.instr != nil {
			s.instr.failed.Add(s.ctx, 1)
		}
	}
	if err := s.repo.Update(*task); err != nil {
		slog.Error("supervisor: persist task result", "task_id", task.ID, "error", err)
	}
}
