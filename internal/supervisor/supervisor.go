// Package supervisor implements the fixed-size worker pool that pulls
// pending tasks from the task repository and runs them through a Worker,
// queuing overflow the way SupervisorAgent does when every worker is
// busy. Queued tasks are ordered by priority, each dispatch consults
// profile-driven delegation and collaboration strategy, and plugin hooks
// observe every local execution attempt.
package supervisor

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/irisforge/irisd/internal/node"
	"github.com/irisforge/irisd/internal/profile"
	"github.com/irisforge/irisd/internal/tasks"
	"github.com/irisforge/irisd/internal/worker"
)

// delegationTimeout bounds a single remote-delegation attempt before the
// Supervisor falls back to local execution.
const delegationTimeout = 10 * time.Second

// runAllPendingTimeout bounds how long RunAllPending waits for the queue
// and every active task to drain, matching spec.md's run_all_pending.
const runAllPendingTimeout = 300 * time.Second

// slot pairs one Worker with its index in Supervisor.slots. The worker's
// status lives on the Worker; task-to-slot assignments are kept in
// Supervisor.workerAssignments.
type slot struct {
	id     int
	worker *worker.Worker
}

// Summary is the aggregate result of RunAllPending.
type Summary struct {
	Total         int
	Completed     int
	Failed        int
	Queued        int
	ActiveWorkers int
}

// Supervisor assigns queued tasks to idle Workers and tracks queue
// depth, matching SupervisorAgent's dispatch/queue/process_queue model
// but driven by goroutines instead of a single-threaded poll loop.
type Supervisor struct {
	repo     *tasks.Repository
	nodes    *node.Registry
	client   *node.Client
	profile  profile.Profile
	maxSteps int

	mu                    sync.Mutex
	slots                 []*slot
	idle                  []int // indices into slots currently idle
	pending               priorityQueue
	seq                   int64
	activeTasks           map[int]tasks.Task
	workerAssignments     map[int]int
	subtaskRelationships  map[int][]int
	sharedMemory          map[string]any
	beforeHooks           []Hook
	afterHooks            []Hook

	wakeCh chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	instr *instrumentation
}

// New returns a Supervisor backed by maxWorkers identical Workers, each
// built from makeWorker. maxSteps bounds each task's decision loop (0
// defaults to 10, matching run_all_pending). nodes and p drive the
// per-task remote-delegation check and local collaboration strategy.
func New(repo *tasks.Repository, nodes *node.Registry, p profile.Profile, maxWorkers int, maxSteps int, makeWorker func() *worker.Worker) *Supervisor {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if maxSteps <= 0 {
		maxSteps = 10
	}
	s := &Supervisor{
		repo:                 repo,
		nodes:                nodes,
		client:               node.NewClient(delegationTimeout),
		profile:              p,
		maxSteps:             maxSteps,
		activeTasks:          map[int]tasks.Task{},
		workerAssignments:    map[int]int{},
		subtaskRelationships: map[int][]int{},
		sharedMemory:         map[string]any{},
		wakeCh:               make(chan struct{}, 1),
	}
	for i := 0; i < maxWorkers; i++ {
		s.slots = append(s.slots, &slot{id: i, worker: makeWorker()})
		s.idle = append(s.idle, i)
	}
	if instr, err := newInstrumentation(func() int64 { return int64(s.QueueDepth()) }); err == nil {
		s.instr = instr
	} else {
		slog.Warn("supervisor: otel instrumentation disabled", "error", err)
	}
	return s
}

// Start launches the dispatch loop.
func (s *Supervisor) Start(parent context.Context) {
	s.ctx, s.cancel = context.WithCancel(parent)
	s.wg.Add(1)
	go s.dispatchLoop()
}

// Stop cancels running work and waits for in-flight goroutines to exit.
func (s *Supervisor) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Enqueue adds a pending task id to the priority dispatch queue and
// wakes the scheduler. Priority is read from the task's own record;
// a task that can't be loaded is enqueued at priority 0.
func (s *Supervisor) Enqueue(taskID int) {
	priority := 0
	if t, err := s.repo.Get(taskID); err == nil {
		priority = t.Priority
	}
	s.mu.Lock()
	s.seq++
	heap.Push(&s.pending, pendingItem{priority: priority, seq: s.seq, taskID: taskID})
	s.mu.Unlock()
	s.wake()
}

func (s *Supervisor) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

// QueueDepth returns the number of tasks waiting for a free worker.
func (s *Supervisor) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}

// WorkerStatuses returns the current Status of every worker slot, in
// slot order, matching get_worker_status.
func (s *Supervisor) WorkerStatuses() []worker.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]worker.Status, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.worker.Status()
	}
	return out
}

func (s *Supervisor) dispatchLoop() {
	defer s.wg.Done()
	for {
		s.dispatch()
		select {
		case <-s.ctx.Done():
			return
		case <-s.wakeCh:
		}
	}
}

// dispatch assigns as many pending tasks, highest priority first, as it
// can: a task that can be delegated to a remote node never consumes a
// local slot; otherwise it waits for an idle slot.
func (s *Supervisor) dispatch() {
	for {
		s.mu.Lock()
		if s.pending.Len() == 0 {
			s.mu.Unlock()
			return
		}
		item := heap.Pop(&s.pending).(pendingItem)
		s.mu.Unlock()

		if s.tryDelegate(item.taskID) {
			continue
		}

		s.mu.Lock()
		if len(s.idle) == 0 {
			heap.Push(&s.pending, item)
			s.mu.Unlock()
			return
		}
		slotIdx := s.idle[0]
		s.idle = s.idle[1:]
		s.workerAssignments[item.taskID] = slotIdx
		sl := s.slots[slotIdx]
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runStrategy(sl, slotIdx, item.taskID)
		}()
	}
}

// tryDelegate checks spec.md §4.4's should_delegate_to_remote for this
// specific task dispatch and, on a match, sends it over the wire.
// Delegation is best-effort: any transport failure falls back to local
// execution by returning false and leaving the task queued-for-local.
func (s *Supervisor) tryDelegate(taskID int) bool {
	nodeID, ok := node.ShouldDelegateToRemote(s.nodes, s.profile)
	if !ok {
		return false
	}
	n, ok := s.nodes.Get(nodeID)
	if !ok {
		return false
	}

	task, err := s.repo.Get(taskID)
	if err != nil {
		slog.Error("supervisor: load task for delegation", "task_id", taskID, "error", err)
		return false
	}
	task.Transition(tasks.Running)
	_ = s.repo.Update(task)

	if err := s.client.Delegate(n, taskID, task.Goal); err != nil {
		slog.Warn("supervisor: remote delegation failed, falling back to local execution",
			"task_id", taskID, "node_id", n.ID, "error", err)
		return false
	}

	task.Transition(tasks.Done)
	if err := s.repo.Update(task); err != nil {
		slog.Error("supervisor: persist delegated task", "task_id", taskID, "error", err)
	}
	if s.instr != nil {
		s.instr.completed.Add(s.ctx, 1)
	}
	slog.Info("supervisor: task delegated to remote node", "task_id", taskID, "node_id", n.ID)
	return true
}

// RunAllPending enqueues every PENDING task and blocks until both the
// queue and every active task have drained, or runAllPendingTimeout
// elapses, matching spec.md's run_all_pending aggregate.
func (s *Supervisor) RunAllPending(ctx context.Context) (Summary, error) {
	all, err := s.repo.ListAll()
	if err != nil {
		return Summary{}, err
	}

	var ids []int
	for _, t := range all {
		if t.Status == tasks.Pending {
			ids = append(ids, t.ID)
			s.Enqueue(t.ID)
		}
	}

	deadline := time.Now().Add(runAllPendingTimeout)
	for {
		s.mu.Lock()
		queued, active := s.pending.Len(), len(s.activeTasks)
		s.mu.Unlock()
		if queued == 0 && active == 0 {
			break
		}
		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	summary := Summary{Total: len(ids)}
	for _, id := range ids {
		t, err := s.repo.Get(id)
		if err != nil {
			continue
		}
		switch t.Status {
		case tasks.Done:
			summary.Completed++
		case tasks.Error:
			summary.Failed++
		}
	}
	s.mu.Lock()
	summary.Queued = s.pending.Len()
	summary.ActiveWorkers = len(s.activeTasks)
	s.mu.Unlock()
	return summary, nil
}
