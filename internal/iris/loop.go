package iris

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/irisforge/irisd/internal/models"
	"github.com/irisforge/irisd/internal/tasks"
)

// AgentLoop drives one task through READ→PLAN→WRITE→VERIFY, refusing
// to write any file that wasn't read in the same pass.
type AgentLoop struct {
	projectRoot string
	contextMgr  *ContextManager
	tasks       *tasks.Repository
	router      *models.Router
	parser      PlanParser
}

// NewAgentLoop wires an AgentLoop against a project's context
// directory, task repository, and model router. A nil parser falls
// back to heuristicPlanParser.
func NewAgentLoop(projectRoot string, contextMgr *ContextManager, repo *tasks.Repository, router *models.Router, parser PlanParser) *AgentLoop {
	if parser == nil {
		parser = heuristicPlanParser
	}
	return &AgentLoop{projectRoot: projectRoot, contextMgr: contextMgr, tasks: repo, router: router, parser: parser}
}

// ExecuteTask runs the full loop for taskID. It returns (true, nil) on
// success, (false, nil) on a handled failure (enforcement violation,
// verification failure, edit error — all recorded on the task), and a
// non-nil error only for infrastructure failures (task not found,
// store I/O errors).
func (l *AgentLoop) ExecuteTask(ctx context.Context, taskID int) (bool, error) {
	task, err := l.tasks.Get(taskID)
	if err != nil {
		return false, fmt.Errorf("ERR_TASK_NOT_FOUND: %w", err)
	}

	created, err := l.contextMgr.Initialize(task.Goal)
	if err != nil {
		return false, err
	}
	if created {
		slog.Info("iris: initialized project context, step 1 complete", "task_id", taskID)
		return true, nil
	}

	irisTask := NewCurrentTask(task.ID, task.Goal)
	irisTask.Status = "running"
	if err := l.contextMgr.SetCurrentTask(irisTask); err != nil {
		return false, err
	}

	success, runErr := l.runPhases(ctx, &task, &irisTask)
	if runErr != nil {
		task.Status = tasks.Error
		irisTask.Status = "error"
		if _, ok := runErr.(*EnforcementError); ok {
			irisTask.Summary = "enforcement error: " + runErr.Error()
		} else {
			irisTask.Summary = "execution error: " + runErr.Error()
		}
		_ = l.tasks.Update(task)
		_ = l.contextMgr.SetCurrentTask(irisTask)
		return false, nil
	}

	return success, nil
}

// runPhases executes READ, PLAN, and WRITE in sequence, updating task
// and irisTask in place and persisting the outcome. A non-nil error
// means an infrastructure or enforcement failure interrupted the run
// before a WRITE outcome was reached; the bool is WRITE's own success.
func (l *AgentLoop) runPhases(ctx context.Context, task *tasks.Task, irisTask *CurrentTask) (bool, error) {
	if err := l.executeReadPhase(*task); err != nil {
		return false, err
	}

	plan, err := l.executePlanPhase(ctx, *task)
	if err != nil {
		return false, err
	}

	success, err := l.executeWritePhase(*task, plan)
	if err != nil {
		return false, err
	}

	if success {
		task.Status = tasks.Done
		irisTask.Status = "done"
		irisTask.LastPhase = "VERIFY"
	} else {
		task.Status = tasks.Error
		irisTask.Status = "error"
		irisTask.LastPhase = "WRITE"
	}
	if err := l.tasks.Update(*task); err != nil {
		return false, err
	}
	if err := l.contextMgr.SetCurrentTask(*irisTask); err != nil {
		return false, err
	}
	return success, nil
}

// executeReadPhase walks the project for source files, checksums each,
// and records them into the context's ReadState.
func (l *AgentLoop) executeReadPhase(task tasks.Task) error {
	files, err := findFilesToRead(l.projectRoot)
	if err != nil {
		return err
	}

	read := 0
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		sum, err := checksum(path)
		if err != nil {
			return err
		}

		lineCount := strings.Count(string(content), "\n") + 1
		fr := FileRead{Path: path, Lines: [2]int{1, lineCount}, Content: string(content), Hash: sum}

		ctx, err := l.contextMgr.LoadContext()
		if err != nil {
			return err
		}
		if ctx.CurrentTask != nil {
			ctx.CurrentTask.ReadState.FilesRead[path] = fr
			if err := l.contextMgr.WriteContext(ctx); err != nil {
				return err
			}
		}
		read++
	}

	return l.contextMgr.AddJournalEntry(task.ID, "READ", fmt.Sprintf("read %d files", read), map[string]any{"files_read": read})
}

// executePlanPhase asks the model router for a plan and parses it into
// structured edits, anchored on the first file read this pass.
func (l *AgentLoop) executePlanPhase(ctx context.Context, task tasks.Task) (Plan, error) {
	ictx, err := l.contextMgr.LoadContext()
	if err != nil {
		return Plan{}, err
	}
	if ictx.CurrentTask == nil {
		return Plan{}, &EnforcementError{File: "<none>"}
	}

	anchor := defaultAnchorFile(ictx.CurrentTask.ReadState, l.projectRoot)

	prompt := buildPlanPrompt(task.Goal)
	response, err := l.router.Generate(ctx, prompt, map[string]any{"task_goal": task.Goal}, "")
	if err != nil {
		return Plan{}, err
	}

	edits := l.parser(response, anchor)
	plan := Plan{IntendedEdits: edits, Reasoning: response}

	ictx.CurrentTask.Plan = plan
	if err := l.contextMgr.WriteContext(ictx); err != nil {
		return Plan{}, err
	}

	if err := l.contextMgr.AddJournalEntry(task.ID, "PLAN", fmt.Sprintf("planned %d edits", len(edits)), map[string]any{"edits_planned": len(edits)}); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// executeWritePhase enforces MUST_READ_FIRST, applies each edit under
// a checkpoint, verifies it, and rolls back on any failure.
func (l *AgentLoop) executeWritePhase(task tasks.Task, plan Plan) (bool, error) {
	for i := range plan.IntendedEdits {
		edit := plan.IntendedEdits[i]

		ictx, err := l.contextMgr.LoadContext()
		if err != nil {
			return false, err
		}
		if ictx.CurrentTask == nil {
			return false, &EnforcementError{File: edit.File}
		}
		if _, ok := ictx.CurrentTask.ReadState.FilesRead[edit.File]; !ok {
			return false, &EnforcementError{File: edit.File}
		}

		edit.NewContent = generateEditContent(edit, task.Goal)

		originalBytes, _ := os.ReadFile(edit.File)
		if _, err := diffPreview(edit.File, string(originalBytes), edit.NewContent); err != nil {
			return false, err
		}

		checkpointPath, err := l.contextMgr.CreateCheckpoint(task.ID, edit.File)
		if err != nil {
			return false, err
		}

		if err := applyEdit(edit); err != nil {
			_ = l.contextMgr.RollbackFile(checkpointPath, edit.File)
			return false, nil
		}

		if !verifyChanges(edit.File) {
			_ = l.contextMgr.RollbackFile(checkpointPath, edit.File)
			return false, nil
		}
	}

	if err := l.contextMgr.AddJournalEntry(task.ID, "WRITE", fmt.Sprintf("applied %d edits successfully", len(plan.IntendedEdits)), map[string]any{"edits_applied": len(plan.IntendedEdits)}); err != nil {
		return false, err
	}
	return true, nil
}

// applyEdit replaces a 1-based inclusive line range in file with
// edit.NewContent, matching the original agent's _apply_edit.
func applyEdit(edit IntendedEdit) error {
	if edit.NewContent == "" {
		return nil
	}

	current, err := os.ReadFile(edit.File)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	lines := strings.Split(string(current), "\n")
	start := edit.Range[0] - 1
	if start < 0 {
		start = 0
	}
	end := edit.Range[1]
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		start = end
	}

	newLines := strings.Split(edit.NewContent, "\n")

	result := make([]string, 0, len(lines)-(end-start)+len(newLines))
	result = append(result, lines[:start]...)
	result = append(result, newLines...)
	result = append(result, lines[end:]...)

	return atomicWriteFile(edit.File, []byte(strings.Join(result, "\n")))
}

func buildPlanPrompt(goal string) string {
	return "Given this task: \"" + goal + "\"\n\n" +
		"Analyze the codebase and create a specific plan for what needs to be implemented.\n" +
		"Focus on concrete file changes with exact line ranges.\n\n" +
		"Respond with a detailed plan including:\n" +
		"- Specific files to modify\n" +
		"- Exact line ranges for changes\n" +
		"- What functionality to implement\n\n" +
		"Be very specific and actionable."
}

func defaultAnchorFile(rs ReadState, projectRoot string) string {
	if len(rs.FilesRead) == 0 {
		return projectRoot + "/main.go"
	}
	paths := make([]string, 0, len(rs.FilesRead))
	for path := range rs.FilesRead {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths[0]
}
