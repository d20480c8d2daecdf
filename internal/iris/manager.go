package iris

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ErrNotInitialized is returned by LoadContext when the project's
// .context directory hasn't been created with Initialize yet.
var ErrNotInitialized = errors.New("iris: context not initialized")

// ContextManager owns one project's .context directory: context.json,
// journal.json, the checkpoints/ backup tree, and the cross-process
// lock guarding writes to both JSON files.
type ContextManager struct {
	projectRoot    string
	contextDir     string
	contextPath    string
	journalPath    string
	checkpointsDir string
	lock           *FileLock
	now            func() time.Time
}

// NewContextManager roots a ContextManager at projectRoot, creating
// its .context directory and checkpoints/ subdirectory if needed.
func NewContextManager(projectRoot string) (*ContextManager, error) {
	contextDir := filepath.Join(projectRoot, ".context")
	checkpointsDir := filepath.Join(contextDir, "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0o755); err != nil {
		return nil, fmt.Errorf("iris: create context dirs: %w", err)
	}
	return &ContextManager{
		projectRoot:    projectRoot,
		contextDir:     contextDir,
		contextPath:    filepath.Join(contextDir, "context.json"),
		journalPath:    filepath.Join(contextDir, "journal.json"),
		checkpointsDir: checkpointsDir,
		lock:           NewFileLock(filepath.Join(contextDir, ".lock")),
		now:            time.Now,
	}, nil
}

// Initialize creates the initial context and empty journal if they
// don't already exist, returning true if it created them.
func (m *ContextManager) Initialize(projectName string) (bool, error) {
	if _, err := os.Stat(m.contextPath); err == nil {
		return false, nil
	}

	now := m.now()
	context := Context{
		Project: Project{
			ID:          uuid.NewString(),
			Name:        projectName,
			CreatedAt:   now,
			LastUpdated: now,
		},
		CurrentTask: nil,
		Policy:      DefaultPolicy(),
		Meta:        DefaultMeta(),
	}

	if err := m.writeContext(context); err != nil {
		return false, err
	}
	if err := m.writeJournal(Journal{Entries: []JournalEntry{}}); err != nil {
		return false, err
	}
	return true, nil
}

// LoadContext reads context.json under the project lock.
func (m *ContextManager) LoadContext() (Context, error) {
	if err := m.lock.Acquire(); err != nil {
		return Context{}, err
	}
	defer m.lock.Release()
	return m.readContext()
}

func (m *ContextManager) readContext() (Context, error) {
	data, err := os.ReadFile(m.contextPath)
	if os.IsNotExist(err) {
		return Context{}, ErrNotInitialized
	}
	if err != nil {
		return Context{}, err
	}
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return Context{}, fmt.Errorf("iris: unmarshal context: %w", err)
	}
	return ctx, nil
}

// WriteContext persists context under the project lock, bumping
// LastUpdated.
func (m *ContextManager) WriteContext(ctx Context) error {
	if err := m.lock.Acquire(); err != nil {
		return err
	}
	defer m.lock.Release()
	ctx.Project.LastUpdated = m.now()
	return m.writeContext(ctx)
}

func (m *ContextManager) writeContext(ctx Context) error {
	return atomicWriteJSON(m.contextPath, ctx)
}

// SetCurrentTask replaces the context's current task.
func (m *ContextManager) SetCurrentTask(task CurrentTask) error {
	if err := m.lock.Acquire(); err != nil {
		return err
	}
	defer m.lock.Release()

	ctx, err := m.readContext()
	if err != nil {
		return err
	}
	ctx.CurrentTask = &task
	ctx.Project.LastUpdated = m.now()
	return m.writeContext(ctx)
}

// LoadJournal reads journal.json, returning an empty journal if it
// doesn't exist yet.
func (m *ContextManager) LoadJournal() (Journal, error) {
	data, err := os.ReadFile(m.journalPath)
	if os.IsNotExist(err) {
		return Journal{Entries: []JournalEntry{}}, nil
	}
	if err != nil {
		return Journal{}, err
	}
	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return Journal{}, fmt.Errorf("iris: unmarshal journal: %w", err)
	}
	return j, nil
}

// WriteJournal persists the journal under the project lock,
// compacting it first if it has grown past the context's CompactAfter
// threshold.
func (m *ContextManager) WriteJournal(j Journal) error {
	if err := m.lock.Acquire(); err != nil {
		return err
	}
	defer m.lock.Release()

	ctx, err := m.readContext()
	if err != nil {
		return err
	}
	if len(j.Entries) > ctx.Meta.CompactAfter {
		j = compactJournal(j, ctx.Meta)
	}
	return m.writeJournal(j)
}

func (m *ContextManager) writeJournal(j Journal) error {
	return atomicWriteJSON(m.journalPath, j)
}

// AddJournalEntry appends one entry, stamping its timestamp, and
// persists the (possibly compacted) journal.
func (m *ContextManager) AddJournalEntry(taskID int, phase, desc string, meta map[string]any) error {
	j, err := m.LoadJournal()
	if err != nil {
		return err
	}
	j.Entries = append(j.Entries, JournalEntry{
		Timestamp: m.now(),
		TaskID:    taskID,
		Phase:     phase,
		Desc:      desc,
		Meta:      meta,
	})
	return m.WriteJournal(j)
}

// compactJournal summarizes the oldest entries into a single INIT
// entry, keeping at most Meta.JournalMax recent entries plus the
// summary — mirrors the original agent's _compact_journal.
func compactJournal(j Journal, meta Meta) Journal {
	if len(j.Entries) <= meta.CompactAfter {
		return j
	}

	keepCount := meta.JournalMax
	if keepCount > len(j.Entries) {
		keepCount = len(j.Entries)
	}
	recent := j.Entries[len(j.Entries)-keepCount:]
	old := j.Entries[:len(j.Entries)-keepCount]

	taskID := 0
	if len(old) > 0 {
		taskID = old[0].TaskID
	}

	summary := JournalEntry{
		Timestamp: time.Now(),
		TaskID:    taskID,
		Phase:     "INIT",
		Desc:      fmt.Sprintf("compacted %d entries: %s", len(old), summarizeEntries(old)),
		Meta:      map[string]any{"compacted": true, "entry_count": len(old)},
	}

	return Journal{Entries: append([]JournalEntry{summary}, recent...)}
}

func summarizeEntries(entries []JournalEntry) string {
	limit := len(entries)
	if limit > 10 {
		limit = 10
	}
	out := ""
	for i := 0; i < limit; i++ {
		if i > 0 {
			out += ", "
		}
		out += entries[i].Phase + ": " + entries[i].Desc
	}
	return "historical actions: " + out + "..."
}

// CreateCheckpoint copies filePath's current contents into the
// project's checkpoints/<taskID>/ directory before an edit is applied,
// returning the checkpoint path (or "" if the file doesn't yet exist).
func (m *ContextManager) CreateCheckpoint(taskID int, filePath string) (string, error) {
	dir := filepath.Join(m.checkpointsDir, fmt.Sprintf("%d", taskID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", nil
	}

	checkpointPath := filepath.Join(dir, fmt.Sprintf("%s.orig.%d", filepath.Base(filePath), m.now().UnixMilli()))
	if err := copyFile(filePath, checkpointPath); err != nil {
		return "", err
	}
	return checkpointPath, nil
}

// RollbackFile restores targetPath from a checkpoint created earlier
// by CreateCheckpoint. A blank checkpointPath is a no-op.
func (m *ContextManager) RollbackFile(checkpointPath, targetPath string) error {
	if checkpointPath == "" {
		return nil
	}
	if _, err := os.Stat(checkpointPath); os.IsNotExist(err) {
		return nil
	}
	return copyFile(checkpointPath, targetPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// atomicWriteFile writes data to path via a sibling ".tmp" file followed by
// rename-replace, so no reader ever observes a partial write.
func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
