// Package iris implements the deterministic READ→PLAN→WRITE→VERIFY
// enforcement loop: before any file may be edited, it must first have
// been read and checksummed in the same task's context.
package iris

import "time"

// FileRead is one file's read record: the line range covered, its
// content at read time, and a SHA-256 checksum for staleness checks.
type FileRead struct {
	Path    string    `json:"path"`
	Lines   [2]int    `json:"lines"`
	Content string    `json:"content"`
	Hash    string    `json:"hash"`
	ReadAt  time.Time `json:"read_at"`
}

// ReadState tracks every file read during a task's current pass.
type ReadState struct {
	FilesRead map[string]FileRead `json:"files_read"`
}

// IntendedEdit is one planned file modification.
type IntendedEdit struct {
	File            string `json:"file"`
	Range           [2]int `json:"range"`
	Reason          string `json:"reason"`
	OriginalContent string `json:"original_content,omitempty"`
	NewContent      string `json:"new_content,omitempty"`
}

// Plan is a task's full set of intended edits plus the model's raw
// reasoning text.
type Plan struct {
	IntendedEdits []IntendedEdit `json:"intended_edits"`
	Reasoning     string         `json:"reasoning"`
}

// CurrentTask is the task iris is actively driving through the loop.
type CurrentTask struct {
	TaskID    int       `json:"task_id"`
	Goal      string    `json:"goal"`
	Status    string    `json:"status"`
	LastPhase string    `json:"last_phase"`
	Summary   string    `json:"summary"`
	ReadState ReadState `json:"read_state"`
	Plan      Plan      `json:"plan"`
}

// NewCurrentTask builds a freshly-initialized CurrentTask for taskID/goal.
func NewCurrentTask(taskID int, goal string) CurrentTask {
	return CurrentTask{
		TaskID:    taskID,
		Goal:      goal,
		Status:    "pending",
		LastPhase: "INIT",
		ReadState: ReadState{FilesRead: map[string]FileRead{}},
		Plan:      Plan{IntendedEdits: []IntendedEdit{}},
	}
}

// Project holds project-level metadata, set once at iris-new time.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// Policy controls enforcement behavior.
type Policy struct {
	ReadBeforeWrite  bool `json:"read_before_write"`
	Unrestricted     bool `json:"unrestricted"`
	TrustedWorkspace bool `json:"trusted_workspace"`
}

// DefaultPolicy matches the original agent's dataclass defaults.
func DefaultPolicy() Policy {
	return Policy{ReadBeforeWrite: true, Unrestricted: true, TrustedWorkspace: false}
}

// Meta controls journal compaction thresholds.
type Meta struct {
	JournalMax   int `json:"journal_max"`
	CompactAfter int `json:"compact_after"`
}

// DefaultMeta matches the original agent's dataclass defaults.
func DefaultMeta() Meta {
	return Meta{JournalMax: 200, CompactAfter: 50}
}

// Context is the complete persisted project state: one per project
// root, stored at <root>/.context/context.json.
type Context struct {
	Project     Project      `json:"project"`
	CurrentTask *CurrentTask `json:"current_task"`
	Policy      Policy       `json:"policy"`
	Meta        Meta         `json:"meta"`
}
