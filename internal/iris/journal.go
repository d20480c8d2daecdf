package iris

import "time"

// JournalEntry is one READ/PLAN/WRITE/VERIFY action record.
type JournalEntry struct {
	Timestamp time.Time      `json:"ts"`
	TaskID    int            `json:"task_id"`
	Phase     string         `json:"phase"`
	Desc      string         `json:"desc"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// Journal is the append-only action history for a project.
type Journal struct {
	Entries []JournalEntry `json:"entries"`
}
