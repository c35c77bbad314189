package types

import (
	"time"

	"github.com/google/uuid"
)

// History actions recorded per merge decision.
const (
	ActionAdded     = "added"
	ActionMerged    = "merged"
	ActionPreserved = "preserved"
	ActionDropped   = "dropped"
	ActionWarning   = "warning"
)

// MergeHistoryEntry is the append-only audit record for one merge pass.
// Entries are write-once: the engine builds one, persistence appends it,
// nothing ever updates it afterwards.
type MergeHistoryEntry struct {
	ID        uuid.UUID     `json:"id"`
	UserID    string        `json:"user_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source,omitempty"` // e.g. document name or "regeneration"
	Lines     []HistoryLine `json:"lines"`
}

// HistoryLine records a single add/merge/preserve/drop decision.
type HistoryLine struct {
	Section string `json:"section"`          // e.g. "experiences", "profil"
	Action  string `json:"action"`           // one of the Action* constants
	Key     string `json:"key,omitempty"`    // entity identity or field name
	Detail  string `json:"detail,omitempty"` // human-readable context
}

// NewMergeHistoryEntry creates an entry with a fresh ID and the given clock time.
func NewMergeHistoryEntry(userID, source string, at time.Time) *MergeHistoryEntry {
	return &MergeHistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Timestamp: at,
		Source:    source,
	}
}

// Add appends one decision line.
func (e *MergeHistoryEntry) Add(section, action, key, detail string) {
	e.Lines = append(e.Lines, HistoryLine{Section: section, Action: action, Key: key, Detail: detail})
}

// Count returns the number of lines recorded with the given action.
func (e *MergeHistoryEntry) Count(action string) int {
	n := 0
	for _, l := range e.Lines {
		if l.Action == action {
			n++
		}
	}
	return n
}
