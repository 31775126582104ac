// Package journal defines the value types shared across the detection
// pipeline: entries as the detectors consume them, and the connections they
// produce. Downstream consumers receive these as plain data and never
// construct them.
package journal

import "time"

// EntryKind tags what kind of entry the user wrote. The zero value is a
// plain reflection.
type EntryKind string

const (
	KindReflection EntryKind = "reflection"
	KindQuestion   EntryKind = "question"
	KindGratitude  EntryKind = "gratitude"
	KindDream      EntryKind = "dream"
)

// Entry is a single journal record as seen by the detectors.
type Entry struct {
	// ID is the stable entry identifier.
	ID string `json:"id"`
	// Kind is the entry's type tag, if any.
	Kind EntryKind `json:"kind,omitempty"`
	// Text is the primary capture text.
	Text string `json:"text"`
	// Reflection is the optional secondary reflection text.
	Reflection string `json:"reflection,omitempty"`
	// Sequence is the human-facing entry number, stable across edits.
	Sequence int `json:"sequence"`
	// CreatedAt is the entry's creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// Deleted marks a soft-deleted entry; deleted entries never reach the
	// detectors.
	Deleted bool `json:"deleted,omitempty"`
}

// IsQuestion reports whether the entry reads as a question: tagged as one,
// or containing a question mark anywhere in its text.
func (e Entry) IsQuestion() bool {
	if e.Kind == KindQuestion {
		return true
	}
	for _, r := range e.Text {
		if r == '?' {
			return true
		}
	}
	return false
}

// ConnectionType classifies how two entries relate.
type ConnectionType string

const (
	ConnectionThematic       ConnectionType = "thematic"
	ConnectionEvolution      ConnectionType = "evolution"
	ConnectionCausal         ConnectionType = "causal"
	ConnectionContrasting    ConnectionType = "contrasting"
	ConnectionPattern        ConnectionType = "pattern"
	ConnectionQuestionAnswer ConnectionType = "questionAnswer"
	ConnectionTemporal       ConnectionType = "temporal"
)

// ValidConnectionType reports whether t is one of the defined types.
func ValidConnectionType(t ConnectionType) bool {
	switch t {
	case ConnectionThematic, ConnectionEvolution, ConnectionCausal,
		ConnectionContrasting, ConnectionPattern, ConnectionQuestionAnswer,
		ConnectionTemporal:
		return true
	}
	return false
}

// Connection links two entries. Connections are directed, but thematic and
// evolution connections are symmetric in meaning; by convention the earlier
// entry is the source.
type Connection struct {
	ID             string         `json:"id"`
	SourceEntryID  string         `json:"source_entry_id"`
	TargetEntryID  string         `json:"target_entry_id"`
	SourceSequence int            `json:"source_sequence,omitempty"`
	TargetSequence int            `json:"target_sequence,omitempty"`
	Type           ConnectionType `json:"type"`
	Description    string         `json:"description"`
	Confidence     float64        `json:"confidence"`
	IsUserCreated  bool           `json:"is_user_created"`
	CreatedAt      time.Time      `json:"created_at"`
}
