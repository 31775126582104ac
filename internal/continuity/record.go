// Package continuity persists app-tagged records of derived journal data so
// other applications can query what this one has learned. Records carry
// entity references for querying plus an opaque payload whose schema belongs
// to the producing app.
package continuity

import "time"

// EntityType classifies what an entity reference points at.
type EntityType string

const (
	EntityPerson  EntityType = "person"
	EntityConcept EntityType = "concept"
	EntityCard    EntityType = "card"
	EntityPlace   EntityType = "place"
	EntityProject EntityType = "project"
	EntityRoutine EntityType = "routine"
)

// EntityReference names one entity a record is about.
type EntityReference struct {
	Type        EntityType `json:"type"`
	Identifier  string     `json:"identifier"`
	DisplayName string     `json:"display_name"`
}

// ContinuityRecord is one unit of derived data. ID is stable across re-saves
// of the same logical record and is the merge key: saving a record whose ID
// already exists replaces the old record wholesale.
type ContinuityRecord struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	SourceApp string            `json:"source_app"`
	Entities  []EntityReference `json:"entities"`
	// Payload is opaque serialized bytes; encoding/json transports it as
	// base64 so arbitrary payloads round-trip.
	Payload []byte `json:"payload,omitempty"`
}

// References reports whether the record mentions the given entity.
func (r ContinuityRecord) References(entityType EntityType, identifier string) bool {
	for _, e := range r.Entities {
		if e.Type == entityType && e.Identifier == identifier {
			return true
		}
	}
	return false
}
