package extract

// Valence is the inferred emotional tone toward a mentioned person.
type Valence string

const (
	ValenceGrateful   Valence = "grateful"
	ValenceFrustrated Valence = "frustrated"
	ValenceTender     Valence = "tender"
	ValenceWorried    Valence = "worried"
	ValenceGrieving   Valence = "grieving"
	ValenceProud      Valence = "proud"
	ValenceUncertain  Valence = "uncertain"
	ValenceHopeful    Valence = "hopeful"
	ValenceRemorseful Valence = "remorseful"
	ValencePeaceful   Valence = "peaceful"
)

// Relationship is the inferred relationship category of a mentioned person.
type Relationship string

const (
	RelationshipFamily       Relationship = "family"
	RelationshipFriend       Relationship = "friend"
	RelationshipColleague    Relationship = "colleague"
	RelationshipProfessional Relationship = "professional"
	RelationshipCommunity    Relationship = "community"
)

// Person is a person mentioned in a journal text. Identity is the
// Identifier; mentions of the same normalized name collapse to one entry.
type Person struct {
	// Name is the display form as written.
	Name string `json:"name"`
	// Identifier is the normalized lowercase, space-to-hyphen slug.
	Identifier string `json:"identifier"`
	// Context is the containing sentence, truncated to 200 characters.
	Context string `json:"context,omitempty"`
	// Valence is the inferred emotional tone, if any keyword matched.
	Valence Valence `json:"valence,omitempty"`
	// Relationship is the inferred category, if any keyword matched.
	Relationship Relationship `json:"relationship,omitempty"`
}

// Place is a place mentioned in a journal text.
type Place struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Context    string `json:"context,omitempty"`
}

// Concept is a recurring or meaningful theme in a journal text.
type Concept struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	// Salience is the relative-frequency score in [0,1].
	Salience float64 `json:"salience"`
}

// Entities is the full structured extraction result. Every collection is
// present (possibly empty); extraction never fails.
type Entities struct {
	People      []Person  `json:"people"`
	Concepts    []Concept `json:"concepts"`
	Places      []Place   `json:"places"`
	Questions   []string  `json:"questions"`
	Commitments []string  `json:"commitments"`
	KeyExcerpt  string    `json:"key_excerpt,omitempty"`
}

// emptyEntities returns a result with every collection initialized, so
// callers and JSON consumers see empty lists, never null.
func emptyEntities() Entities {
	return Entities{
		People:      []Person{},
		Concepts:    []Concept{},
		Places:      []Place{},
		Questions:   []string{},
		Commitments: []string{},
	}
}
