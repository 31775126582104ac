// Package lexicon holds the hand-tuned vocabulary tables the detection
// pipeline depends on: stop words, the meaningful-concept vocabulary, the
// valence and relationship keyword tables, and the phrase lists used for
// question, commitment and insight detection.
//
// The tables ship as compiled-in defaults and can be overridden from a YAML
// file. Table order is significant for the valence and relationship tables
// (first match wins), so they are lists, not maps.
package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValenceEntry maps a set of trigger keywords to an emotional valence.
type ValenceEntry struct {
	Valence  string   `yaml:"valence"`
	Keywords []string `yaml:"keywords"`
}

// RelationshipEntry maps a set of trigger keywords to a relationship category.
type RelationshipEntry struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon is the full set of vocabulary tables.
type Lexicon struct {
	// StopWords are excluded from keyword and concept extraction.
	StopWords []string `yaml:"stop_words"`

	// MeaningfulConcepts is the fixed vocabulary of themes that qualify as
	// concepts even at a single occurrence.
	MeaningfulConcepts []string `yaml:"meaningful_concepts"`

	// ValenceKeywords infers emotional tone toward a mentioned person.
	// Order is priority order.
	ValenceKeywords []ValenceEntry `yaml:"valence_keywords"`

	// RelationshipKeywords infers the relationship category of a mentioned
	// person, and drives the "my <keyword>" person patterns. Order is
	// priority order.
	RelationshipKeywords []RelationshipEntry `yaml:"relationship_keywords"`

	// IntentionPhrases mark a sentence as a commitment.
	IntentionPhrases []string `yaml:"intention_phrases"`

	// InsightMarkers are first-person markers that raise a sentence's
	// excerpt score.
	InsightMarkers []string `yaml:"insight_markers"`

	// CausalConnectives are causal/insight connectives that raise a
	// sentence's excerpt score.
	CausalConnectives []string `yaml:"causal_connectives"`

	// IndirectQuestionPrefixes mark a sentence as a question when it starts
	// with one of them.
	IndirectQuestionPrefixes []string `yaml:"indirect_question_prefixes"`

	// QuestionPhrases mark a sentence as a question when it contains one of
	// them anywhere.
	QuestionPhrases []string `yaml:"question_phrases"`

	// GivenNames is a small lexicon of common given names used by the
	// named-entity tagger.
	GivenNames []string `yaml:"given_names"`

	// PlaceSuffixes mark a capitalized token sequence as a place name.
	PlaceSuffixes []string `yaml:"place_suffixes"`

	// OrgSuffixes mark a capitalized token sequence as an organization name.
	OrgSuffixes []string `yaml:"org_suffixes"`

	stopSet    map[string]struct{}
	conceptSet map[string]struct{}
	nameSet    map[string]struct{}
	placeSet   map[string]struct{}
	orgSet     map[string]struct{}
}

// Default returns the built-in tables.
func Default() *Lexicon {
	l := &Lexicon{
		StopWords:                defaultStopWords,
		MeaningfulConcepts:       defaultMeaningfulConcepts,
		ValenceKeywords:          defaultValenceKeywords,
		RelationshipKeywords:     defaultRelationshipKeywords,
		IntentionPhrases:         defaultIntentionPhrases,
		InsightMarkers:           defaultInsightMarkers,
		CausalConnectives:        defaultCausalConnectives,
		IndirectQuestionPrefixes: defaultIndirectQuestionPrefixes,
		QuestionPhrases:          defaultQuestionPhrases,
		GivenNames:               defaultGivenNames,
		PlaceSuffixes:            defaultPlaceSuffixes,
		OrgSuffixes:              defaultOrgSuffixes,
	}
	l.compile()
	return l
}

// LoadFile loads a lexicon from a YAML file. Sections missing from the file
// keep their built-in defaults, so an override file only needs the tables it
// changes.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}

	l := Default()
	if len(override.StopWords) > 0 {
		l.StopWords = override.StopWords
	}
	if len(override.MeaningfulConcepts) > 0 {
		l.MeaningfulConcepts = override.MeaningfulConcepts
	}
	if len(override.ValenceKeywords) > 0 {
		l.ValenceKeywords = override.ValenceKeywords
	}
	if len(override.RelationshipKeywords) > 0 {
		l.RelationshipKeywords = override.RelationshipKeywords
	}
	if len(override.IntentionPhrases) > 0 {
		l.IntentionPhrases = override.IntentionPhrases
	}
	if len(override.InsightMarkers) > 0 {
		l.InsightMarkers = override.InsightMarkers
	}
	if len(override.CausalConnectives) > 0 {
		l.CausalConnectives = override.CausalConnectives
	}
	if len(override.IndirectQuestionPrefixes) > 0 {
		l.IndirectQuestionPrefixes = override.IndirectQuestionPrefixes
	}
	if len(override.QuestionPhrases) > 0 {
		l.QuestionPhrases = override.QuestionPhrases
	}
	if len(override.GivenNames) > 0 {
		l.GivenNames = override.GivenNames
	}
	if len(override.PlaceSuffixes) > 0 {
		l.PlaceSuffixes = override.PlaceSuffixes
	}
	if len(override.OrgSuffixes) > 0 {
		l.OrgSuffixes = override.OrgSuffixes
	}
	l.compile()
	return l, nil
}

// compile builds the lowercase lookup sets from the table slices.
func (l *Lexicon) compile() {
	l.stopSet = toSet(l.StopWords)
	l.conceptSet = toSet(l.MeaningfulConcepts)
	l.nameSet = toSet(l.GivenNames)
	l.placeSet = toSet(l.PlaceSuffixes)
	l.orgSet = toSet(l.OrgSuffixes)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the lowercase word is a stop word.
func (l *Lexicon) IsStopWord(word string) bool {
	_, ok := l.stopSet[strings.ToLower(word)]
	return ok
}

// IsMeaningfulConcept reports whether the word is in the meaningful-concept
// vocabulary.
func (l *Lexicon) IsMeaningfulConcept(word string) bool {
	_, ok := l.conceptSet[strings.ToLower(word)]
	return ok
}

// IsGivenName reports whether the word is a known given name.
func (l *Lexicon) IsGivenName(word string) bool {
	_, ok := l.nameSet[strings.ToLower(word)]
	return ok
}

// IsPlaceSuffix reports whether the word marks a place name.
func (l *Lexicon) IsPlaceSuffix(word string) bool {
	_, ok := l.placeSet[strings.ToLower(word)]
	return ok
}

// IsOrgSuffix reports whether the word marks an organization name.
func (l *Lexicon) IsOrgSuffix(word string) bool {
	_, ok := l.orgSet[strings.ToLower(word)]
	return ok
}

// ValenceFor scans a sentence for the first valence table entry with a
// matching keyword. Table order is priority order. Returns "" when no
// keyword matches.
func (l *Lexicon) ValenceFor(sentence string) string {
	lower := strings.ToLower(sentence)
	for _, entry := range l.ValenceKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return entry.Valence
			}
		}
	}
	return ""
}

// RelationshipFor scans a sentence for the first relationship table entry
// with a matching keyword. Returns "" when no keyword matches.
func (l *Lexicon) RelationshipFor(sentence string) string {
	lower := strings.ToLower(sentence)
	for _, entry := range l.RelationshipKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return entry.Category
			}
		}
	}
	return ""
}

// MeaningfulTermsIn returns the meaningful-concept terms present in the
// text, in vocabulary order, capped at limit. A limit of 0 means no cap.
func (l *Lexicon) MeaningfulTermsIn(text string, limit int) []string {
	lower := strings.ToLower(text)
	var terms []string
	for _, term := range l.MeaningfulConcepts {
		if strings.Contains(lower, strings.ToLower(term)) {
			terms = append(terms, term)
			if limit > 0 && len(terms) == limit {
				break
			}
		}
	}
	return terms
}
