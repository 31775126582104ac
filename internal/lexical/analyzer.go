// Package lexical provides deterministic linguistic analysis over free-form
// journal text: tokenization, sentence segmentation, word-class tagging,
// lemmatization and named-entity recognition. It is rule-based and pure; the
// same input always yields the same output, and unrecognized tokens degrade
// to ClassOther rather than failing.
package lexical

import (
	"strings"
	"unicode"

	"journalmind/internal/lexicon"
)

// WordClass is a coarse part-of-speech class.
type WordClass string

const (
	ClassNoun      WordClass = "noun"
	ClassVerb      WordClass = "verb"
	ClassAdjective WordClass = "adjective"
	ClassOther     WordClass = "other"
)

// EntityClass is a named-entity class.
type EntityClass string

const (
	EntityNone         EntityClass = ""
	EntityPerson       EntityClass = "person"
	EntityPlace        EntityClass = "place"
	EntityOrganization EntityClass = "organization"
)

// Token is a single analyzed word.
type Token struct {
	// Surface is the word as written.
	Surface string
	// Lemma is the normalized lowercase base form.
	Lemma string
	// Class is the coarse part-of-speech class.
	Class WordClass
	// Entity is the named-entity class, if any.
	Entity EntityClass
	// SentenceIndex is the index of the containing sentence.
	SentenceIndex int
}

// Sentence is a segmented sentence, terminator included.
type Sentence struct {
	Text  string
	Index int
}

// NamedEntity is a recognized name span with its containing sentence.
type NamedEntity struct {
	// Text is the display form of the name (honorifics stripped).
	Text string
	// Class is person, place or organization.
	Class EntityClass
	// Sentence is the full text of the containing sentence.
	Sentence string
	// SentenceIndex is the index of the containing sentence.
	SentenceIndex int
}

// Analyzer tags tokens and recognizes names using the lexicon's name and
// suffix tables.
type Analyzer struct {
	lex *lexicon.Lexicon
}

// NewAnalyzer creates an analyzer backed by the given lexicon.
func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{lex: lex}
}

// abbreviations that end with a period but do not end a sentence.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "st": {}, "prof": {},
	"jr": {}, "sr": {}, "vs": {}, "etc": {}, "e.g": {}, "i.e": {},
}

// Sentences segments text into sentences. Terminators stay attached; runs of
// whitespace between sentences are dropped.
func (a *Analyzer) Sentences(text string) []Sentence {
	var sentences []Sentence
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' {
			// Decimal numbers and known abbreviations do not terminate.
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
				continue
			}
			if isAbbreviation(runes, start, i) {
				continue
			}
		}
		// Consume trailing closers and repeated terminators ("?!", `?"`).
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?' || runes[end] == ')' || runes[end] == '"' || runes[end] == '\'') {
			end++
		}
		raw := strings.TrimSpace(string(runes[start:end]))
		if raw != "" {
			sentences = append(sentences, Sentence{Text: raw, Index: len(sentences)})
		}
		i = end - 1
		start = end
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, Sentence{Text: rest, Index: len(sentences)})
	}
	return sentences
}

// isAbbreviation reports whether the period at index i closes an
// abbreviation rather than a sentence.
func isAbbreviation(runes []rune, start, i int) bool {
	j := i - 1
	for j >= start && (unicode.IsLetter(runes[j]) || runes[j] == '.') {
		j--
	}
	word := strings.ToLower(strings.TrimSuffix(string(runes[j+1:i]), "."))
	_, ok := abbreviations[word]
	return ok
}

// Analyze tokenizes and tags the full text, sentence by sentence.
func (a *Analyzer) Analyze(text string) []Token {
	var tokens []Token
	for _, sentence := range a.Sentences(text) {
		words := splitWords(sentence.Text)
		entities := a.tagEntities(words)
		for i, w := range words {
			lemma := Lemmatize(w)
			tokens = append(tokens, Token{
				Surface:       w,
				Lemma:         lemma,
				Class:         a.classify(lemma),
				Entity:        entities[i],
				SentenceIndex: sentence.Index,
			})
		}
	}
	return tokens
}

// NamedEntities returns the recognized name spans in the text, in reading
// order, each with its containing sentence.
func (a *Analyzer) NamedEntities(text string) []NamedEntity {
	var out []NamedEntity
	for _, sentence := range a.Sentences(text) {
		words := splitWords(sentence.Text)
		classes := a.tagEntities(words)
		i := 0
		for i < len(words) {
			if classes[i] == EntityNone {
				i++
				continue
			}
			j := i
			for j < len(words) && classes[j] == classes[i] {
				j++
			}
			name := strings.Join(words[i:j], " ")
			out = append(out, NamedEntity{
				Text:          name,
				Class:         classes[i],
				Sentence:      sentence.Text,
				SentenceIndex: sentence.Index,
			})
			i = j
		}
	}
	return out
}

// splitWords breaks a sentence into word tokens, keeping internal
// apostrophes and hyphens ("she's", "co-worker").
func splitWords(text string) []string {
	var words []string
	var current strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case (r == '\'' || r == '’' || r == '-') && current.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			current.WriteRune(r)
		default:
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

// honorifics preceding a personal name. The honorific is dropped from the
// display form.
var honorifics = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "aunt": {}, "uncle": {},
	"cousin": {}, "professor": {}, "coach": {},
}

// placePrepositions mark the following capitalized span as a place.
var placePrepositions = map[string]struct{}{
	"in": {}, "at": {}, "to": {}, "from": {}, "near": {}, "around": {}, "by": {},
}

// tagEntities assigns an entity class to each word of a sentence.
func (a *Analyzer) tagEntities(words []string) []EntityClass {
	classes := make([]EntityClass, len(words))
	i := 0
	for i < len(words) {
		w := words[i]
		if !isCapitalizedWord(w) || isFirstPersonPronoun(w) {
			i++
			continue
		}
		// Collect the full capitalized span.
		j := i
		for j < len(words) && isCapitalizedWord(words[j]) && !isFirstPersonPronoun(words[j]) {
			j++
		}
		// A sentence-opening common word can lead the capitalized span
		// ("Later Aunt Carol..."); trim from the left until the remainder
		// classifies.
		spanStart := i
		class := EntityNone
		for spanStart < j {
			class = a.classifySpan(words, spanStart, words[spanStart:j])
			if class != EntityNone {
				break
			}
			spanStart++
		}
		if class != EntityNone {
			// An honorific opens a person span but is not part of the name.
			if class == EntityPerson && j-spanStart > 1 {
				if _, ok := honorifics[strings.ToLower(words[spanStart])]; ok {
					spanStart++
				}
			}
			for k := spanStart; k < j; k++ {
				classes[k] = class
			}
		}
		i = j
	}
	return classes
}

// classifySpan decides the entity class of a capitalized span, if any.
// Precedence: organization suffix, place suffix, place preposition,
// honorific, known given name. A capitalized word opening the sentence with
// no other evidence is left untagged, since every sentence starts
// capitalized.
func (a *Analyzer) classifySpan(words []string, start int, span []string) EntityClass {
	last := strings.ToLower(span[len(span)-1])
	if a.lex.IsOrgSuffix(strings.TrimSuffix(last, ".")) {
		return EntityOrganization
	}
	for _, w := range span {
		if a.lex.IsPlaceSuffix(strings.ToLower(w)) {
			return EntityPlace
		}
	}
	if start > 0 {
		prev := strings.ToLower(words[start-1])
		if _, ok := placePrepositions[prev]; ok && !a.lex.IsGivenName(strings.ToLower(span[0])) {
			return EntityPlace
		}
	}
	if len(span) > 1 {
		if _, ok := honorifics[strings.ToLower(span[0])]; ok {
			return EntityPerson
		}
	}
	if a.lex.IsGivenName(strings.ToLower(span[0])) {
		return EntityPerson
	}
	if start > 0 && !a.lex.IsStopWord(strings.ToLower(span[0])) && !isAllUpper(span[0]) {
		// Capitalized mid-sentence and not a common word: treat as a person,
		// the dominant case in journal text.
		return EntityPerson
	}
	return EntityNone
}

func isCapitalizedWord(w string) bool {
	runes := []rune(w)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '\'' && r != '’' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}

func isAllUpper(w string) bool {
	letters := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters > 1
}

func isFirstPersonPronoun(w string) bool {
	switch strings.ToLower(w) {
	case "i", "i'm", "i'll", "i'd", "i've":
		return true
	}
	return false
}
