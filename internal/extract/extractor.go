// Package extract builds structured entities from free-form journal text:
// people, places, concepts, questions, commitments and a key excerpt. It
// never returns an error; when nothing is found, collections come back
// empty.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"journalmind/internal/lexical"
	"journalmind/internal/lexicon"
)

const (
	// minAnalysisLength is the shortest text worth analyzing; anything
	// shorter yields empty collections.
	minAnalysisLength = 20

	// contextLimit caps a person's or place's containing-sentence context.
	contextLimit = 200

	// maxConcepts caps the concept list by frequency rank.
	maxConcepts = 10

	// minConceptWordLength drops short words from concept counting.
	minConceptWordLength = 4
)

// relationshipPattern matches "my <keyword>" optionally followed by a
// capitalized name ("my friend Sarah").
type relationshipPattern struct {
	keyword  string
	category Relationship
	re       *regexp.Regexp
}

// Extractor turns journal text into Entities. It is stateless across calls
// and safe for concurrent use, including concurrent Reload.
type Extractor struct {
	mu       sync.RWMutex
	analyzer *lexical.Analyzer
	lex      *lexicon.Lexicon
	patterns []relationshipPattern
}

// New creates an extractor over the given lexicon.
func New(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	e := &Extractor{
		analyzer: lexical.NewAnalyzer(lex),
		lex:      lex,
	}
	for _, entry := range lex.RelationshipKeywords {
		for _, kw := range entry.Keywords {
			// Case folding is scoped to the phrase so the name capture
			// stays strictly capitalized.
			re := regexp.MustCompile(`(?i:\bmy\s+` + regexp.QuoteMeta(kw) + `\b)(?:\s+([A-Z][a-zA-Z'’-]+))?`)
			e.patterns = append(e.patterns, relationshipPattern{
				keyword:  kw,
				category: Relationship(entry.Category),
				re:       re,
			})
		}
	}
	return e
}

// Reload swaps the lexicon tables and recompiles the relationship patterns.
// Extractions already in flight keep the tables they started with.
func (e *Extractor) Reload(lex *lexicon.Lexicon) {
	fresh := New(lex)
	e.mu.Lock()
	e.analyzer = fresh.analyzer
	e.lex = fresh.lex
	e.patterns = fresh.patterns
	e.mu.Unlock()
}

// Extract analyzes up to three texts (capture, reflection, extra). Markdown
// is stripped before analysis. Texts below the minimum length threshold
// yield empty collections, not an error.
func (e *Extractor) Extract(primary, secondary, tertiary string) Entities {
	e.mu.RLock()
	defer e.mu.RUnlock()

	primaryPlain := lexical.PlainText(primary)
	secondaryPlain := lexical.PlainText(secondary)
	tertiaryPlain := lexical.PlainText(tertiary)

	var parts []string
	for _, p := range []string{primaryPlain, secondaryPlain, tertiaryPlain} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	combined := strings.Join(parts, "\n\n")
	if len(combined) < minAnalysisLength {
		return emptyEntities()
	}

	result := emptyEntities()
	result.People = e.extractPeople(combined)
	result.Concepts = e.extractConcepts(combined)
	result.Places = e.extractPlaces(combined)
	result.Questions = e.extractQuestions(combined)
	result.Commitments = e.extractCommitments(combined)
	result.KeyExcerpt = e.selectKeyExcerpt(primaryPlain, secondaryPlain)
	return result
}

// extractPeople runs named-entity tagging, then the "my <keyword>"
// relationship patterns; pattern matches not already seen via the tagger are
// added. Dedup key is the lowercase identifier; the first-seen context wins.
func (e *Extractor) extractPeople(text string) []Person {
	people := []Person{}
	seen := make(map[string]struct{})

	add := func(name, sentence string, rel Relationship) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		id := Slug(name)
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		p := Person{
			Name:       name,
			Identifier: id,
			Context:    truncate(sentence, contextLimit),
			Valence:    Valence(e.lex.ValenceFor(sentence)),
		}
		if rel != "" {
			p.Relationship = rel
		} else {
			p.Relationship = Relationship(e.lex.RelationshipFor(sentence))
		}
		people = append(people, p)
	}

	for _, entity := range e.analyzer.NamedEntities(text) {
		if entity.Class != lexical.EntityPerson {
			continue
		}
		add(entity.Text, entity.Sentence, "")
	}

	for _, sentence := range e.analyzer.Sentences(text) {
		for _, pat := range e.patterns {
			m := pat.re.FindStringSubmatch(sentence.Text)
			if m == nil {
				continue
			}
			name := m[1]
			if name == "" {
				name = titleCase(pat.keyword)
			}
			add(name, sentence.Text, pat.category)
		}
	}

	return people
}

// extractConcepts counts noun and verb lemmas, drops stop words and short
// words, doubles the weight of meaningful-vocabulary terms, and keeps the
// top concepts that either recur or belong to the vocabulary. Salience is
// (count / total mentions) x 2, capped at 1.0.
func (e *Extractor) extractConcepts(text string) []Concept {
	counts := make(map[string]int)
	for _, tok := range e.analyzer.Analyze(text) {
		if tok.Class != lexical.ClassNoun && tok.Class != lexical.ClassVerb {
			continue
		}
		if len(tok.Lemma) < minConceptWordLength || e.lex.IsStopWord(tok.Lemma) {
			continue
		}
		counts[tok.Lemma]++
	}

	total := 0
	for lemma, count := range counts {
		if e.lex.IsMeaningfulConcept(lemma) {
			counts[lemma] = count * 2
		}
		total += counts[lemma]
	}
	if total == 0 {
		return []Concept{}
	}

	lemmas := make([]string, 0, len(counts))
	for lemma := range counts {
		lemmas = append(lemmas, lemma)
	}
	sort.Slice(lemmas, func(i, j int) bool {
		if counts[lemmas[i]] != counts[lemmas[j]] {
			return counts[lemmas[i]] > counts[lemmas[j]]
		}
		return lemmas[i] < lemmas[j]
	})

	concepts := []Concept{}
	for _, lemma := range lemmas {
		if len(concepts) == maxConcepts {
			break
		}
		if counts[lemma] < 2 && !e.lex.IsMeaningfulConcept(lemma) {
			continue
		}
		salience := float64(counts[lemma]) / float64(total) * 2
		if salience > 1 {
			salience = 1
		}
		concepts = append(concepts, Concept{
			Name:       lemma,
			Identifier: Slug(lemma),
			Salience:   salience,
		})
	}
	return concepts
}

// extractPlaces uses named-entity tagging only; there is no keyword-pattern
// fallback for places.
func (e *Extractor) extractPlaces(text string) []Place {
	places := []Place{}
	seen := make(map[string]struct{})
	for _, entity := range e.analyzer.NamedEntities(text) {
		if entity.Class != lexical.EntityPlace {
			continue
		}
		name := strings.TrimSpace(entity.Text)
		id := Slug(name)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		places = append(places, Place{
			Name:       name,
			Identifier: id,
			Context:    truncate(entity.Sentence, contextLimit),
		})
	}
	return places
}

// extractQuestions collects sentences that end in a question mark, open with
// an indirect-question prefix, or contain a question phrase.
func (e *Extractor) extractQuestions(text string) []string {
	questions := []string{}
	for _, sentence := range e.analyzer.Sentences(text) {
		if e.isQuestion(sentence.Text) {
			questions = append(questions, sentence.Text)
		}
	}
	return questions
}

func (e *Extractor) isQuestion(sentence string) bool {
	trimmed := strings.TrimRight(sentence, `"')`)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	lower := strings.ToLower(sentence)
	for _, prefix := range e.lex.IndirectQuestionPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	for _, phrase := range e.lex.QuestionPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// extractCommitments collects sentences containing an intention phrase. The
// first matching phrase wins per sentence, so a multi-phrase sentence emits
// once.
func (e *Extractor) extractCommitments(text string) []string {
	commitments := []string{}
	for _, sentence := range e.analyzer.Sentences(text) {
		lower := strings.ToLower(sentence.Text)
		for _, phrase := range e.lex.IntentionPhrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				commitments = append(commitments, sentence.Text)
				break
			}
		}
	}
	return commitments
}

// Slug normalizes a display name into its identifier: lowercase, spaces to
// hyphens.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = fmt.Sprintf("%s%s", strings.ToUpper(w[:1]), w[1:])
	}
	return strings.Join(words, " ")
}
